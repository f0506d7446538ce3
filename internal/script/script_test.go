package script

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/notify"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/alexanderramin/plantmap/internal/service"
	"github.com/alexanderramin/plantmap/internal/testutil"
	"github.com/alexanderramin/plantmap/internal/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, role domain.Role) (*app.Controller, *notify.Feed) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	feed := notify.NewFeed()
	clock := func() time.Time { return testutil.FixedNow }
	projects := repository.NewSQLiteProjectRepo(database)

	zones := service.NewZoneService(zone.BaseCatalog(), repository.NewSQLiteOverlayRepo(database), uow, feed, clock)
	projectSvc := service.NewProjectService(projects, uow, feed, clock)
	board := service.NewBoardService(projects, repository.NewSQLiteAssignmentRepo(database), clock)
	return app.NewController(app.NewState(role), zones, projectSvc, board, nil), feed
}

func TestLoad_Session(t *testing.T) {
	s, err := LoadFile("testdata/session.yaml")
	require.NoError(t, err)
	assert.Equal(t, "paint shop rollout", s.Name)
	assert.Equal(t, domain.RoleEngineer, s.InitialRole())
	require.Len(t, s.Steps, 14)
	assert.Equal(t, Point{20, 300}, s.Steps[3].From)
	assert.Len(t, s.Steps[10].Cells, 3)
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"no steps":       "name: x\n",
		"unknown action": "steps:\n  - action: teleport\n",
		"bad role":       "role: root\nsteps:\n  - action: back\n",
		"short point":    "steps:\n  - action: pointer_down\n    at: [1]\n",
		"unknown field":  "steps:\n  - action: back\n    speed: 3\n",
		"bad bucket":     "steps:\n  - action: filter\n    date: year\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("steps: [\n"))
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestRun_Session(t *testing.T) {
	s, err := LoadFile("testdata/session.yaml")
	require.NoError(t, err)

	ctrl, feed := newController(t, s.InitialRole())
	report, err := NewRunner(ctrl, nil).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, report.Steps, 14)
	assert.Equal(t, 1, report.Failures())

	ctx := context.Background()
	zones, err := ctrl.Zones().Effective(ctx)
	require.NoError(t, err)
	assert.Contains(t, zones, "Paint Shop")
	assert.Contains(t, zones, "Line B")
	assert.NotContains(t, zones, "Assembly Line B")
	assert.NotContains(t, zones, "Quality Control")

	st := ctrl.State()
	assert.Equal(t, "paint-shop", st.ViewID)
	require.NotNil(t, st.Inspected)

	view, err := ctrl.Board().Cell(ctx, st.ViewID, domain.Cell{X: 2, Y: 1}, st.Criteria, st.Selection)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)
	empty, err := ctrl.Board().Cell(ctx, st.ViewID, domain.Cell{X: 1, Y: 1}, st.Criteria, st.Selection)
	require.NoError(t, err)
	assert.Zero(t, empty.Count, "(1,1) was toggled twice")

	msgs := make([]string, 0, feed.Len())
	for _, n := range feed.Items() {
		msgs = append(msgs, n.Message)
	}
	assert.Equal(t, []string{
		`New maintenance project "Booth filters" started by Dana in Paint Shop`,
		`Built-in area "Quality Control" deleted by admin`,
		`Area "Line B" updated by admin`,
		`New area "Paint Shop" created by admin`,
	}, msgs)
}

func TestRun_StopsAtUnexpectedError(t *testing.T) {
	s := Script{Steps: []Step{
		{Action: "open_zone", Zone: "Assembly Line A"},
		{Action: "begin_project"},
		{Action: "submit_project", Title: "x", Type: "safety", DurationDays: 1},
		{Action: "back"},
	}}
	ctrl, _ := newController(t, domain.RoleEngineer)

	report, err := NewRunner(ctrl, nil).Run(context.Background(), s)
	require.ErrorIs(t, err, domain.ErrNoCells)
	assert.Len(t, report.Steps, 3)
	assert.Equal(t, "assembly-a", ctrl.State().ViewID)
}

func TestRun_FailedStepLeavesNoPartialState(t *testing.T) {
	s := Script{Steps: []Step{
		{Action: "open_zone", Zone: "Assembly Line A"},
		{Action: "filter", Date: "week", Type: "painting", ExpectError: true},
	}}
	ctrl, _ := newController(t, domain.RoleEngineer)

	report, err := NewRunner(ctrl, nil).Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, report.Steps, 2)
	assert.ErrorIs(t, report.Steps[1].Err, app.ErrUnknownFilter)
	assert.Equal(t, domain.BucketAll, ctrl.State().Criteria.Date, "date half of the rejected step is rolled back")
}

func TestRun_ExpectedErrorMustOccur(t *testing.T) {
	s := Script{Role: "admin", Steps: []Step{{Action: "arm", ExpectError: true}}}
	ctrl, _ := newController(t, s.InitialRole())

	_, err := NewRunner(ctrl, nil).Run(context.Background(), s)
	assert.ErrorIs(t, err, ErrUnexpectedSuccess)
}

func TestRun_UnknownZone(t *testing.T) {
	s := Script{Steps: []Step{{Action: "open_zone", Zone: "Warehouse"}}}
	ctrl, _ := newController(t, domain.RoleEngineer)

	_, err := NewRunner(ctrl, nil).Run(context.Background(), s)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}
