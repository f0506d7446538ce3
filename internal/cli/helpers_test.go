package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/notify"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/alexanderramin/plantmap/internal/service"
	"github.com/alexanderramin/plantmap/internal/teatest"
	"github.com/alexanderramin/plantmap/internal/testutil"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// testApp creates an App backed by an in-memory SQLite database and a
// fixed clock. Command output goes to the returned buffer.
func testApp(t *testing.T, role domain.Role) (*App, *bytes.Buffer) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	feed := notify.NewFeed()
	clock := func() time.Time { return testutil.FixedNow }
	projects := repository.NewSQLiteProjectRepo(database)

	out := &bytes.Buffer{}
	return &App{
		Zones:    service.NewZoneService(zone.BaseCatalog(), repository.NewSQLiteOverlayRepo(database), uow, feed, clock),
		Projects: service.NewProjectService(projects, uow, feed, clock),
		Board:    service.NewBoardService(projects, repository.NewSQLiteAssignmentRepo(database), clock),
		Feed:     feed,
		Role:     role,
		Now:      clock,
		Out:      out,
	}, out
}

// TestDriver wraps teatest.Driver with access to the appModel internals.
type TestDriver struct {
	*teatest.Driver
}

func NewTestDriver(t *testing.T, a *App) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(a), teatest.WithSize(120, 45))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return ViewID(-1)
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

func (d *TestDriver) Flash() (string, bool) {
	m := d.appModel()
	return m.flash, m.flashErr
}

// screen converts view-relative coordinates to terminal coordinates.
func screen(x, y int) (int, int) {
	return x, y + headerLines
}
