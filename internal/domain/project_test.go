package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() *Project {
	return &Project{
		Title:        "Booth filters",
		Engineer:     "Dana",
		Type:         TypeMaintenance,
		DurationDays: 3,
		Priority:     PriorityHigh,
		ViewID:       "paint-shop",
		Cells:        []Cell{{X: 1, Y: 1}, {X: 2, Y: 1}},
	}
}

func TestProjectValidate_Valid(t *testing.T) {
	assert.NoError(t, validProject().Validate())
}

func TestProjectValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *Project)
		want   error
	}{
		{"no cells", func(p *Project) { p.Cells = nil }, ErrNoCells},
		{"zero duration", func(p *Project) { p.DurationDays = 0 }, ErrInvalidDuration},
		{"negative duration", func(p *Project) { p.DurationDays = -2 }, ErrInvalidDuration},
		{"unknown type", func(p *Project) { p.Type = "painting" }, ErrInvalidType},
		{"unknown priority", func(p *Project) { p.Priority = "critical" }, ErrInvalidPriority},
		{"no view", func(p *Project) { p.ViewID = "" }, ErrViewRequired},
		{"cell off grid", func(p *Project) { p.Cells = append(p.Cells, Cell{X: GridWidth, Y: 0}) }, ErrCellOutOfBounds},
		{"negative cell", func(p *Project) { p.Cells = []Cell{{X: 0, Y: -1}} }, ErrCellOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProject()
			tc.mutate(p)
			assert.ErrorIs(t, p.Validate(), tc.want)
		})
	}
}

func TestProjectValidate_NoCellsReportedFirst(t *testing.T) {
	p := &Project{}
	assert.ErrorIs(t, p.Validate(), ErrNoCells)
}

func TestProjectSchedule(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	p := validProject()
	p.Schedule(now)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), p.EndDate)
}

func TestProjectSchedule_CrossesMonth(t *testing.T) {
	p := validProject()
	p.DurationDays = 5
	p.Schedule(time.Date(2025, 1, 29, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), p.EndDate)
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "abcdef01", (&Project{ID: "abcdef0123456789"}).DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
}

func TestCellInBounds(t *testing.T) {
	assert.True(t, Cell{X: 0, Y: 0}.InBounds())
	assert.True(t, Cell{X: GridWidth - 1, Y: GridHeight - 1}.InBounds())
	assert.False(t, Cell{X: GridWidth, Y: 0}.InBounds())
	assert.False(t, Cell{X: 0, Y: GridHeight}.InBounds())
	assert.Equal(t, "(3,4)", Cell{X: 3, Y: 4}.String())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	assert.Equal(t, RoleEngineer, r.Toggle())
	assert.Equal(t, RoleAdmin, RoleEngineer.Toggle())

	_, err = ParseRole("operator")
	assert.Error(t, err)
}

func TestProjectTypeLabels(t *testing.T) {
	assert.Len(t, ProjectTypes, 6)
	assert.Equal(t, "Testing & QA", TypeTesting.Label())
	assert.Equal(t, "welding", ProjectType("welding").Label())
	assert.False(t, ProjectType("welding").Valid())
	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, Priority("").Valid())
}
