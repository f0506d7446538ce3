package app

import (
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/drafter"
	"github.com/alexanderramin/plantmap/internal/filter"
	"github.com/alexanderramin/plantmap/internal/grid"
)

// State is the whole interactive session apart from stored zones and
// projects. It is a value: Reduce returns a new State and never mutates
// the one it was given.
type State struct {
	Role domain.Role

	// ViewID is empty on the overview and holds the zone's navigation
	// target while a zone grid is open.
	ViewID   string
	ZoneName string

	Drafter drafter.State

	CreatingProject bool
	Selection       grid.Selection

	Criteria  filter.Criteria
	Inspected *domain.Cell
}

// NewState returns the initial overview state for role.
func NewState(role domain.Role) State {
	if role == "" {
		role = domain.RoleEngineer
	}
	return State{Role: role, Criteria: filter.All}
}

func (s State) OnOverview() bool { return s.ViewID == "" }

// ZoneFormOpen reports whether a zone draft is waiting for its metadata.
func (s State) ZoneFormOpen() bool { return s.Drafter.Pending() }

// Editing reports whether the open zone form edits an existing zone.
func (s State) Editing() bool { return s.Drafter.Pending() && s.Drafter.Editing != nil }
