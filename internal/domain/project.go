package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	// GridWidth and GridHeight are the dimensions of every zone detail grid.
	GridWidth  = 40
	GridHeight = 25
)

var (
	ErrNoCells         = errors.New("select at least one grid cell for the project area")
	ErrInvalidDuration = errors.New("duration must be a positive number of days")
	ErrInvalidType     = errors.New("unknown project type")
	ErrInvalidPriority = errors.New("unknown project priority")
	ErrCellOutOfBounds = errors.New("grid cell out of bounds")
	ErrViewRequired    = errors.New("project must belong to a zone view")
	ErrProjectNotFound = errors.New("project not found")
)

// Cell addresses one square of a zone detail grid.
type Cell struct {
	X int
	Y int
}

// InBounds reports whether the cell lies within the detail grid.
func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < GridWidth && c.Y >= 0 && c.Y < GridHeight
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Project is a time-bounded piece of work occupying a set of grid cells.
type Project struct {
	ID           string
	Title        string
	Engineer     string
	Type         ProjectType
	DurationDays int
	Description  string
	Priority     Priority
	ZoneName     string
	ViewID       string
	Cells        []Cell
	StartDate    time.Time
	EndDate      time.Time
	Status       ProjectStatus
	CreatedAt    time.Time
}

// Validate checks a project before it is assigned to the grid.
func (p *Project) Validate() error {
	if len(p.Cells) == 0 {
		return ErrNoCells
	}
	if p.DurationDays <= 0 {
		return ErrInvalidDuration
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	}
	if !p.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p.Priority)
	}
	if p.ViewID == "" {
		return ErrViewRequired
	}
	for _, c := range p.Cells {
		if !c.InBounds() {
			return fmt.Errorf("%w: %s", ErrCellOutOfBounds, c)
		}
	}
	return nil
}

// Schedule sets StartDate to the calendar day of now and derives EndDate
// from DurationDays.
func (p *Project) Schedule(now time.Time) {
	p.StartDate = StartOfDay(now)
	p.EndDate = p.StartDate.AddDate(0, 0, p.DurationDays)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DisplayID returns the first 8 characters of the ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
