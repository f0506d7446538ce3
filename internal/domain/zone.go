package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNameRequired = errors.New("zone name is required")
	ErrEmptyBounds  = errors.New("zone must have a positive width and height")
)

// Bounds is a rectangle in overview screen units.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Zone is a named rectangular region of the overview map.
type Zone struct {
	Name               string
	Bounds             Bounds
	Clickable          bool
	NavigationTarget   string
	BackgroundImageRef string
}

// Validate checks the fields every committed zone must carry.
func (z Zone) Validate() error {
	if strings.TrimSpace(z.Name) == "" {
		return ErrNameRequired
	}
	if z.Bounds.Width <= 0 || z.Bounds.Height <= 0 {
		return fmt.Errorf("zone %q: %w", z.Name, ErrEmptyBounds)
	}
	return nil
}

// CanNavigate reports whether clicking the zone opens a detail view.
func (z Zone) CanNavigate() bool {
	return z.Clickable && z.NavigationTarget != ""
}

// Normalized trims the name and drops the navigation target from
// display-only zones.
func (z Zone) Normalized() Zone {
	z.Name = strings.TrimSpace(z.Name)
	z.NavigationTarget = strings.TrimSpace(z.NavigationTarget)
	if !z.Clickable {
		z.NavigationTarget = ""
	}
	return z
}
