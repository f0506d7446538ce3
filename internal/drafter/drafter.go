// Package drafter turns pointer input on the overview map into draft zones.
//
// The drafter is a value-typed state machine: Apply never mutates its
// receiver, so callers can hold on to the previous state and discard the
// next one when a downstream commit fails.
package drafter

import (
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
)

const (
	// MinWidth and MinHeight are exclusive lower bounds on a drafted zone.
	MinWidth  = 50
	MinHeight = 30
)

type Phase int

const (
	Idle Phase = iota
	Dragging
	PendingMetadata
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case PendingMetadata:
		return "pending-metadata"
	}
	return "idle"
}

// Point is a position on the overview surface in screen units.
type Point struct {
	X int
	Y int
}

// Rect returns the normalized rectangle spanned by a and b.
func Rect(a, b Point) domain.Bounds {
	return domain.Bounds{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  abs(b.X - a.X),
		Height: abs(b.Y - a.Y),
	}
}

// LargeEnough reports whether b passes the minimum draft size.
func LargeEnough(b domain.Bounds) bool {
	return b.Width > MinWidth && b.Height > MinHeight
}

// State is the drafter's full state. The zero value is idle and disarmed.
type State struct {
	Armed bool
	Phase Phase
	Start Point
	End   Point
	Draft domain.Zone
	// Editing is set when the pending draft is an edit of an existing zone.
	Editing *zone.Target
}

// Preview returns the live drag rectangle while dragging.
func (s State) Preview() (domain.Bounds, bool) {
	if s.Phase != Dragging {
		return domain.Bounds{}, false
	}
	return Rect(s.Start, s.End), true
}

// Pending reports whether a draft is waiting for its metadata.
func (s State) Pending() bool { return s.Phase == PendingMetadata }

type OutcomeKind int

const (
	// Nothing observable happened.
	NoOutcome OutcomeKind = iota
	// Drafted means a drag produced a draft zone awaiting metadata.
	Drafted
	// Disarmed means create-zone mode ended without a draft.
	Disarmed
	// Committed carries the zone to write to the overlay log.
	Committed
	// Discarded means a pending draft was cancelled.
	Discarded
)

// Outcome describes the effect of one event.
type Outcome struct {
	Kind   OutcomeKind
	Zone   domain.Zone
	Target *zone.Target
}

// Event is one input to the drafter.
type Event interface{ drafterEvent() }

// Arm enters create-zone mode. Only administrators can arm the drafter.
type Arm struct{ Role domain.Role }

type PointerDown struct{ At Point }
type PointerMove struct{ At Point }
type PointerUp struct{ At Point }

// Confirm supplies the metadata for the pending draft. Bounds come from the
// draft itself.
type Confirm struct {
	Name               string
	Clickable          bool
	NavigationTarget   string
	BackgroundImageRef string
}

type Cancel struct{}

// BeginEdit opens an existing zone as the pending draft.
type BeginEdit struct {
	Target zone.Target
	Zone   domain.Zone
}

func (Arm) drafterEvent()         {}
func (PointerDown) drafterEvent() {}
func (PointerMove) drafterEvent() {}
func (PointerUp) drafterEvent()   {}
func (Confirm) drafterEvent()     {}
func (Cancel) drafterEvent()      {}
func (BeginEdit) drafterEvent()   {}

// Apply returns the state after ev. The only error is a validation failure
// on Confirm, in which case the returned state equals s.
func (s State) Apply(ev Event) (State, Outcome, error) {
	switch e := ev.(type) {
	case Arm:
		if e.Role != domain.RoleAdmin || s.Phase != Idle {
			return s, Outcome{}, nil
		}
		s.Armed = true
		return s, Outcome{}, nil

	case PointerDown:
		if !s.Armed || s.Phase != Idle {
			return s, Outcome{}, nil
		}
		s.Phase = Dragging
		s.Start, s.End = e.At, e.At
		return s, Outcome{}, nil

	case PointerMove:
		if s.Phase != Dragging {
			return s, Outcome{}, nil
		}
		s.End = e.At
		return s, Outcome{}, nil

	case PointerUp:
		if !s.Armed {
			return s, Outcome{}, nil
		}
		if s.Phase == Dragging {
			b := Rect(s.Start, e.At)
			if LargeEnough(b) {
				s.Phase = PendingMetadata
				s.End = e.At
				s.Draft = domain.Zone{Bounds: b, Clickable: true}
				s.Editing = nil
				return s, Outcome{Kind: Drafted, Zone: s.Draft}, nil
			}
		}
		if s.Phase == PendingMetadata {
			return s, Outcome{}, nil
		}
		return State{}, Outcome{Kind: Disarmed}, nil

	case Confirm:
		if s.Phase != PendingMetadata {
			return s, Outcome{}, nil
		}
		z := s.Draft
		z.Name = e.Name
		z.Clickable = e.Clickable
		z.NavigationTarget = e.NavigationTarget
		z.BackgroundImageRef = e.BackgroundImageRef
		z = z.Normalized()
		if err := z.Validate(); err != nil {
			return s, Outcome{}, err
		}
		return State{}, Outcome{Kind: Committed, Zone: z, Target: s.Editing}, nil

	case Cancel:
		switch {
		case s.Phase == PendingMetadata:
			return State{}, Outcome{Kind: Discarded}, nil
		case s.Armed:
			return State{}, Outcome{Kind: Disarmed}, nil
		}
		return s, Outcome{}, nil

	case BeginEdit:
		if s.Phase != Idle {
			return s, Outcome{}, nil
		}
		target := e.Target
		return State{Phase: PendingMetadata, Draft: e.Zone, Editing: &target}, Outcome{Kind: Drafted, Zone: e.Zone}, nil
	}
	return s, Outcome{}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
