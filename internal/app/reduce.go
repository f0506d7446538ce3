package app

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/drafter"
	"github.com/alexanderramin/plantmap/internal/grid"
)

var ErrUnknownFilter = errors.New("unknown filter value")

// Reduce applies cmd to s. It returns the next state, an optional effect to
// perform, and a validation error. On error the returned state is s.
// Commands that do not apply in the current state are ignored.
func Reduce(s State, cmd Command) (State, Effect, error) {
	switch c := cmd.(type) {
	case ToggleRole:
		s.Role = s.Role.Toggle()
		if s.Role != domain.RoleAdmin {
			s.Drafter = drafter.State{}
		}
		return s, nil, nil

	case ArmZoneCreation:
		if s.Role != domain.RoleAdmin {
			return s, nil, ErrForbidden
		}
		if !s.OnOverview() {
			return s, nil, nil
		}
		return applyDrafter(s, drafter.Arm{Role: s.Role})

	case PointerDown:
		if !s.OnOverview() || s.Role != domain.RoleAdmin {
			return s, nil, nil
		}
		return applyDrafter(s, drafter.PointerDown{At: c.At})

	case PointerMove:
		if !s.OnOverview() {
			return s, nil, nil
		}
		return applyDrafter(s, drafter.PointerMove{At: c.At})

	case PointerUp:
		if !s.OnOverview() {
			return s, nil, nil
		}
		return applyDrafter(s, drafter.PointerUp{At: c.At})

	case ConfirmZone:
		if s.Role != domain.RoleAdmin {
			return s, nil, ErrForbidden
		}
		return applyDrafter(s, drafter.Confirm{
			Name:               c.Name,
			Clickable:          c.Clickable,
			NavigationTarget:   c.NavigationTarget,
			BackgroundImageRef: c.BackgroundImageRef,
		})

	case CancelZone:
		return applyDrafter(s, drafter.Cancel{})

	case EditZone:
		if s.Role != domain.RoleAdmin {
			return s, nil, ErrForbidden
		}
		return applyDrafter(s, drafter.BeginEdit{Target: c.Row.Target(), Zone: c.Row.Zone})

	case DeleteZone:
		if s.Role != domain.RoleAdmin {
			return s, nil, ErrForbidden
		}
		return s, DeleteZoneEffect{Target: c.Target}, nil

	case OpenZone:
		if !s.OnOverview() || s.Drafter.Armed || s.Drafter.Pending() || !c.Zone.CanNavigate() {
			return s, nil, nil
		}
		s.ViewID = c.Zone.NavigationTarget
		s.ZoneName = c.Zone.Name
		s.CreatingProject = false
		s.Selection = grid.Selection{}
		s.Inspected = nil
		return s, nil, nil

	case BackToOverview:
		s.ViewID = ""
		s.ZoneName = ""
		s.CreatingProject = false
		s.Selection = grid.Selection{}
		s.Inspected = nil
		return s, nil, nil

	case BeginProject:
		if s.OnOverview() {
			return s, nil, nil
		}
		s.CreatingProject = true
		s.Selection = grid.Selection{}
		s.Inspected = nil
		return s, nil, nil

	case ToggleCell:
		if s.OnOverview() || !c.Cell.InBounds() {
			return s, nil, nil
		}
		if s.CreatingProject {
			s.Selection = s.Selection.Toggle(c.Cell)
			return s, nil, nil
		}
		cell := c.Cell
		s.Inspected = &cell
		return s, nil, nil

	case SubmitProject:
		if !s.CreatingProject {
			return s, nil, nil
		}
		if s.Selection.Len() == 0 {
			return s, nil, domain.ErrNoCells
		}
		req := CreateProjectRequest{
			Title:        c.Title,
			Engineer:     c.Engineer,
			Type:         c.Type,
			DurationDays: c.DurationDays,
			Description:  c.Description,
			Priority:     c.Priority,
			ZoneName:     s.ZoneName,
			ViewID:       s.ViewID,
			Cells:        s.Selection.Cells(),
		}
		s.CreatingProject = false
		s.Selection = grid.Selection{}
		return s, CreateProjectEffect{Request: req}, nil

	case CancelProject:
		s.CreatingProject = false
		s.Selection = grid.Selection{}
		return s, nil, nil

	case SetDateBucket:
		if !validBucket(c.Bucket) {
			return s, nil, fmt.Errorf("%w: date %q", ErrUnknownFilter, c.Bucket)
		}
		s.Criteria.Date = c.Bucket
		return s, nil, nil

	case SetTypeSelector:
		if c.Selector != domain.TypeAll && !domain.ProjectType(c.Selector).Valid() {
			return s, nil, fmt.Errorf("%w: type %q", ErrUnknownFilter, c.Selector)
		}
		s.Criteria.Type = c.Selector
		return s, nil, nil

	case InspectCell:
		if s.OnOverview() || !c.Cell.InBounds() {
			return s, nil, nil
		}
		cell := c.Cell
		s.Inspected = &cell
		return s, nil, nil

	case CloseInspector:
		s.Inspected = nil
		return s, nil, nil
	}
	return s, nil, fmt.Errorf("unsupported command %T", cmd)
}

func applyDrafter(s State, ev drafter.Event) (State, Effect, error) {
	next, out, err := s.Drafter.Apply(ev)
	if err != nil {
		return s, nil, err
	}
	s.Drafter = next
	if out.Kind != drafter.Committed {
		return s, nil, nil
	}
	if out.Target != nil {
		return s, EditZoneEffect{Target: *out.Target, Zone: out.Zone}, nil
	}
	return s, CreateZoneEffect{Zone: out.Zone}, nil
}

func validBucket(b domain.DateBucket) bool {
	for _, v := range domain.DateBuckets {
		if v == b {
			return true
		}
	}
	return false
}
