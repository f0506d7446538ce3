package app

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// Result reports what a dispatched command wrote.
type Result struct {
	Zone    *zone.ManagedZone
	Project *domain.Project
}

// Controller owns the session State and performs the effects Reduce asks
// for. It is not safe for concurrent use; commands run one at a time.
type Controller struct {
	state    State
	zones    ZoneUseCase
	projects ProjectUseCase
	board    BoardUseCase
	logger   *slog.Logger
}

func NewController(initial State, zones ZoneUseCase, projects ProjectUseCase, board BoardUseCase, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{state: initial, zones: zones, projects: projects, board: board, logger: logger}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Zones() ZoneUseCase { return c.zones }

func (c *Controller) Board() BoardUseCase { return c.board }

// Dispatch reduces cmd and runs its effect. If either step fails the state
// is left as it was.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	next, eff, err := Reduce(c.state, cmd)
	if err != nil {
		c.logger.DebugContext(ctx, "command rejected", "command", commandName(cmd), "error", err)
		return Result{}, err
	}

	var res Result
	switch e := eff.(type) {
	case CreateZoneEffect:
		created, err := c.zones.CreateZone(ctx, c.state.Role, e.Zone)
		if err != nil {
			return Result{}, err
		}
		res.Zone = &created
	case EditZoneEffect:
		if err := c.zones.EditZone(ctx, c.state.Role, e.Target, e.Zone); err != nil {
			return Result{}, err
		}
	case DeleteZoneEffect:
		if err := c.zones.DeleteZone(ctx, c.state.Role, e.Target); err != nil {
			return Result{}, err
		}
	case CreateProjectEffect:
		p, err := c.projects.CreateProject(ctx, e.Request)
		if err != nil {
			return Result{}, err
		}
		res.Project = p
	}

	c.state = next
	return res, nil
}

// DispatchAll runs cmds in order as one gesture. When a command fails the
// state returns to what it was before the first one; writes made by
// earlier commands are not undone, so callers batch only commands whose
// effects are pure state changes (pointer strokes, cell toggles, filters).
// The returned Result is the last one that wrote something.
func (c *Controller) DispatchAll(ctx context.Context, cmds ...Command) (Result, error) {
	saved := c.state
	var last Result
	for _, cmd := range cmds {
		res, err := c.Dispatch(ctx, cmd)
		if err != nil {
			c.state = saved
			return Result{}, err
		}
		if res.Zone != nil || res.Project != nil {
			last = res
		}
	}
	return last, nil
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case ToggleRole:
		return "toggle-role"
	case ArmZoneCreation:
		return "arm-zone-creation"
	case PointerDown, PointerMove, PointerUp:
		return "pointer"
	case ConfirmZone:
		return "confirm-zone"
	case CancelZone:
		return "cancel-zone"
	case EditZone:
		return "edit-zone"
	case DeleteZone:
		return "delete-zone"
	case OpenZone:
		return "open-zone"
	case BackToOverview:
		return "back"
	case BeginProject:
		return "begin-project"
	case ToggleCell:
		return "toggle-cell"
	case SubmitProject:
		return "submit-project"
	case CancelProject:
		return "cancel-project"
	case SetDateBucket, SetTypeSelector:
		return "filter"
	case InspectCell, CloseInspector:
		return "inspect"
	}
	return "unknown"
}
