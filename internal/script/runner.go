package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/drafter"
	"github.com/alexanderramin/plantmap/internal/zone"
)

var (
	ErrUnexpectedSuccess = errors.New("step was expected to fail")
	ErrZoneNotFound      = errors.New("zone not found")
)

// StepResult records the outcome of one step.
type StepResult struct {
	Index  int
	Action string
	Err    error
	Result app.Result
}

// Report is the outcome of a replay, one entry per executed step.
type Report struct {
	Steps []StepResult
}

// Failures counts steps that returned an error, expected or not.
func (r Report) Failures() int {
	n := 0
	for _, s := range r.Steps {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// Runner feeds script steps to a controller.
type Runner struct {
	ctrl   *app.Controller
	logger *slog.Logger
}

func NewRunner(ctrl *app.Controller, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{ctrl: ctrl, logger: logger}
}

// Run executes the steps in order. It stops at the first step whose error
// does not match its expect_error flag.
func (r *Runner) Run(ctx context.Context, s Script) (Report, error) {
	var report Report
	for i, step := range s.Steps {
		res, err := r.runStep(ctx, step)
		report.Steps = append(report.Steps, StepResult{Index: i, Action: step.Action, Err: err, Result: res})
		r.logger.DebugContext(ctx, "replay step", "index", i, "action", step.Action, "error", err)

		switch {
		case err != nil && !step.ExpectError:
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		case err == nil && step.ExpectError:
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Action, ErrUnexpectedSuccess)
		}
	}
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) (app.Result, error) {
	cmds, err := r.commands(ctx, step)
	if err != nil {
		return app.Result{}, err
	}
	return r.ctrl.DispatchAll(ctx, cmds...)
}

// commands translates a step into controller commands. Zone names are
// resolved against the current zone set.
func (r *Runner) commands(ctx context.Context, step Step) ([]app.Command, error) {
	switch step.Action {
	case "toggle_role":
		return []app.Command{app.ToggleRole{}}, nil
	case "arm":
		return []app.Command{app.ArmZoneCreation{}}, nil
	case "pointer_down":
		return []app.Command{app.PointerDown{At: point(step.At)}}, nil
	case "pointer_move":
		return []app.Command{app.PointerMove{At: point(step.At)}}, nil
	case "pointer_up":
		return []app.Command{app.PointerUp{At: point(step.At)}}, nil
	case "drag":
		return []app.Command{
			app.PointerDown{At: point(step.From)},
			app.PointerMove{At: point(step.To)},
			app.PointerUp{At: point(step.To)},
		}, nil
	case "confirm_zone":
		return []app.Command{app.ConfirmZone{
			Name:               step.Name,
			Clickable:          step.Clickable,
			NavigationTarget:   step.NavigationTarget,
			BackgroundImageRef: step.BackgroundImage,
		}}, nil
	case "cancel_zone":
		return []app.Command{app.CancelZone{}}, nil
	case "edit_zone":
		row, err := r.managed(ctx, step.Zone)
		if err != nil {
			return nil, err
		}
		return []app.Command{app.EditZone{Row: row}}, nil
	case "delete_zone":
		row, err := r.managed(ctx, step.Zone)
		if err != nil {
			return nil, err
		}
		return []app.Command{app.DeleteZone{Target: row.Target()}}, nil
	case "open_zone":
		zones, err := r.ctrl.Zones().Effective(ctx)
		if err != nil {
			return nil, err
		}
		z, ok := zones[step.Zone]
		if !ok {
			return nil, fmt.Errorf("%q: %w", step.Zone, ErrZoneNotFound)
		}
		return []app.Command{app.OpenZone{Zone: z}}, nil
	case "back":
		return []app.Command{app.BackToOverview{}}, nil
	case "begin_project":
		return []app.Command{app.BeginProject{}}, nil
	case "toggle_cell":
		return []app.Command{app.ToggleCell{Cell: cell(step.At)}}, nil
	case "select_cells":
		cmds := make([]app.Command, 0, len(step.Cells))
		for _, c := range step.Cells {
			cmds = append(cmds, app.ToggleCell{Cell: cell(c)})
		}
		return cmds, nil
	case "submit_project":
		return []app.Command{app.SubmitProject{
			Title:        step.Title,
			Engineer:     step.Engineer,
			Type:         domain.ProjectType(step.Type),
			DurationDays: step.DurationDays,
			Description:  step.Description,
			Priority:     domain.Priority(step.Priority),
		}}, nil
	case "cancel_project":
		return []app.Command{app.CancelProject{}}, nil
	case "filter":
		var cmds []app.Command
		if step.Date != "" {
			cmds = append(cmds, app.SetDateBucket{Bucket: domain.DateBucket(step.Date)})
		}
		if step.Type != "" {
			cmds = append(cmds, app.SetTypeSelector{Selector: domain.TypeSelector(step.Type)})
		}
		return cmds, nil
	case "inspect":
		return []app.Command{app.InspectCell{Cell: cell(step.At)}}, nil
	case "close_inspector":
		return []app.Command{app.CloseInspector{}}, nil
	}
	return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidScript, step.Action)
}

func (r *Runner) managed(ctx context.Context, name string) (zone.ManagedZone, error) {
	rows, err := r.ctrl.Zones().Manageable(ctx)
	if err != nil {
		return zone.ManagedZone{}, err
	}
	row, ok := zone.Find(rows, name)
	if !ok {
		return zone.ManagedZone{}, fmt.Errorf("%q: %w", name, ErrZoneNotFound)
	}
	return row, nil
}

func point(p Point) drafter.Point {
	if len(p) < 2 {
		return drafter.Point{}
	}
	x, y := p.xy()
	return drafter.Point{X: x, Y: y}
}

func cell(p Point) domain.Cell {
	if len(p) < 2 {
		return domain.Cell{X: -1, Y: -1}
	}
	x, y := p.xy()
	return domain.Cell{X: x, Y: y}
}
