package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/notify"
	"github.com/alexanderramin/plantmap/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and process-wide settings used by CLI commands.
type App struct {
	Zones    service.ZoneService
	Projects service.ProjectService
	Board    service.BoardService
	Feed     *notify.Feed

	Role   domain.Role
	Now    app.Clock
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The root command
	// starts the TUI only when it returns true.
	IsInteractive func() bool

	Out io.Writer
}

// NewController starts a session in role against the app's services.
func (a *App) NewController(role domain.Role) *app.Controller {
	return app.NewController(app.NewState(role), a.Zones, a.Projects, a.Board, a.Logger)
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// roleValue is a pflag.Value restricted to the known roles.
type roleValue struct{ role *domain.Role }

var _ pflag.Value = roleValue{}

func (v roleValue) String() string {
	if v.role == nil {
		return ""
	}
	return string(*v.role)
}

func (v roleValue) Set(s string) error {
	r, err := domain.ParseRole(s)
	if err != nil {
		return err
	}
	*v.role = r
	return nil
}

func (roleValue) Type() string { return "role" }

// NewRootCmd creates the top-level "plantmap" command. Without a
// subcommand it opens the TUI on a terminal and prints the zone table
// otherwise.
func NewRootCmd(a *App) *cobra.Command {
	if a.Role == "" {
		a.Role = domain.RoleEngineer
	}

	root := &cobra.Command{
		Use:           "plantmap",
		Short:         "Plant floor map with zone overlays and project grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.IsInteractive != nil && a.IsInteractive() {
				return runTUI(cmdContext(cmd), a)
			}
			return printZones(cmdContext(cmd), a, false)
		},
	}
	root.PersistentFlags().Var(roleValue{role: &a.Role}, "role", "Start as engineer or admin")

	root.AddCommand(
		newTUICmd(a),
		newZonesCmd(a),
		newTypesCmd(a),
		newReplayCmd(a),
	)
	return root
}
