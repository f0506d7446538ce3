package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/script"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *App) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Run a scripted session and print the resulting plant state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.LoadFile(args[0])
			if err != nil {
				return err
			}
			return runReplay(cmdContext(cmd), a, s, quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the step report")
	return cmd
}

func runReplay(ctx context.Context, a *App, s script.Script, quiet bool) error {
	role := a.Role
	if s.Role != "" {
		role = s.InitialRole()
	}
	ctrl := a.NewController(role)
	logger := a.Logger
	if logger != nil {
		logger = logger.With("script", s.Name)
	}

	report, runErr := script.NewRunner(ctrl, logger).Run(ctx, s)

	w := a.out()
	fmt.Fprint(w, formatReport(s, report))
	if !quiet {
		if err := printSummary(ctx, w, a); err != nil {
			return err
		}
	}
	return runErr
}

func formatReport(s script.Script, r script.Report) string {
	rows := make([][]string, 0, len(r.Steps))
	for _, st := range r.Steps {
		outcome := formatter.StyleGreen.Render("✔")
		if st.Err != nil {
			outcome = formatter.StyleRed.Render("✖ " + st.Err.Error())
			if s.Steps[st.Index].ExpectError {
				outcome = formatter.StyleYellow.Render("✔ rejected: " + st.Err.Error())
			}
		}
		rows = append(rows, []string{strconv.Itoa(st.Index + 1), st.Action, outcome})
	}
	title := "Replay"
	if s.Name != "" {
		title = "Replay: " + s.Name
	}
	return formatter.Header(title) + "\n" + formatter.RenderTable([]string{"#", "ACTION", "RESULT"}, rows) + "\n"
}

func printSummary(ctx context.Context, w io.Writer, a *App) error {
	zones, err := a.Zones.Effective(ctx)
	if err != nil {
		return err
	}
	projects, err := a.Board.Projects(ctx)
	if err != nil {
		return err
	}
	now := a.now()

	fmt.Fprint(w, formatter.FormatZones(zones))
	fmt.Fprintln(w)
	fmt.Fprint(w, formatter.FormatProjects(projects, now))
	fmt.Fprintln(w)
	fmt.Fprint(w, formatter.Header("Notifications")+"\n")
	fmt.Fprint(w, formatter.FormatNotifications(notifications(a), now))
	return nil
}

func notifications(a *App) []domain.Notification {
	if a.Feed == nil {
		return nil
	}
	return a.Feed.Items()
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
