package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive plant map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmdContext(cmd), a)
		},
	}
}

func runTUI(ctx context.Context, a *App) error {
	p := tea.NewProgram(newAppModel(a),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
