package cli

import (
	"fmt"

	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTypesCmd(a *App) *cobra.Command {
	var blends bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Show the project type legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.out(), formatter.FormatLegend())
			if blends {
				fmt.Fprintln(a.out())
				fmt.Fprint(a.out(), formatter.FormatBlends())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&blends, "blends", true, "Include the two-type overlap colours")
	return cmd
}
