package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/plantmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newZonesCmd(a *App) *cobra.Command {
	var manage, showMap bool

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List the effective overview zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showMap {
				zones, err := a.Zones.Effective(cmdContext(cmd))
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out(), formatter.RenderOverview(zones, nil))
			}
			return printZones(cmdContext(cmd), a, manage)
		},
	}

	cmd.Flags().BoolVar(&manage, "manage", false, "Show the management listing with origin and keys")
	cmd.Flags().BoolVar(&showMap, "map", false, "Draw the overview map above the table")
	return cmd
}

func printZones(ctx context.Context, a *App, manage bool) error {
	if manage {
		rows, err := a.Zones.Manageable(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.out(), formatter.FormatManagedZones(rows))
		return err
	}
	zones, err := a.Zones.Effective(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.out(), formatter.FormatZones(zones))
	return err
}
