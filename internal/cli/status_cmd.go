package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
)

func newStatusCmd(state *rootState) *cobra.Command {
	var manager string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the portfolio dashboard, or one manager's statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if manager != "" {
				stats, err := app.Status.ManagerStats(ctx, app.Actor, manager)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatManagerStats(stats))
				return nil
			}
			stats, err := app.Status.Dashboard(ctx, app.Actor, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&manager, "manager", "", "Show statistics for one manager")
	return cmd
}
