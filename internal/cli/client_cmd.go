package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
)

func newClientCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Browse clients",
	}
	cmd.AddCommand(newClientListCmd(state))
	return cmd
}

func newClientListCmd(state *rootState) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			clients, err := app.Clients.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClients(clients))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many clients (0 for all)")
	return cmd
}
