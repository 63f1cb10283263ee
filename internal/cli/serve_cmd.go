package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newServeCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			if app.Serve == nil {
				return errors.New("HTTP server is not configured")
			}
			return app.Serve(cmd.Context())
		},
	}
}
