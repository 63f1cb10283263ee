package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/domain"
)

func newTokenCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(state))
	return cmd
}

func newTokenIssueCmd(state *rootState) *cobra.Command {
	var user, role string

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a signed bearer token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			if app.Tokens == nil {
				return errors.New("auth.secret is required to issue tokens (set CADENCE_AUTH_SECRET)")
			}
			token, err := app.Tokens.GenerateToken(domain.Actor{ID: user, Role: domain.Role(role)})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User ID the token identifies")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleManager), "admin or manager")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
