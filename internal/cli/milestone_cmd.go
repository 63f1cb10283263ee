package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
)

func newMilestoneCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Browse milestone templates",
	}
	cmd.AddCommand(newMilestoneListCmd(state))
	return cmd
}

func newMilestoneListCmd(state *rootState) *cobra.Command {
	var projectType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestone templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var ms []*domain.Milestone
			if projectType != "" {
				ms, err = app.Milestones.Resolve(ctx, projectType)
			} else {
				ms, err = app.Milestones.List(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMilestones(ms))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectType, "type", "", "Only templates that apply to this project type ID")
	return cmd
}
