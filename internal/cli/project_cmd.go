package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
)

// resolveProjectID accepts a full id, a unique id prefix or an exact
// project name (case-insensitive).
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	if len(matches) == 0 {
		for _, p := range projects {
			if strings.EqualFold(p.Name, input) {
				matches = append(matches, p.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect and remove projects",
	}

	cmd.AddCommand(
		newProjectListCmd(state),
		newProjectShowCmd(state),
		newProjectDeleteCmd(state),
	)

	return cmd
}

func newProjectListCmd(state *rootState) *cobra.Command {
	var manager string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var projects []*domain.Project
			if manager != "" {
				projects, err = app.Projects.ListByManager(ctx, manager)
			} else {
				projects, err = app.Projects.List(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&manager, "manager", "", "Only projects managed by this user")
	return cmd
}

func newProjectShowCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project and its milestone schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Get(ctx, id)
			if err != nil {
				return err
			}
			templates, err := app.Milestones.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(templates))
			for _, m := range templates {
				names[m.ID] = m.Name
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProject(p, names))
			return nil
		},
	}
}

func newProjectDeleteCmd(state *rootState) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete PROJECT",
		Short: "Delete a project and all of its weekly reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to delete without --yes")
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, app.Actor, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
