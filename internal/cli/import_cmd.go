package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load project types, milestone templates, projects and reports from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.App()
			if err != nil {
				return err
			}
			res, err := app.Import.ImportFile(cmd.Context(), app.Actor, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d clients, %d project types, %d milestones, %d projects, %d reports\n",
				res.Clients, res.ProjectTypes, res.Milestones, res.Projects, res.Reports)
			return nil
		},
	}
}
