package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/auth"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/service"
)

// App holds the services CLI commands run against and the operator identity
// they act as.
type App struct {
	ProjectTypes service.ProjectTypeService
	Clients      service.ClientService
	Milestones   service.MilestoneService
	Projects     service.ProjectService
	Reports      service.ReportService
	Status       service.StatusService
	Import       service.ImportService

	// Tokens is nil when no signing secret is configured.
	Tokens *auth.Service
	Actor  domain.Actor
	Now    func() time.Time
	// Serve blocks running the HTTP API until ctx is done.
	Serve func(ctx context.Context) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

// Options are the persistent flags every command shares.
type Options struct {
	ConfigFile string
	DBPath     string
}

// Builder wires an App from the persistent flags. The returned cleanup runs
// after the command finishes.
type Builder func(opts Options) (*App, func(), error)

type rootState struct {
	opts    Options
	build   Builder
	app     *App
	cleanup func()
}

func (s *rootState) App() (*App, error) {
	if s.app == nil {
		return nil, errors.New("application not initialised")
	}
	return s.app, nil
}

// NewRootCmd creates the top-level "cadence" command. build runs once before
// any subcommand.
func NewRootCmd(build Builder) *cobra.Command {
	state := &rootState{build: build}

	root := &cobra.Command{
		Use:           "cadence",
		Short:         "Project milestone tracking and weekly progress reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := state.build(state.opts)
			if err != nil {
				return err
			}
			state.app, state.cleanup = app, cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.cleanup != nil {
				state.cleanup()
			}
		},
	}

	root.PersistentFlags().StringVar(&state.opts.ConfigFile, "config", "", "config file (default ./cadence.yaml or ~/.cadence/cadence.yaml)")
	root.PersistentFlags().StringVar(&state.opts.DBPath, "db", "", "SQLite database path (overrides db.path)")

	root.AddCommand(
		newServeCmd(state),
		newImportCmd(state),
		newProjectCmd(state),
		newClientCmd(state),
		newMilestoneCmd(state),
		newReportCmd(state),
		newStatusCmd(state),
		newTokenCmd(state),
	)

	return root
}
