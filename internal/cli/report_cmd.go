package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
)

func newReportCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "View and submit weekly progress reports",
	}

	cmd.AddCommand(
		newReportGeneralCmd(state),
		newReportWeekCmd(state),
		newReportSubmitCmd(state),
		newReportDeleteCmd(state),
	)

	return cmd
}

func newReportGeneralCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "general PROJECT",
		Short: "Show the consolidated report for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			view, err := a.Reports.GetGeneral(ctx, id, a.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGeneralReport(view))
			return nil
		},
	}
}

func parseWeek(s string) (int, error) {
	week, err := strconv.Atoi(s)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("invalid week %q: must be a positive integer", s)
	}
	return week, nil
}

func newReportWeekCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "week PROJECT WEEK",
		Short: "Show one week's report, or its placeholder when unsaved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.App()
			if err != nil {
				return err
			}
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			view, err := a.Reports.GetWeekly(ctx, id, week, a.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeeklyReport(view))
			return nil
		},
	}
}

func newReportSubmitCmd(state *rootState) *cobra.Command {
	var (
		week        int
		summary     string
		status      string
		done        []string
		complete    bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "submit PROJECT",
		Short: "Save a weekly report; progress is derived from the checked sub-milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.App()
			if err != nil {
				return err
			}
			if !interactive && summary == "" {
				return fmt.Errorf("--summary is required unless --interactive is set")
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if week == 0 {
				if week, err = a.Reports.NextWeek(ctx, id); err != nil {
					return err
				}
			}

			in := app.SubmitReportInput{
				ProjectID:              id,
				Week:                   week,
				Summary:                summary,
				Status:                 domain.ReportStatus(status),
				CompletedSubMilestones: done,
				MarkProjectCompleted:   complete,
			}
			if interactive {
				view, err := a.Reports.GetWeekly(ctx, id, week, a.now())
				if err != nil {
					return err
				}
				if err := weeklyReportForm(view, &in).RunWithContext(ctx); err != nil {
					return err
				}
			}

			res, err := a.Reports.Submit(ctx, a.Actor, in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmitResult(res))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week number (default: the week after the latest report)")
	cmd.Flags().StringVar(&summary, "summary", "", "What happened this week")
	cmd.Flags().StringVar(&status, "status", string(domain.ReportOnTrack), "On Track, At Risk or Off Track")
	cmd.Flags().StringSliceVar(&done, "done", nil, "Sub-milestone IDs completed this week (repeatable)")
	cmd.Flags().BoolVar(&complete, "complete", false, "Mark the project completed when every sub-milestone is done")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the report in a terminal form")

	return cmd
}

func newReportDeleteCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT WEEK",
		Short: "Delete one week's report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.App()
			if err != nil {
				return err
			}
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.Reports.Delete(ctx, a.Actor, id, week); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted week %d report\n", week)
			return nil
		},
	}
}
