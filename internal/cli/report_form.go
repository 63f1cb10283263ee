package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/report"
)

func cadenceHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// subMilestoneOptions lists the sub-milestones still open before this week,
// pre-selecting the ones the saved report already checks. Items completed
// in earlier weeks stay completed and are not offered.
func subMilestoneOptions(view *report.WeeklyReportView) (opts []huh.Option[string], selected []string) {
	for _, m := range view.Milestones {
		for _, s := range m.Subs {
			if s.Locked {
				continue
			}
			opts = append(opts, huh.NewOption(m.Name+" / "+s.Name, s.ID).Selected(s.Checked))
			if s.Checked {
				selected = append(selected, s.ID)
			}
		}
	}
	return opts, selected
}

func validateSummary(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("summary is required")
	}
	return nil
}

// weeklyReportForm collects a report for the week shown in view into in.
// Fields start from the saved report, or empty for a placeholder week.
func weeklyReportForm(view *report.WeeklyReportView, in *app.SubmitReportInput) *huh.Form {
	if view.Saved {
		in.Summary = view.Summary
		in.Status = view.Status
	}
	if in.Status == "" {
		in.Status = domain.ReportOnTrack
	}

	fields := []huh.Field{
		huh.NewInput().
			Title(fmt.Sprintf("Week %d summary", view.Week)).
			Value(&in.Summary).
			Validate(validateSummary),
		huh.NewSelect[domain.ReportStatus]().
			Title("Status").
			Options(huh.NewOptions(domain.ReportOnTrack, domain.ReportAtRisk, domain.ReportOffTrack)...).
			Value(&in.Status),
	}
	opts, selected := subMilestoneOptions(view)
	in.CompletedSubMilestones = selected
	if len(opts) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Completed sub-milestones").
			Options(opts...).
			Value(&in.CompletedSubMilestones))
	}
	fields = append(fields, huh.NewConfirm().
		Title("Mark the project completed if everything is done?").
		Value(&in.MarkProjectCompleted))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(cadenceHuhTheme()).WithShowHelp(false)
}
