package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/report"
)

const reportBarWidth = 20

// FormatGeneralReport renders the consolidated project report: overall
// progress, per-milestone verdicts, the weekly curve and the report log.
func FormatGeneralReport(v *report.GeneralReportView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(v.ProjectName), StatusPill(v.ProjectStatus))
	fmt.Fprintf(&b, "%s %s\n", Dim("client:  "), orDash(v.ClientName))
	fmt.Fprintf(&b, "%s %s\n", Dim("window:  "), DateRange(v.StartDate, v.EstimatedEndDate))
	fmt.Fprintf(&b, "%s %s %s\n", Dim("progress:"), RenderProgress(v.OverallProgress, reportBarWidth),
		Dim(fmt.Sprintf("(%d/%d sub-milestones)", v.CompletedSubMilestones, v.TotalSubMilestones)))
	fmt.Fprintf(&b, "%s %s %s\n", Dim("time:    "), RenderProgress(v.Timeline.ElapsedPct, reportBarWidth),
		Dim(fmt.Sprintf("(%d days left)", v.Timeline.DaysRemaining)))

	b.WriteString("\n" + Header("Milestones") + "\n")
	if len(v.Milestones) == 0 {
		b.WriteString(Dim("No milestones apply to this project.") + "\n")
	}
	for _, m := range v.Milestones {
		verdict := Dim("unscheduled")
		switch {
		case m.Badge != nil:
			verdict = BadgeLabel(*m.Badge)
		case m.Live != nil:
			verdict = StateLabel(m.Live.State)
			if m.Live.Detail != "" {
				verdict += " " + Dim(m.Live.Detail)
			}
		}
		fmt.Fprintf(&b, "%s %s  %s\n", Bold(m.Name), RenderProgress(m.Percent, 10), verdict)
		if m.Schedule != nil {
			b.WriteString("  " + Dim(DateRange(m.Schedule.Start, m.Schedule.End)) + "\n")
		}
		for _, s := range m.Subs {
			line := fmt.Sprintf("  %s %s", Checkbox(s.Completed), s.Name)
			if s.CompletedAt != nil {
				line += " " + Dim(domain.FormatDate(*s.CompletedAt))
			}
			b.WriteString(line + "\n")
		}
	}

	if len(v.Chart.Points) > 0 {
		b.WriteString("\n" + Header("Progress curve") + "\n")
		t := Table{Headers: []string{"WEEK", "PLANNED", "ACTUAL", "+"}, RightAlign: map[int]bool{1: true, 2: true, 3: true}}
		for _, p := range v.Chart.Points {
			planned := fmt.Sprintf("%d%%", p.Planned)
			if !v.Chart.PlannedDefined {
				planned = Dim("--")
			}
			t.AddRow(p.Label, planned, fmt.Sprintf("%d%%", p.Actual), fmt.Sprintf("%d", p.Incremental))
		}
		b.WriteString(t.String())
	}

	b.WriteString("\n" + Header("Report log") + "\n")
	if len(v.Log) == 0 {
		b.WriteString(Dim("No weekly reports submitted yet.") + "\n")
	}
	for _, e := range v.Log {
		fmt.Fprintf(&b, "%s %s %3d%%  %s\n", Bold(fmt.Sprintf("Week %d", e.Week)), ReportStatusPill(e.Status), e.Progress, e.Summary)
	}

	for _, w := range v.Warnings {
		b.WriteString(StyleYellow.Render("WARNING: "+w) + "\n")
	}

	return RenderBox("General report", b.String())
}

// FormatWeeklyReport renders one week's checklist. Items ticked in earlier
// weeks are marked as carried over.
func FormatWeeklyReport(v *report.WeeklyReportView) string {
	var b strings.Builder

	title := fmt.Sprintf("Week %d", v.Week)
	if !v.Saved {
		title += " " + Dim("(not saved)")
	}
	fmt.Fprintf(&b, "%s  %s\n", Bold(v.ProjectName), title)
	fmt.Fprintf(&b, "%s %s\n", Dim("status:  "), ReportStatusPill(v.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("progress:"), RenderProgress(v.Progress, reportBarWidth))
	fmt.Fprintf(&b, "%s %s\n", Dim("summary: "), v.Summary)

	for _, m := range v.Milestones {
		fmt.Fprintf(&b, "\n%s %s\n", Bold(m.Name), Dim(fmt.Sprintf("%d/%d", m.CheckedSubs, m.TotalSubs)))
		for _, s := range m.Subs {
			line := fmt.Sprintf("  %s %s", Checkbox(s.Checked), s.Name)
			if s.Locked {
				line += " " + Dim("(earlier week)")
			}
			b.WriteString(line + "\n")
		}
	}
	if v.AllComplete {
		b.WriteString("\n" + StyleGreen.Render("All sub-milestones complete.") + "\n")
	}
	return b.String()
}

func FormatSubmitResult(res *app.SubmitReportResult) string {
	verb := "Updated"
	if res.Created {
		verb = "Saved"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s week %d report: %s\n", verb, res.Report.Week, RenderProgress(res.Report.Progress, reportBarWidth))
	if len(res.CarriedForward) > 0 {
		weeks := make([]string, len(res.CarriedForward))
		for i, w := range res.CarriedForward {
			weeks[i] = strconv.Itoa(w)
		}
		b.WriteString(Dim("Carried completions forward to week "+strings.Join(weeks, ", ")) + "\n")
	}
	if res.ProjectCompleted {
		b.WriteString(StyleGreen.Render("Project marked as completed.") + "\n")
	} else if res.AllComplete {
		b.WriteString(Dim("Every sub-milestone is done; pass --complete to close the project.") + "\n")
	}
	return b.String()
}
