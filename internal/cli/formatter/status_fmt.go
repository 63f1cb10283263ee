package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/app"
)

const statusProgressBarWidth = 10

// FormatDashboard renders the portfolio table and the per-status tally.
func FormatDashboard(stats *app.DashboardStats) string {
	var b strings.Builder

	t := Table{
		Headers:    []string{"NAME", "STATUS", "PROGRESS", "TIME", "LEFT", "WEEK"},
		RightAlign: map[int]bool{4: true, 5: true},
	}
	for _, p := range stats.Projects {
		name := Bold(p.ProjectName)
		if p.Behind {
			name += " " + StyleRed.Render("▼")
		}
		t.AddRow(
			name,
			StatusPill(p.Status),
			RenderProgress(p.OverallProgress, statusProgressBarWidth),
			RenderCompactBar(p.TimeElapsedPct, statusProgressBarWidth, false),
			fmt.Sprintf("%dd", p.DaysRemaining),
			fmt.Sprintf("%d", p.LatestWeek),
		)
	}
	if len(stats.Projects) == 0 {
		b.WriteString(Dim("No projects.") + "\n")
	} else {
		b.WriteString(t.String())
	}

	b.WriteString("\n")
	parts := []string{
		StyleGreen.Render(fmt.Sprintf("%d On Track", stats.OnTrack)),
		StyleYellow.Render(fmt.Sprintf("%d At Risk", stats.AtRisk)),
		StyleRed.Render(fmt.Sprintf("%d Off Track", stats.OffTrack)),
		StyleBlue.Render(fmt.Sprintf("%d On Hold", stats.OnHold)),
		StyleDim.Render(fmt.Sprintf("%d Completed", stats.Completed)),
	}
	b.WriteString(strings.Join(parts, ", ") + "\n")

	return RenderBox(fmt.Sprintf("Status (%d projects)", stats.Total), b.String())
}

func FormatManagerStats(s *app.ManagerStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("manager:    "), Bold(s.ManagerID))
	fmt.Fprintf(&b, "%s %d total, %d completed, %d in progress, %d at risk\n",
		Dim("projects:   "), s.Total, s.Completed, s.InProgress, s.AtRisk)
	fmt.Fprintf(&b, "%s %s\n", Dim("completion: "), RenderProgress(int(s.CompletionRate*100+0.5), statusProgressBarWidth))
	fmt.Fprintf(&b, "%s %.1f / 5\n", Dim("rating:     "), s.Rating)
	return b.String()
}
