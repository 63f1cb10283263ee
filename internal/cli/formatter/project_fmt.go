package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// FormatProjectList renders projects as a table sorted as given.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}
	t := Table{Headers: []string{"ID", "NAME", "MANAGER", "STATUS", "WINDOW", "DUE"}}
	for _, p := range projects {
		due := DueLabel(p.EstimatedEndDate, now)
		if p.IsCompleted() {
			due = Dim("--")
		}
		t.AddRow(
			TruncID(p.ID),
			Bold(p.Name),
			p.ManagerID,
			StatusPill(p.Status),
			DateRange(p.StartDate, p.EstimatedEndDate),
			due,
		)
	}
	return t.String()
}

// FormatProject renders one project with its milestone schedule. names maps
// milestone ids to template names; unknown ids fall back to the id.
func FormatProject(p *domain.Project, names map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), StatusPill(p.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("id:      "), p.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("client:  "), orDash(p.ClientID))
	fmt.Fprintf(&b, "%s %s\n", Dim("manager: "), p.ManagerID)
	fmt.Fprintf(&b, "%s %s\n", Dim("type:    "), p.ProjectType)
	fmt.Fprintf(&b, "%s %s\n", Dim("window:  "), DateRange(p.StartDate, p.EstimatedEndDate))

	b.WriteString("\n" + Header("Schedule") + "\n")
	if len(p.Milestones) == 0 {
		b.WriteString(Dim("No milestones scheduled.") + "\n")
		return b.String()
	}
	t := Table{Headers: []string{"MILESTONE", "START", "END", "DAYS"}, RightAlign: map[int]bool{3: true}}
	for _, pm := range p.Milestones {
		name := names[pm.MilestoneID]
		if name == "" {
			name = pm.MilestoneID
		}
		t.AddRow(
			name,
			domain.FormatDate(pm.StartDate),
			domain.FormatDate(pm.EndDate),
			fmt.Sprintf("%d", domain.DaysBetween(pm.StartDate, pm.EndDate)+1),
		)
	}
	b.WriteString(t.String())
	return b.String()
}
