package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
)

// FormatMilestones lists templates with their sub-milestones indented below.
func FormatMilestones(milestones []*domain.Milestone) string {
	if len(milestones) == 0 {
		return Dim("No milestone templates.") + "\n"
	}
	var b strings.Builder
	for i, m := range milestones {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s  %s\n", TruncID(m.ID), Bold(m.Name), StylePurple.Render(strings.Join(m.ProjectTypes, ", ")))
		if m.Description != "" {
			b.WriteString("  " + Dim(m.Description) + "\n")
		}
		for _, sm := range m.SubMilestones {
			fmt.Fprintf(&b, "  • %s %s\n", sm.Name, Dim("("+sm.ID+")"))
		}
	}
	return b.String()
}
