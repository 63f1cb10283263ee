package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

func ProjectStatusStyle(status domain.ProjectStatus) lipgloss.Style {
	switch status {
	case domain.ProjectOnTrack:
		return StyleGreen
	case domain.ProjectAtRisk:
		return StyleYellow
	case domain.ProjectOffTrack:
		return StyleRed
	case domain.ProjectOnHold:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusPill renders a project status such as "● At Risk".
func StatusPill(status domain.ProjectStatus) string {
	if status == domain.ProjectCompleted {
		return StyleDim.Render("✔ " + string(status))
	}
	return ProjectStatusStyle(status).Render("● " + string(status))
}

func ReportStatusPill(status domain.ReportStatus) string {
	switch status {
	case domain.ReportOnTrack:
		return StyleGreen.Render("● " + string(status))
	case domain.ReportAtRisk:
		return StyleYellow.Render("● " + string(status))
	case domain.ReportOffTrack:
		return StyleRed.Render("● " + string(status))
	default:
		return StyleDim.Render(string(status))
	}
}

// BadgeLabel renders the verdict for a finished milestone.
func BadgeLabel(b progress.Badge) string {
	if b == progress.BadgeLate {
		return StyleRed.Render("✖ late")
	}
	return StyleGreen.Render("✔ on time")
}

// StateLabel renders the live schedule state of an unfinished milestone.
func StateLabel(s progress.State) string {
	switch s {
	case progress.StateDelayed:
		return StyleRed.Render("▲ delayed")
	case progress.StateAtRisk:
		return StyleYellow.Render("● at risk")
	case progress.StateOnTime:
		return StyleGreen.Render("● on time")
	case progress.StateFuture:
		return StyleBlue.Render("○ upcoming")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
