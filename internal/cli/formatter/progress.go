package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func barStyleFor(pct int) func(...string) string {
	switch {
	case pct < 33:
		return StyleRed.Render
	case pct < 66:
		return StyleYellow.Render
	default:
		return StyleGreen.Render
	}
}

func blocks(pct, width int) (string, string) {
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	return strings.Repeat(filledBlock, filled), strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders an integer percentage as [████░░░░]  45%.
// Green from 66, yellow from 33, red below.
func RenderProgress(pct, width int) string {
	pct = clampPct(pct)
	filled, empty := blocks(pct, width)
	return fmt.Sprintf("[%s] %3d%%", barStyleFor(pct)(filled+empty), pct)
}

// RenderCompactBar is the bare bar without brackets or a label. A dimmed
// bar carries no color, so it stays readable in plain output.
func RenderCompactBar(pct, width int, dim bool) string {
	pct = clampPct(pct)
	filled, empty := blocks(pct, width)
	if dim {
		return filled + empty
	}
	return barStyleFor(pct)(filled) + StyleDim.Render(empty)
}
