package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned, header-underlined text table. Widths are measured
// on visible text, so styled cells line up.
type Table struct {
	Headers []string
	Rows    [][]string
	// RightAlign marks numeric columns by index.
	RightAlign map[int]bool
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (t *Table) writeCell(b *strings.Builder, i int, cell string, width int, last bool) {
	pad := max(width-lipgloss.Width(cell), 0)
	if t.RightAlign[i] {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(cell)
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		return
	}
	b.WriteString(cell)
	if !last {
		b.WriteString(strings.Repeat(" ", pad+colGap))
	}
}

func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.widths()
	last := len(widths) - 1

	var b strings.Builder
	for i, h := range t.Headers {
		t.writeCell(&b, i, StyleHeader.Render(h), widths[i], i == last)
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			t.writeCell(&b, i, cell, widths[i], i == last)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTable is shorthand for a left-aligned Table.
func RenderTable(headers []string, rows [][]string) string {
	t := Table{Headers: headers, Rows: rows}
	return t.String()
}
