package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colGap = 2

	// MaxCellWidth caps the visible width of a plain table cell. Field
	// descriptions and assistant replies can be whole sentences.
	MaxCellWidth = 48
)

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell; styled cells are measured
// without their ANSI sequences.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		writeGap(&b, i, cols, widths[i]-lipgloss.Width(h))
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		writeGap(&b, i, cols, 0)
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			writeGap(&b, i, cols, widths[i]-lipgloss.Width(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeGap(b *strings.Builder, col, cols, pad int) {
	if col == cols-1 {
		return
	}
	b.WriteString(strings.Repeat(" ", max(pad, 0)+colGap))
}
