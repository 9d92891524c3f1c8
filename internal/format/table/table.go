// Package table lays out aligned text columns for terminal views.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells, so styled cells align.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, 0, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], lipgloss.Width(cell))
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", max(widths[c]-lipgloss.Width(cell), 0))
			last := c == len(row)-1
			switch {
			case c < len(alignments) && alignments[c] == AlignRight:
				b.WriteString(pad)
				b.WriteString(cell)
			case last:
				b.WriteString(cell)
			default:
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

// Pairs formats label/value rows with right-aligned labels.
func Pairs(pairs ...[2]string) []string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0] + ":", p[1]})
	}
	return Format(rows, []Alignment{AlignRight, AlignLeft})
}
