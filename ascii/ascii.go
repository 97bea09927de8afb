// Package ascii renders width-aware aligned tables for the CLI's
// -format=table output. Plain rune or byte counting misaligns columns once
// a cell contains a wide (e.g. CJK) or zero-width character, so column
// widths are measured with go-runewidth the same way the teacher's own
// box-drawing helpers measure content width.
package ascii

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns s's terminal display width.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Table renders header and rows as a left-aligned, space-padded table, each
// column sized to the display width of its widest cell (header included).
// Rows shorter than header are padded with empty cells; rows longer than
// header are truncated to header's column count.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow(&b, header, widths)
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		// Last column doesn't need trailing padding.
		if i < len(widths)-1 {
			if pad := widths[i] - StringWidth(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}
	b.WriteByte('\n')
}
