package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth bounds a column, in terminal cells
const maxCellWidth = 48

// table writes rows as space-separated columns aligned by display width, so
// that wide and combining runes line up
type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) error {
	widths := make([]int, len(t.header))
	all := append([][]string{t.header}, t.rows...)
	for _, row := range all {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cellText(cell)); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	for _, row := range all {
		for i, cell := range row {
			cell = cellText(cell)
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// cellText flattens line breaks and truncates to maxCellWidth cells
func cellText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, maxCellWidth, "…")
}
