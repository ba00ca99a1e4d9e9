package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// minHeaderPad is the extra width every column reserves beyond its header.
const minHeaderPad = 2

type align int

const (
	alignLeft align = iota
	alignRight
)

// Render writes t as a GFM pipe table: a header row, an alignment row and one
// line per data row, joined by newlines with no trailing newline.
//
// Columns are padded to a common display width, counting East Asian wide
// characters as two cells. A column whose non-empty cells all parse as
// numbers is right-aligned; every other column is left-aligned. Cell text is
// written unchanged.
func Render(w io.Writer, t *Table) error {
	if len(t.Columns) == 0 {
		return nil
	}

	// Ambiguous-width runes such as "…" count as one cell whatever the
	// locale, so output does not depend on the environment.
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false

	widths := make([]int, len(t.Columns))
	aligns := make([]align, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = cond.StringWidth(col) + minHeaderPad
		aligns[i] = columnAlign(t.Column(col))
		for _, r := range t.Rows {
			if cw := cond.StringWidth(r[col]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	writeRow(&b, cond, t.Columns, widths, aligns)
	b.WriteByte('\n')

	b.WriteByte('|')
	for i := range t.Columns {
		seg := strings.Repeat("-", widths[i]+1)
		if aligns[i] == alignRight {
			b.WriteString(seg + ":")
		} else {
			b.WriteString(":" + seg)
		}
		b.WriteByte('|')
	}

	for _, r := range t.Rows {
		b.WriteByte('\n')
		writeRow(&b, cond, t.Values(r), widths, aligns)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

func writeRow(b *strings.Builder, cond *runewidth.Condition, cells []string, widths []int, aligns []align) {
	b.WriteByte('|')
	for i, cell := range cells {
		pad := strings.Repeat(" ", widths[i]-cond.StringWidth(cell))
		b.WriteByte(' ')
		if aligns[i] == alignRight {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
		b.WriteString(" |")
	}
}

// columnAlign right-aligns columns of numbers, ignoring empty cells.
func columnAlign(values []string) align {
	seen := false
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return alignLeft
		}
		seen = true
	}
	if seen {
		return alignRight
	}
	return alignLeft
}
