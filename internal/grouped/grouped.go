// Package grouped partitions a categorized table by category and writes the
// partitions as Markdown sub-tables under "##" headings.
package grouped

import (
	"errors"
	"fmt"
	"sort"

	"github.com/papapumpkin/gramsort/internal/table"
)

// ErrNotCategorized indicates the table lacks the category column.
var ErrNotCategorized = errors.New("table has no category column")

// Section is the rows of one category, without the category column.
type Section struct {
	Label string
	Table *table.Table
}

// Group splits t by the value of categoryColumn. Sections are sorted by label
// in ascending byte order; rows keep their source order within a section.
// The returned tables are copies, t is left unchanged.
func Group(t *table.Table, categoryColumn string) ([]Section, error) {
	if !t.Has(categoryColumn) {
		return nil, fmt.Errorf("%w: %q", ErrNotCategorized, categoryColumn)
	}

	var labels []string
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		label := r[categoryColumn]
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	sections := make([]Section, 0, len(labels))
	for _, label := range labels {
		part := t.Filter(func(r table.Row) bool { return r[categoryColumn] == label })
		part.DropColumn(categoryColumn)
		sections = append(sections, Section{Label: label, Table: part})
	}
	return sections, nil
}

// RowCount returns the total number of rows across sections.
func RowCount(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Table.Rows)
	}
	return n
}
