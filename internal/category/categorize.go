package category

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/gramsort/internal/table"
)

// Categorize stores the label of every row's idColumn value into
// categoryColumn, adding that column when it is missing. The table is
// modified in place. A table without idColumn is rejected before any row is
// touched.
func (x *Index) Categorize(t *table.Table, idColumn, categoryColumn string) error {
	if !t.Has(idColumn) {
		return fmt.Errorf("%w: %q (columns: %s)", ErrMissingIDColumn, idColumn, strings.Join(t.Columns, ", "))
	}
	t.AddColumn(categoryColumn)
	for _, row := range t.Rows {
		row[categoryColumn] = x.Lookup(row[idColumn])
	}
	return nil
}
