// Package table models a Markdown pipe table as ordered named columns and
// rows of trimmed string cells, and provides the lenient parser and the GFM
// renderer used by gramsort.
package table

// Row maps a column name to its trimmed cell value.
type Row map[string]string

// Table is an ordered list of named columns and an ordered list of rows.
// Every row carries a value (possibly empty) for every column.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds a row built from positional values. Missing trailing values are
// stored as empty strings; extra values are ignored.
func (t *Table) Append(values ...string) {
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(column string) bool {
	return t.indexOf(column) >= 0
}

// Column returns the values of one column in row order, or nil if the column
// does not exist.
func (t *Table) Column(column string) []string {
	if !t.Has(column) {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[column]
	}
	return out
}

// AddColumn appends a column if it is not already present. Existing rows get
// an empty value for it.
func (t *Table) AddColumn(column string) {
	if t.Has(column) {
		return
	}
	t.Columns = append(t.Columns, column)
	for _, r := range t.Rows {
		r[column] = ""
	}
}

// DropColumn removes a column from the column list and from every row.
func (t *Table) DropColumn(column string) {
	i := t.indexOf(column)
	if i < 0 {
		return
	}
	t.Columns = append(t.Columns[:i:i], t.Columns[i+1:]...)
	for _, r := range t.Rows {
		delete(r, column)
	}
}

// Filter returns a new table with the same columns holding copies of the
// rows for which keep returns true, in their original order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns...)
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r.clone())
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return t.Filter(func(Row) bool { return true })
}

// Values returns the cells of row in column order.
func (t *Table) Values(row Row) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = row[col]
	}
	return out
}

func (t *Table) indexOf(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
