// Package dataset loads tabular student records from CSV files.
package dataset

// Table holds raw string cells in header order.
// Numeric coercion is left to the preprocessing package.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header and rows. Every row must have
// len(columns) cells; rows are copied.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, len(rows)),
	}
	for i, c := range t.columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	for i, r := range rows {
		t.rows[i] = append([]string(nil), r...)
	}
	return t
}

// Columns returns the column names in header order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, bool) {
	j, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, true
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return NewTable(t.columns, t.rows)
}
