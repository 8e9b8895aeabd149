package recordmap

import "slices"

// Table is the in-memory tabular cache: an ordered collection of rows
// sharing one column set derived from a descriptor. It is owned by a
// RecordStore; GetTable() exposes it live, not as a snapshot.
type Table struct {
	columns []string
	index   map[string]int
	rows    []*Row
}

// NewTable creates an empty table with the given column set.
func NewTable(columns []string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{columns: slices.Clone(columns), index: index}
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Rows returns the live row collection in insertion order.
func (t *Table) Rows() []*Row {
	return t.rows
}

// RowCount returns the number of cached rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// NewRow creates a detached row with the table's column set.
// It is not part of the table until Append() is called.
func (t *Table) NewRow() *Row {
	return &Row{table: t, values: make([]any, len(t.columns))}
}

// Append adds a row to the table.
func (t *Table) Append(r *Row) {
	t.rows = append(t.rows, r)
}

// Remove deletes a row from the table, matching by identity.
func (t *Table) Remove(r *Row) {
	for i, have := range t.rows {
		if have == r {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return
		}
	}
}

// Clear drops all rows, keeping the column set.
func (t *Table) Clear() {
	t.rows = nil
}

// Row is one cached record, keyed by storage column name. Rows are owned
// by the store's table; persistence callbacks receive them for
// named-column read/write access.
type Row struct {
	table  *Table
	values []any
}

// Get returns the value stored under a column, nil when unset.
func (r *Row) Get(column string) any {
	i, ok := r.table.index[column]
	if !ok {
		return nil
	}
	return r.values[i]
}

// Set stores a value under a column.
func (r *Row) Set(column string, value any) error {
	i, ok := r.table.index[column]
	if !ok {
		return errTypeMismatch("no column " + column + " in table")
	}
	r.values[i] = value
	return nil
}

// ID returns the row's identity column value, 0 when not yet assigned.
func (r *Row) ID() int64 {
	id, _ := intValue(r.Get(IDField))
	return id
}

// Values returns a column-name-keyed copy of the row, for diagnostics.
func (r *Row) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, c := range r.table.columns {
		out[c] = r.values[i]
	}
	return out
}
