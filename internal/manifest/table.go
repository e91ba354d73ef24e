// Package manifest implements the reconciliation core: identifier cleaning,
// duplicate detection, set reconciliation between the POB and Portal rosters,
// and the three fixed-layout output reports. Everything in this package is a
// pure function over immutable tables; all file and HTTP I/O lives elsewhere.
package manifest

// Table is an ordered, row-major spreadsheet table. Rows may be ragged:
// cells past the end of a row read as empty. Stages never mutate a Table
// they were given; they return fresh copies. Name is a display label
// ("POB", "Portal") used in error messages only.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// ColumnIndex resolves a header name to its ordinal position. The lookup is
// exact: header names are matched as stored, first match wins.
func (t Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Headers {
		if h == name {
			return i, nil
		}
	}
	return -1, &MissingColumnError{Column: name, Table: t.Name}
}

// Cell returns the value at the given column index for a row, tolerating
// ragged rows.
func (t Table) Cell(row int, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns every value of the named column in row order, padded with
// empty strings where rows fall short.
func (t Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, idx)
	}
	return out, nil
}

// RowCount reports the number of data rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

func copyRow(row []string) []string {
	return append([]string(nil), row...)
}
