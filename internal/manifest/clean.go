package manifest

import (
	"strings"
	"unicode"
)

// DefaultFooterRows is the size of the trailing window presumed to hold
// summary text ("Total passengers: 42" and the like) rather than passenger
// records. Tuned to the manifest format in use; override via CleanOptions.
const DefaultFooterRows = 15

// defaultEmptyTokens are the trimmed, lower-cased values treated as no
// identifier at all, wherever they appear in the table.
var defaultEmptyTokens = []string{"", "nan", "none", "null", "na", "n/a"}

// CleanOptions tunes identifier cleaning.
type CleanOptions struct {
	// FooterRows is the length of the footer zone counted from the last row.
	// Zero or negative means DefaultFooterRows.
	FooterRows int

	// EmptyTokens overrides the empty-like token set. Compared against the
	// trimmed, lower-cased cell value. Nil means the default set.
	EmptyTokens []string
}

// CleanResult is a cleaned table plus counts making row loss observable.
// Dropped == RowCount of the input means the table cleaned down to nothing;
// that is not an error here, but callers should surface the zero.
type CleanResult struct {
	Table   Table
	Kept    int
	Dropped int
}

// Clean filters a table down to rows whose identifier column holds a valid
// identifier, replacing that column's values with their trimmed text.
//
// A row is dropped when its trimmed identifier is empty-like anywhere in the
// table, or when it contains no decimal digit and sits inside the footer
// zone (the last FooterRows rows; the whole table when shorter). Digit-free
// values outside the footer zone are kept: legitimate non-numeric
// identifiers can appear mid-table, while the trailing free-text summary
// lines never carry a real identifier. Cleaning an already-clean table is a
// no-op.
func Clean(t Table, idCol string, opts CleanOptions) (CleanResult, error) {
	idx, err := t.ColumnIndex(idCol)
	if err != nil {
		return CleanResult{}, err
	}

	footerRows := opts.FooterRows
	if footerRows <= 0 {
		footerRows = DefaultFooterRows
	}
	footerStart := len(t.Rows) - footerRows
	if footerStart < 0 {
		footerStart = 0
	}

	emptyLike := make(map[string]struct{}, len(defaultEmptyTokens))
	tokens := opts.EmptyTokens
	if tokens == nil {
		tokens = defaultEmptyTokens
	}
	for _, tok := range tokens {
		emptyLike[tok] = struct{}{}
	}

	out := Table{Name: t.Name, Headers: copyRow(t.Headers)}
	dropped := 0
	for i := range t.Rows {
		id := strings.TrimSpace(t.Cell(i, idx))
		if _, empty := emptyLike[strings.ToLower(id)]; empty {
			dropped++
			continue
		}
		if i >= footerStart && !containsDigit(id) {
			dropped++
			continue
		}
		row := copyRow(t.Rows[i])
		for len(row) <= idx {
			row = append(row, "")
		}
		row[idx] = id
		out.Rows = append(out.Rows, row)
	}

	return CleanResult{Table: out, Kept: len(out.Rows), Dropped: dropped}, nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
