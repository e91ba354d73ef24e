package manifest

// Result is the outcome of reconciling two cleaned tables. MissingInSecond
// holds the rows of the first table whose identifier appears nowhere in the
// second table's identifier column; MissingInFirst is the symmetric set.
// Each side keeps its source table's headers and row order.
type Result struct {
	MissingInSecond Table
	MissingInFirst  Table
}

// ManifestCount is the number of rows feeding the RFM and Manifest reports.
func (r Result) ManifestCount() int { return len(r.MissingInSecond.Rows) }

// ReturnCount is the number of rows feeding the Return Manifest report.
func (r Result) ReturnCount() int { return len(r.MissingInFirst.Rows) }

// Reconcile computes the two asymmetric differences between cleaned tables.
// Membership is tested against the full identifier set of the other table
// by exact string equality; the inputs are expected to be post-Clean, so
// values are already trimmed. If duplicate identifiers were allowed through
// the gate, each occurrence yields its own result row.
func Reconcile(a Table, idA string, b Table, idB string) (Result, error) {
	idsA, err := a.Column(idA)
	if err != nil {
		return Result{}, err
	}
	idsB, err := b.Column(idB)
	if err != nil {
		return Result{}, err
	}

	setA := toSet(idsA)
	setB := toSet(idsB)

	res := Result{
		MissingInSecond: Table{Name: a.Name, Headers: copyRow(a.Headers)},
		MissingInFirst:  Table{Name: b.Name, Headers: copyRow(b.Headers)},
	}
	for i, id := range idsA {
		if _, ok := setB[id]; !ok {
			res.MissingInSecond.Rows = append(res.MissingInSecond.Rows, copyRow(a.Rows[i]))
		}
	}
	for i, id := range idsB {
		if _, ok := setA[id]; !ok {
			res.MissingInFirst.Rows = append(res.MissingInFirst.Rows, copyRow(b.Rows[i]))
		}
	}
	return res, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
