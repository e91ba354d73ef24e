package manifest

// Duplicates holds the per-row duplicate flags for a cleaned identifier
// column. Every occurrence of a repeated value is flagged, not just the
// second and later ones, so all offending rows can be highlighted.
type Duplicates struct {
	Flags []bool
	Any   bool
}

// FlaggedCount reports how many rows belong to a duplicate group.
func (d Duplicates) FlaggedCount() int {
	n := 0
	for _, f := range d.Flags {
		if f {
			n++
		}
	}
	return n
}

// DetectDuplicates flags rows whose identifier value occurs two or more
// times in the column. The result gates reconciliation: with Any set, the
// caller must get an explicit user decision (re-upload or proceed as-is)
// before continuing.
func DetectDuplicates(t Table, idCol string) (Duplicates, error) {
	values, err := t.Column(idCol)
	if err != nil {
		return Duplicates{}, err
	}

	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	d := Duplicates{Flags: make([]bool, len(values))}
	for i, v := range values {
		if counts[v] > 1 {
			d.Flags[i] = true
			d.Any = true
		}
	}
	return d, nil
}
