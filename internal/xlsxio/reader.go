// Package xlsxio moves tables between spreadsheet files and the manifest
// core: ingesting uploaded rosters, writing the three-report workbook, and
// writing the duplicate-highlight workbook.
package xlsxio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"reconweb/internal/manifest"
)

// ReadTable loads an uploaded roster into a Table. The format is chosen by
// filename extension: .csv via the stdlib reader, anything else through
// excelize (first sheet). The header row is required; blank header cells
// get positional fallback names so every column stays addressable.
func ReadTable(r io.Reader, filename string) (manifest.Table, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return readCSV(r)
	}
	return readExcel(r)
}

func readCSV(r io.Reader) (manifest.Table, error) {
	var t manifest.Table
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return t, err
	}
	if len(rows) == 0 {
		return t, fmt.Errorf("empty CSV")
	}
	t.Headers = fallbackHeaders(rows[0])
	t.Rows = rows[1:]
	return t, nil
}

func readExcel(r io.Reader) (manifest.Table, error) {
	var t manifest.Table
	f, err := excelize.OpenReader(r)
	if err != nil {
		return t, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return t, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return t, err
	}
	if len(rows) == 0 {
		return t, fmt.Errorf("empty workbook")
	}
	t.Headers = fallbackHeaders(rows[0])
	t.Rows = rows[1:]
	return t, nil
}

func fallbackHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}
