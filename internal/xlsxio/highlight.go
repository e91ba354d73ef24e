package xlsxio

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"reconweb/internal/manifest"
)

// Sheet names of the duplicate-highlight workbook.
const (
	SheetPOB    = "POB"
	SheetPortal = "PORTAL"
)

// duplicateFill is the light-red fill applied to flagged identifier cells.
const duplicateFill = "FFC7CE"

// HighlightSheet pairs a cleaned roster with its duplicate flags for the
// highlight workbook.
type HighlightSheet struct {
	Name     string
	Table    manifest.Table
	IDColumn string
	Flags    []bool
}

// WriteDuplicateHighlight builds the side-channel workbook handed to the
// user when the duplicate gate trips: both cleaned rosters in full, with
// every flagged identifier cell filled so duplicate groups are visible at a
// glance.
func WriteDuplicateHighlight(sheets ...HighlightSheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{duplicateFill}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(s.Name); err != nil {
				return nil, err
			}
		}
		if err := writeHighlightSheet(f, s, style); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeHighlightSheet(f *excelize.File, s HighlightSheet, style int) error {
	idCol, err := s.Table.ColumnIndex(s.IDColumn)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(s.Name, "A1", &s.Table.Headers); err != nil {
		return err
	}
	for r := range s.Table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := s.Table.Rows[r]
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return err
		}
		if r < len(s.Flags) && s.Flags[r] {
			idCell, err := excelize.CoordinatesToCellName(idCol+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(s.Name, idCell, idCell, style); err != nil {
				return err
			}
		}
	}
	return nil
}
