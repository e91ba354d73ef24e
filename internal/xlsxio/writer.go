package xlsxio

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"reconweb/internal/manifest"
)

// WriteReports serializes the three reconciliation reports into one
// workbook, one sheet per report, columns in their fixed order with the
// header row first and no index column. Spacer columns with blank or
// whitespace-only names are written as-is so the layout survives the trip.
func WriteReports(reports manifest.Reports) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, rep := range []manifest.Report{reports.RFM, reports.Manifest, reports.Return} {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), rep.Name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(rep.Name); err != nil {
				return nil, err
			}
		}
		if err := writeReport(f, rep); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeReport(f *excelize.File, rep manifest.Report) error {
	for c, col := range rep.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(rep.Name, cell, col.Name); err != nil {
			return err
		}
		for r, v := range col.Values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(rep.Name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
