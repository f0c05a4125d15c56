package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kmaeshima/db-adhoc-report/internal/report"
)

// SheetName is the single sheet every spreadsheet export uses.
const SheetName = "Report"

// Spreadsheet renders a result as a single-sheet xlsx payload with a bold
// header row and the same row/column semantics as CSV.
func Spreadsheet(result report.QueryResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, col := range result.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}
	if len(result.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(result.Columns), 1)
		if err != nil {
			return nil, fmt.Errorf("addressing header range: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
			return nil, fmt.Errorf("styling header: %w", err)
		}
	}

	for r, rec := range result.Records {
		for c, col := range result.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, formatValue(rec[col])); err != nil {
				return nil, fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
