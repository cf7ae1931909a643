package extractor

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// ExtractXLSX returns one table per sheet that has a header and at least one data row.
// Sheet names become table names.
func ExtractXLSX(data []byte) ([]models.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var tables []models.Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if t, ok := TableFromRecords(sheet, rows); ok {
			tables = append(tables, t)
		}
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no sheet with data found in workbook")
	}
	return tables, nil
}
