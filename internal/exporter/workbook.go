package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// Sheet names of the analysis workbook, in tab order.
const (
	SheetFullAnalysis = "Full Analysis"
	SheetMissing      = "Missing Items"
	SheetQuoted       = "Quoted Items"
	SheetQtyMismatch  = "Qty Mismatch"
	SheetAllQuotes    = "All Quotes"
	SheetSummary      = "Summary"
	SheetDrawing      = "Drawing"
	SheetQuotes       = "Quotes"
)

const defaultSheet = "Sheet1"

var (
	resultHeader = []any{
		"Drawing No", "Equipment Number", "Description", "Drawing Qty", "Supplier Code",
		"Code Description", "Quote Item No", "Quote Qty", "Unit Price", "Total Price",
		"Quote Source", "Status", "Issue",
	}
	drawingHeader = []any{"No", "Equipment Number", "Description", "Qty", "Supplier Code"}
	quoteHeader   = []any{"Item No", "Description", "Qty", "Unit Price", "Total Price", "NIC", "Source File"}
)

// Workbook renders a report as an xlsx file with one sheet per status subset, all quote
// lines and the summary tables.
func Workbook(r *models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w, err := newWriter(f)
	if err != nil {
		return nil, err
	}

	subsets := []struct {
		sheet  string
		status models.Status
	}{
		{SheetMissing, models.StatusMissing},
		{SheetQuoted, models.StatusQuoted},
		{SheetQtyMismatch, models.StatusQtyMismatch},
	}

	if err := w.results(SheetFullAnalysis, r.Results); err != nil {
		return nil, err
	}
	for _, s := range subsets {
		if err := w.results(s.sheet, withStatus(r.Results, s.status)); err != nil {
			return nil, err
		}
	}
	if err := w.quotes(SheetAllQuotes, r.QuoteItems); err != nil {
		return nil, err
	}
	if err := w.summary(SheetSummary, r); err != nil {
		return nil, err
	}

	return w.bytes()
}

// DrawingWorkbook exports the extracted schedule lines.
func DrawingWorkbook(items []models.DrawingItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w, err := newWriter(f)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.ItemNo, it.EquipmentNumber, it.Description, it.Quantity, codeCell(it.SupplierCode)})
	}
	if err := w.table(SheetDrawing, drawingHeader, rows); err != nil {
		return nil, err
	}
	return w.bytes()
}

// QuoteWorkbook exports every loaded quote line.
func QuoteWorkbook(items []models.QuoteItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w, err := newWriter(f)
	if err != nil {
		return nil, err
	}
	if err := w.quotes(SheetQuotes, items); err != nil {
		return nil, err
	}
	return w.bytes()
}

type writer struct {
	f           *excelize.File
	headerStyle int
	moneyStyle  int
	sheets      int
}

func newWriter(f *excelize.File) (*writer, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	return &writer{f: f, headerStyle: header, moneyStyle: money}, nil
}

// sheet creates name, reusing the default sheet for the first one.
func (w *writer) sheet(name string) error {
	w.sheets++
	if w.sheets == 1 {
		return w.f.SetSheetName(defaultSheet, name)
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return nil
}

func (w *writer) table(name string, header []any, rows [][]any, moneyCols ...int) error {
	if err := w.sheet(name); err != nil {
		return err
	}

	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(name, "A1", last, w.headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, name, err)
		}
	}

	for _, col := range moneyCols {
		if len(rows) == 0 {
			break
		}
		top, _ := excelize.CoordinatesToCellName(col, 2)
		bottom, _ := excelize.CoordinatesToCellName(col, len(rows)+1)
		if err := w.f.SetCellStyle(name, top, bottom, w.moneyStyle); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return w.f.SetColWidth(name, "A", lastCol, 16)
}

func (w *writer) results(name string, results []models.ClassificationResult) error {
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		issue := ""
		if r.Issue != nil {
			issue = *r.Issue
		}
		rows = append(rows, []any{
			r.DrawingNo, r.EquipmentNumber, r.Description, r.DrawingQty, codeCell(r.SupplierCode),
			r.SupplierCodeDescription, r.QuoteItemNo, r.QuoteQty, r.UnitPrice, r.TotalPrice,
			r.QuoteSource, string(r.Status), issue,
		})
	}
	return w.table(name, resultHeader, rows, 9, 10)
}

func (w *writer) quotes(name string, items []models.QuoteItem) error {
	rows := make([][]any, 0, len(items))
	for _, q := range items {
		nic := ""
		if q.NotInContract {
			nic = "NIC"
		}
		rows = append(rows, []any{q.ItemNo, q.Description, q.Quantity, q.UnitPrice, q.TotalPrice, nic, q.SourceFile})
	}
	return w.table(name, quoteHeader, rows, 4, 5)
}

func (w *writer) summary(name string, r *models.Report) error {
	o := r.Summary.Overview
	rows := [][]any{
		{"Drawing", r.DrawingFile},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Category enforcement", r.CategoryEnforcement},
		{"Total items", o.TotalItems},
		{"Actionable items", o.ActionableItems},
		{"Quoted", o.Quoted},
		{"MISSING", o.Missing},
		{"Qty Mismatch", o.QtyMismatch},
		{"Needs Pricing", o.NeedsPricing},
		{"Total quoted value", o.TotalValue},
		{},
		{"Status", "Count", "Total Value"},
	}
	for _, s := range r.Summary.ByStatus {
		rows = append(rows, []any{string(s.Status), s.Count, s.TotalValue})
	}

	if len(r.Summary.BySupplierCode) > 0 {
		rows = append(rows, []any{}, []any{"Code", "Description", "Schedule Items", "Quoted", "Missing", "Qty Mismatch", "Quoted Value", "Coverage %"})
		for _, c := range r.Summary.BySupplierCode {
			var coverage any = ""
			if c.Coverage != nil {
				coverage = *c.Coverage
			}
			rows = append(rows, []any{c.Code, c.Description, c.ScheduleItems, c.Quoted, c.Missing, c.QtyMismatch, c.QuotedValue, coverage})
		}
	}

	if len(r.Summary.QuoteFiles) > 0 {
		rows = append(rows, []any{}, []any{"Quote File", "Items", "NIC Items", "Total Value"})
		for _, q := range r.Summary.QuoteFiles {
			rows = append(rows, []any{q.File, q.Items, q.NICItems, q.TotalValue})
		}
	}

	return w.table(name, []any{"Analysis Summary", ""}, rows)
}

func (w *writer) bytes() ([]byte, error) {
	w.f.SetActiveSheet(0)
	var buf bytes.Buffer
	if _, err := w.f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func withStatus(results []models.ClassificationResult, status models.Status) []models.ClassificationResult {
	var out []models.ClassificationResult
	for _, r := range results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func codeCell(code *int) any {
	if code == nil {
		return ""
	}
	return *code
}
