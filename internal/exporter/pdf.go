package exporter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// maxCriticalRows bounds the critical missing list printed in the summary PDF.
const maxCriticalRows = 40

// SummaryPDF renders the dashboard figures of a report as an A4 document.
func SummaryPDF(r *models.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Quote Analysis Summary", true)
	pdf.AddPage()

	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 12, "Quote Analysis Summary", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 6, tr(fmt.Sprintf("Drawing: %s", r.DrawingFile)))
	pdf.Ln(5)
	pdf.Cell(190, 6, fmt.Sprintf("Generated on: %s", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	pdf.Ln(5)
	enforcement := "off"
	if r.CategoryEnforcement {
		enforcement = "on"
	}
	pdf.Cell(190, 6, fmt.Sprintf("Category enforcement: %s", enforcement))
	pdf.Ln(9)

	o := r.Summary.Overview
	section(pdf, "Overview")
	header(pdf, []float64{95, 95}, "Metric", "Value")
	for _, kv := range [][2]string{
		{"Total items", fmt.Sprintf("%d", o.TotalItems)},
		{"Actionable items", fmt.Sprintf("%d", o.ActionableItems)},
		{"Quoted", fmt.Sprintf("%d", o.Quoted)},
		{"MISSING", fmt.Sprintf("%d", o.Missing)},
		{"Qty Mismatch", fmt.Sprintf("%d", o.QtyMismatch)},
		{"Needs Pricing", fmt.Sprintf("%d", o.NeedsPricing)},
		{"Total quoted value", money(o.TotalValue)},
	} {
		row(pdf, []float64{95, 95}, kv[0], kv[1])
	}
	pdf.Ln(6)

	section(pdf, "By Status")
	header(pdf, []float64{80, 40, 70}, "Status", "Count", "Total Value")
	for _, s := range r.Summary.ByStatus {
		row(pdf, []float64{80, 40, 70}, string(s.Status), fmt.Sprintf("%d", s.Count), money(s.TotalValue))
	}
	pdf.Ln(6)

	if len(r.Summary.BySupplierCode) > 0 {
		widths := []float64{15, 75, 25, 25, 25, 25}
		section(pdf, "By Supplier Code")
		header(pdf, widths, "Code", "Description", "Items", "Quoted", "Missing", "Coverage")
		for _, c := range r.Summary.BySupplierCode {
			coverage := "-"
			if c.Coverage != nil {
				coverage = fmt.Sprintf("%.1f%%", *c.Coverage)
			}
			row(pdf, widths, fmt.Sprintf("%d", c.Code), tr(c.Description),
				fmt.Sprintf("%d", c.ScheduleItems), fmt.Sprintf("%d", c.Quoted), fmt.Sprintf("%d", c.Missing), coverage)
		}
		pdf.Ln(6)
	}

	if len(r.Summary.CriticalMissing) > 0 {
		widths := []float64{25, 35, 110, 20}
		section(pdf, fmt.Sprintf("Critical Missing (%d)", len(r.Summary.CriticalMissing)))
		header(pdf, widths, "No", "Equipment", "Description", "Qty")
		for i, c := range r.Summary.CriticalMissing {
			if i == maxCriticalRows {
				pdf.SetFont("Arial", "I", 9)
				pdf.Cell(190, 6, fmt.Sprintf("... %d more in the workbook export", len(r.Summary.CriticalMissing)-maxCriticalRows))
				pdf.Ln(6)
				break
			}
			row(pdf, widths, tr(c.DrawingNo), tr(c.EquipmentNumber), tr(truncate(c.Description, 60)), fmt.Sprintf("%d", c.DrawingQty))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 9, title, "1", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func header(pdf *gofpdf.Fpdf, widths []float64, cols ...string) {
	pdf.SetFillColor(200, 220, 240)
	pdf.SetFont("Arial", "B", 9)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, c, "1", ln, "C", true, 0, "")
	}
}

func row(pdf *gofpdf.Fpdf, widths []float64, cols ...string) {
	pdf.SetFont("Arial", "", 9)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 6, c, "1", ln, "L", false, 0, "")
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
