package models

import "strings"

// EquipmentNumberNone marks a drawing line without an equipment/model tag.
const EquipmentNumberNone = "-"

// DrawingItem is one line of the equipment schedule.
type DrawingItem struct {
	ItemNo          string `json:"item_no"`
	EquipmentNumber string `json:"equipment_number"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
	SupplierCode    *int   `json:"supplier_code"`
}

// HasCode reports whether the item carries one of the given supplier codes.
func (d DrawingItem) HasCode(codes ...int) bool {
	if d.SupplierCode == nil {
		return false
	}
	for _, c := range codes {
		if *d.SupplierCode == c {
			return true
		}
	}
	return false
}

// QuoteItem is one line of a vendor quotation.
type QuoteItem struct {
	ItemNo        string  `json:"item_no"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
	NotInContract bool    `json:"is_not_in_contract"`
	SourceFile    string  `json:"source_file"`
}

// EffectiveUnitPrice is the unit price counted toward coverage. NIC lines count as zero.
func (q QuoteItem) EffectiveUnitPrice() float64 {
	if q.NotInContract {
		return 0
	}
	return q.UnitPrice
}

// EffectiveTotalPrice is the line value counted toward coverage. NIC lines count as zero.
func (q QuoteItem) EffectiveTotalPrice() float64 {
	if q.NotInContract {
		return 0
	}
	return q.TotalPrice
}

// Row is one source row keyed by column name, as produced by ingestion.
type Row map[string]string

// Get returns the trimmed cell value for column, or "" when the column is absent.
func (r Row) Get(column string) string {
	if column == "" {
		return ""
	}
	return strings.TrimSpace(r[column])
}

// Table is a normalized tabular input: ordered column names plus rows.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Preview returns at most limit rows.
func (t Table) Preview(limit int) []Row {
	if limit <= 0 || limit >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:limit]
}
