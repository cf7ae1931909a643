package models

import "time"

// Status is the reconciliation outcome for one drawing item.
type Status string

const (
	StatusNA           Status = "N/A"
	StatusOwnerSupply  Status = "Owner Supply"
	StatusExisting     Status = "Existing"
	StatusNIC          Status = "NIC"
	StatusQuoted       Status = "Quoted"
	StatusQtyMismatch  Status = "Qty Mismatch"
	StatusNeedsPricing Status = "Needs Pricing"
	StatusMissing      Status = "MISSING"
)

// Statuses lists the taxonomy in reporting order.
var Statuses = []Status{
	StatusQuoted,
	StatusMissing,
	StatusQtyMismatch,
	StatusNeedsPricing,
	StatusNIC,
	StatusOwnerSupply,
	StatusExisting,
	StatusNA,
}

// ParseStatus matches s against the taxonomy.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ClassificationResult joins a drawing item to its matched quote line.
type ClassificationResult struct {
	DrawingNo               string  `json:"drawing_no"`
	EquipmentNumber         string  `json:"equipment_number"`
	Description             string  `json:"description"`
	DrawingQty              int     `json:"drawing_qty"`
	SupplierCode            *int    `json:"supplier_code"`
	SupplierCodeDescription string  `json:"supplier_code_description"`
	Matched                 bool    `json:"matched"`
	QuoteItemNo             string  `json:"quote_item_no"`
	QuoteQty                int     `json:"quote_qty"`
	UnitPrice               float64 `json:"unit_price"`
	TotalPrice              float64 `json:"total_price"`
	QuoteSource             string  `json:"quote_source"`
	Status                  Status  `json:"status"`
	Issue                   *string `json:"issue"`
}

// StatusSummary aggregates results sharing one status.
type StatusSummary struct {
	Status     Status  `json:"status"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// CodeSummary aggregates schedule lines sharing one supplier code.
type CodeSummary struct {
	Code             int      `json:"code"`
	Description      string   `json:"description"`
	ScheduleItems    int      `json:"schedule_items"`
	ScheduleQuantity int      `json:"schedule_quantity"`
	Quoted           int      `json:"quoted"`
	Missing          int      `json:"missing"`
	QtyMismatch      int      `json:"qty_mismatch"`
	NIC              int      `json:"nic"`
	NeedsPricing     int      `json:"needs_pricing"`
	QuotedValue      float64  `json:"quoted_value"`
	Coverage         *float64 `json:"coverage_pct"`
}

// QuoteFileSummary describes one loaded quote source.
type QuoteFileSummary struct {
	File       string  `json:"file"`
	Items      int     `json:"items"`
	NICItems   int     `json:"nic_items"`
	TotalValue float64 `json:"total_value"`
}

// Overview is the headline dashboard for one analysis.
type Overview struct {
	TotalItems      int     `json:"total_items"`
	ActionableItems int     `json:"actionable_items"`
	Quoted          int     `json:"quoted"`
	Missing         int     `json:"missing"`
	QtyMismatch     int     `json:"qty_mismatch"`
	NeedsPricing    int     `json:"needs_pricing"`
	TotalValue      float64 `json:"total_quoted_value"`
}

// Summary bundles every read-only view over a result list.
type Summary struct {
	Overview        Overview               `json:"overview"`
	ByStatus        []StatusSummary        `json:"by_status"`
	BySupplierCode  []CodeSummary          `json:"by_supplier_code,omitempty"`
	QuoteFiles      []QuoteFileSummary     `json:"quote_files"`
	CriticalMissing []ClassificationResult `json:"critical_missing"`
	Uncategorized   []ClassificationResult `json:"uncategorized"`
}

// Report is the full output of one analysis pass.
type Report struct {
	SessionID           string                 `json:"session_id"`
	RunID               string                 `json:"run_id,omitempty"`
	DrawingFile         string                 `json:"drawing_file"`
	CategoryEnforcement bool                   `json:"category_enforcement"`
	SupplierCodes       SupplierCodes          `json:"supplier_codes"`
	DrawingItems        []DrawingItem          `json:"-"`
	QuoteItems          []QuoteItem            `json:"-"`
	Results             []ClassificationResult `json:"results"`
	Summary             Summary                `json:"summary"`
	GeneratedAt         time.Time              `json:"generated_at"`
}
