package models

import (
	"time"
)

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

// SkippedRow explains why a source row produced no record.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type DrawingUploadResponse struct {
	SessionID  string        `json:"session_id"`
	Filename   string        `json:"filename"`
	FileSize   int64         `json:"file_size"`
	Table      string        `json:"table"`
	Columns    []string      `json:"columns"`
	Mapping    FieldMapping  `json:"mapping"`
	Unmapped   []Field       `json:"unmapped_required,omitempty"`
	Preview    []Row         `json:"preview"`
	ItemCount  int           `json:"item_count"`
	Skipped    []SkippedRow  `json:"skipped,omitempty"`
	Duplicates []string      `json:"duplicate_item_numbers,omitempty"`
	Items      []DrawingItem `json:"items,omitempty"`
	Message    string        `json:"message"`
	UploadedAt time.Time     `json:"uploaded_at"`
}

type MappingRequest struct {
	Mapping             FieldMapping `json:"mapping"`
	CategoryEnforcement *bool        `json:"category_enforcement,omitempty"`
}

type QuoteUploadResult struct {
	Filename   string       `json:"filename"`
	Tables     int          `json:"tables"`
	ItemCount  int          `json:"item_count"`
	TotalValue float64      `json:"total_value"`
	Skipped    []SkippedRow `json:"skipped,omitempty"`
	Duplicates []string     `json:"duplicate_item_numbers,omitempty"`
	Error      string       `json:"error,omitempty"`
}

type QuoteUploadResponse struct {
	SessionID string              `json:"session_id"`
	Files     []QuoteUploadResult `json:"files"`
	Message   string              `json:"message"`
}

type QuoteTextRequest struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type SettingsRequest struct {
	SupplierCodes       map[int]string `json:"supplier_codes,omitempty"`
	CategoryEnforcement *bool          `json:"category_enforcement,omitempty"`
}

type SessionResponse struct {
	ID                  string             `json:"id"`
	DrawingFile         string             `json:"drawing_file,omitempty"`
	DrawingColumns      []string           `json:"drawing_columns,omitempty"`
	DrawingMapping      FieldMapping       `json:"drawing_mapping,omitempty"`
	DrawingItems        int                `json:"drawing_items"`
	QuoteFiles          []QuoteFileSummary `json:"quote_files"`
	SupplierCodes       SupplierCodes      `json:"supplier_codes"`
	CategoryEnforcement bool               `json:"category_enforcement"`
	LastRunID           string             `json:"last_run_id,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// AnalysisRun is the stored record of one explicit analysis request.
type AnalysisRun struct {
	ID                  string         `json:"id" db:"id"`
	SessionID           string         `json:"session_id" db:"session_id"`
	DrawingFile         string         `json:"drawing_file" db:"drawing_file"`
	DrawingItems        int            `json:"drawing_items" db:"drawing_items"`
	QuoteFiles          int            `json:"quote_files" db:"quote_files"`
	QuoteItems          int            `json:"quote_items" db:"quote_items"`
	CategoryEnforcement bool           `json:"category_enforcement" db:"category_enforcement"`
	TotalItems          int            `json:"total_items" db:"total_items"`
	ActionableItems     int            `json:"actionable_items" db:"actionable_items"`
	Quoted              int            `json:"quoted" db:"quoted"`
	Missing             int            `json:"missing" db:"missing"`
	QtyMismatch         int            `json:"qty_mismatch" db:"qty_mismatch"`
	NeedsPricing        int            `json:"needs_pricing" db:"needs_pricing"`
	TotalValue          float64        `json:"total_value" db:"total_value"`
	StatusCounts        map[Status]int `json:"status_counts" db:"-"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
}

// NewAnalysisRun condenses a report into its stored record.
func NewAnalysisRun(id string, r *Report, quoteFiles int) *AnalysisRun {
	o := r.Summary.Overview
	run := &AnalysisRun{
		ID:                  id,
		SessionID:           r.SessionID,
		DrawingFile:         r.DrawingFile,
		DrawingItems:        len(r.DrawingItems),
		QuoteFiles:          quoteFiles,
		QuoteItems:          len(r.QuoteItems),
		CategoryEnforcement: r.CategoryEnforcement,
		TotalItems:          o.TotalItems,
		ActionableItems:     o.ActionableItems,
		Quoted:              o.Quoted,
		Missing:             o.Missing,
		QtyMismatch:         o.QtyMismatch,
		NeedsPricing:        o.NeedsPricing,
		TotalValue:          o.TotalValue,
		StatusCounts:        make(map[Status]int, len(r.Summary.ByStatus)),
		CreatedAt:           r.GeneratedAt,
	}
	for _, s := range r.Summary.ByStatus {
		run.StatusCounts[s.Status] = s.Count
	}
	return run
}
