package session

import (
	"time"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// DrawingSource is the uploaded schedule with its current mapping and extracted items.
type DrawingSource struct {
	Filename   string               `json:"filename"`
	FileSize   int64                `json:"file_size"`
	Table      models.Table         `json:"table"`
	Mapping    models.FieldMapping  `json:"mapping"`
	Items      []models.DrawingItem `json:"items"`
	Skipped    []models.SkippedRow  `json:"skipped,omitempty"`
	ArchiveKey string               `json:"archive_key,omitempty"`
	UploadedAt time.Time            `json:"uploaded_at"`
}

// QuoteSource is one batch of quote lines, keyed by its file name or paste label.
type QuoteSource struct {
	Filename   string              `json:"filename"`
	Tables     int                 `json:"tables"`
	Items      []models.QuoteItem  `json:"items"`
	Skipped    []models.SkippedRow `json:"skipped,omitempty"`
	Duplicates []string            `json:"duplicates,omitempty"`
	ArchiveKey string              `json:"archive_key,omitempty"`
	UploadedAt time.Time           `json:"uploaded_at"`
}

// Session holds everything one reconciliation works from. Sessions handed out by the Store
// are copies; changes only take effect through Store.Update.
type Session struct {
	ID                  string
	Drawing             *DrawingSource
	Quotes              []QuoteSource
	SupplierCodes       models.SupplierCodes
	CategoryEnforcement bool
	LastReport          *models.Report
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// QuoteItems concatenates every batch in upload order.
func (s *Session) QuoteItems() []models.QuoteItem {
	n := 0
	for _, q := range s.Quotes {
		n += len(q.Items)
	}
	out := make([]models.QuoteItem, 0, n)
	for _, q := range s.Quotes {
		out = append(out, q.Items...)
	}
	return out
}

// PutQuote replaces the batch with the same file name in place, or appends a new one.
func (s *Session) PutQuote(src QuoteSource) {
	for i := range s.Quotes {
		if s.Quotes[i].Filename == src.Filename {
			s.Quotes[i] = src
			return
		}
	}
	s.Quotes = append(s.Quotes, src)
}

// ArchiveKeys lists the storage keys of every archived upload the session holds.
func (s *Session) ArchiveKeys() []string {
	var keys []string
	if s.Drawing != nil && s.Drawing.ArchiveKey != "" {
		keys = append(keys, s.Drawing.ArchiveKey)
	}
	for _, q := range s.Quotes {
		if q.ArchiveKey != "" {
			keys = append(keys, q.ArchiveKey)
		}
	}
	return keys
}

// Reset drops the drawing, every quote batch and the last report. Settings are kept.
func (s *Session) Reset() {
	s.Drawing = nil
	s.Quotes = nil
	s.LastReport = nil
}

func (s *Session) clone() *Session {
	c := *s
	c.SupplierCodes = s.SupplierCodes.Clone()
	c.Quotes = append([]QuoteSource(nil), s.Quotes...)
	if s.Drawing != nil {
		d := *s.Drawing
		d.Mapping = s.Drawing.Mapping.Clone()
		c.Drawing = &d
	}
	return &c
}
