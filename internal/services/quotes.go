package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/extractor"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/mapper"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/records"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/session"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/storage"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// DefaultQuoteLabel names pasted quote text submitted without a label.
const DefaultQuoteLabel = "Pasted quote"

// UploadQuotes reads every table of every file. A file with the same name as an earlier batch
// replaces it. Files that yield no items are reported and left out.
func (s *reconcileService) UploadQuotes(ctx context.Context, id string, reqs []*models.UploadRequest) (*models.QuoteUploadResponse, error) {
	if len(reqs) == 0 {
		return nil, utils.NewBadRequestError("No quote files provided")
	}
	if _, err := s.getSession(id); err != nil {
		return nil, err
	}

	resp := &models.QuoteUploadResponse{SessionID: id}
	var accepted []session.QuoteSource
	var failures []string

	for _, req := range reqs {
		src, result := s.readQuoteFile(ctx, id, req)
		resp.Files = append(resp.Files, result)
		if src == nil {
			failures = append(failures, fmt.Sprintf("%s: %s", result.Filename, result.Error))
			continue
		}
		accepted = append(accepted, *src)
	}

	if len(accepted) == 0 {
		return nil, utils.NewUnprocessableError("No quote items could be read. " + strings.Join(failures, "; "))
	}

	if err := s.putQuotes(id, accepted); err != nil {
		return nil, err
	}

	resp.Message = fmt.Sprintf("%d of %d quote files loaded", len(accepted), len(reqs))
	return resp, nil
}

// AddQuoteText parses pasted quotation lines as one batch named by the label.
func (s *reconcileService) AddQuoteText(ctx context.Context, id string, req *models.QuoteTextRequest) (*models.QuoteUploadResponse, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, utils.NewBadRequestError("Quote text is required")
	}
	if _, err := s.getSession(id); err != nil {
		return nil, err
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = DefaultQuoteLabel
	}

	table := extractor.ParseQuoteLines(label, req.Text)
	extraction := records.ExtractQuoteItems(table.Rows, mapper.MapColumns(table.Columns, models.SchemaQuote), label)
	if len(extraction.Items) == 0 {
		return nil, utils.NewUnprocessableError("No quote lines were recognised in the pasted text")
	}

	key := storage.Key(id, "quotes", label+".txt")
	if err := s.archive(ctx, key, &models.UploadRequest{File: []byte(req.Text), Filename: label, ContentType: "text/plain"}); err != nil {
		return nil, err
	}

	src := session.QuoteSource{
		Filename:   label,
		Tables:     1,
		Items:      extraction.Items,
		Skipped:    extraction.Skipped,
		Duplicates: extraction.Duplicates,
		ArchiveKey: key,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.putQuotes(id, []session.QuoteSource{src}); err != nil {
		return nil, err
	}
	s.logExtraction(id, label, len(src.Items), src.Skipped)

	return &models.QuoteUploadResponse{
		SessionID: id,
		Files:     []models.QuoteUploadResult{quoteResult(src)},
		Message:   fmt.Sprintf("%d quote items loaded from text", len(src.Items)),
	}, nil
}

func (s *reconcileService) ClearQuotes(ctx context.Context, id string) (*models.SessionResponse, error) {
	var keys []string
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		for _, q := range sess.Quotes {
			keys = append(keys, q.ArchiveKey)
		}
		sess.Quotes = nil
		sess.LastReport = nil
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	s.removeArchived(ctx, keys...)
	s.logger.Info("Quotes cleared", "session_id", id, "files", len(keys))
	return sessionResponse(sess), nil
}

func (s *reconcileService) putQuotes(id string, sources []session.QuoteSource) error {
	_, err := s.store.Update(id, func(sess *session.Session) error {
		for _, src := range sources {
			sess.PutQuote(src)
		}
		sess.LastReport = nil
		return nil
	})
	if err != nil {
		return sessionError(err)
	}
	return nil
}

// readQuoteFile returns nil and a result carrying the error when the file yields nothing.
func (s *reconcileService) readQuoteFile(ctx context.Context, id string, req *models.UploadRequest) (*session.QuoteSource, models.QuoteUploadResult) {
	result := models.QuoteUploadResult{Filename: req.Filename}

	doc, err := s.extract(req)
	if err != nil {
		result.Error = err.Error()
		return nil, result
	}

	extraction, tables := quoteExtraction(doc)
	result.Tables = tables
	result.Skipped = extraction.Skipped
	if len(extraction.Items) == 0 {
		s.logger.Warn("No quote items found", "session_id", id, "filename", req.Filename, "tables", len(doc.Tables))
		result.Error = "no quote items found"
		return nil, result
	}

	key := storage.Key(id, "quotes", req.Filename)
	if err := s.archive(ctx, key, req); err != nil {
		result.Error = err.Error()
		return nil, result
	}

	src := &session.QuoteSource{
		Filename:   req.Filename,
		Tables:     tables,
		Items:      extraction.Items,
		Skipped:    extraction.Skipped,
		Duplicates: extraction.Duplicates,
		ArchiveKey: key,
		UploadedAt: time.Now().UTC(),
	}
	s.logExtraction(id, req.Filename, len(src.Items), src.Skipped)

	return src, quoteResult(*src)
}

// quoteExtraction maps and extracts every table that resolves an item number or description.
// When no table yields items the document text is parsed line by line instead.
func quoteExtraction(doc *extractor.Document) (*records.Extraction[models.QuoteItem], int) {
	merged := &records.Extraction[models.QuoteItem]{}
	tables := 0

	for _, t := range doc.Tables {
		mapping := mapper.MapTable(t, models.SchemaQuote)
		if !mapping.Has(models.FieldNo) && !mapping.Has(models.FieldDescription) {
			continue
		}
		ex := records.ExtractQuoteItems(t.Rows, mapping, doc.Filename)
		if len(ex.Items) == 0 {
			continue
		}
		tables++
		merge(merged, ex, t.Name, len(doc.Tables) > 1)
	}

	if len(merged.Items) == 0 && strings.TrimSpace(doc.Text) != "" {
		t := extractor.ParseQuoteLines(doc.Filename, doc.Text)
		if len(t.Rows) > 0 {
			ex := records.ExtractQuoteItems(t.Rows, mapper.MapColumns(t.Columns, models.SchemaQuote), doc.Filename)
			if len(ex.Items) > 0 {
				tables = 1
				merge(merged, ex, t.Name, false)
			}
		}
	}

	return merged, tables
}

// merge appends ex to dst. Skip reasons name their table when a file has several.
func merge(dst, ex *records.Extraction[models.QuoteItem], table string, named bool) {
	dst.Items = append(dst.Items, ex.Items...)
	dst.Duplicates = append(dst.Duplicates, ex.Duplicates...)
	for _, sk := range ex.Skipped {
		if named {
			sk.Reason = fmt.Sprintf("%s: %s", table, sk.Reason)
		}
		dst.Skipped = append(dst.Skipped, sk)
	}
}

func quoteResult(src session.QuoteSource) models.QuoteUploadResult {
	r := models.QuoteUploadResult{
		Filename:   src.Filename,
		Tables:     src.Tables,
		ItemCount:  len(src.Items),
		Skipped:    src.Skipped,
		Duplicates: src.Duplicates,
	}
	for _, it := range src.Items {
		r.TotalValue += it.EffectiveTotalPrice()
	}
	return r
}
