package services

import (
	"context"
	"errors"
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

// PreviewRows is how many source rows upload responses echo back.
const PreviewRows = 10

// UploadDrawing reads the largest table of the file, maps it automatically and extracts the
// schedule. A layout that cannot be mapped is kept so the caller can supply a mapping.
func (s *reconcileService) UploadDrawing(ctx context.Context, id string, req *models.UploadRequest) (*models.DrawingUploadResponse, error) {
	if _, err := s.getSession(id); err != nil {
		return nil, err
	}

	doc, err := s.extract(req)
	if err != nil {
		return nil, err
	}

	table, ok := extractor.Largest(doc.Tables)
	if !ok || len(table.Rows) == 0 {
		s.logger.Warn("No table found in drawing", "session_id", id, "filename", req.Filename)
		return nil, utils.NewUnprocessableError("No table could be found in the drawing file")
	}

	mapping := mapper.MapTable(table, models.SchemaDrawing)
	extraction, extractErr := records.ExtractDrawingItems(table.Rows, mapping)
	if extractErr != nil && !isExtractionError(extractErr) {
		return nil, utils.NewInternalError(fmt.Sprintf("Failed to extract drawing items: %v", extractErr))
	}

	key := storage.Key(id, "drawing", req.Filename)
	if err := s.archive(ctx, key, req); err != nil {
		return nil, err
	}

	src := &session.DrawingSource{
		Filename:   req.Filename,
		FileSize:   int64(len(req.File)),
		Table:      table,
		Mapping:    mapping,
		Items:      extraction.Items,
		Skipped:    extraction.Skipped,
		ArchiveKey: key,
		UploadedAt: time.Now().UTC(),
	}

	var replaced string
	if _, err := s.store.Update(id, func(sess *session.Session) error {
		if sess.Drawing != nil && sess.Drawing.ArchiveKey != key {
			replaced = sess.Drawing.ArchiveKey
		}
		sess.Drawing = src
		sess.LastReport = nil
		return nil
	}); err != nil {
		return nil, sessionError(err)
	}
	s.removeArchived(ctx, replaced)

	s.logExtraction(id, req.Filename, len(extraction.Items), extraction.Skipped)

	resp := drawingResponse(id, src, extraction.Duplicates)
	switch {
	case errors.Is(extractErr, records.ErrUnmappable):
		resp.Message = "Drawing loaded; map the item number and description columns to continue"
	case errors.Is(extractErr, records.ErrNoData):
		resp.Message = "Drawing loaded but no schedule rows were recognised; check the column mapping"
	default:
		resp.Message = fmt.Sprintf("Drawing loaded with %d items", len(src.Items))
	}
	return resp, nil
}

// ApplyMapping replaces the drawing mapping and extracts the schedule again.
func (s *reconcileService) ApplyMapping(ctx context.Context, id string, req *models.MappingRequest) (*models.DrawingUploadResponse, error) {
	if req == nil || len(req.Mapping) == 0 {
		return nil, utils.NewBadRequestError("Mapping is required")
	}

	var (
		src        *session.DrawingSource
		duplicates []string
	)
	_, err := s.store.Update(id, func(sess *session.Session) error {
		if sess.Drawing == nil {
			return utils.NewBadRequestError("Upload a drawing before mapping columns")
		}

		mapping, err := validMapping(req.Mapping, sess.Drawing.Table.Columns)
		if err != nil {
			return err
		}

		extraction, err := records.ExtractDrawingItems(sess.Drawing.Table.Rows, mapping)
		switch {
		case errors.Is(err, records.ErrUnmappable):
			return utils.NewUnprocessableError(fmt.Sprintf("Required columns are not mapped: %v", mapping.Missing()))
		case errors.Is(err, records.ErrNoData):
			return utils.NewUnprocessableError("No schedule rows could be read with this mapping")
		case err != nil:
			return err
		}

		d := *sess.Drawing
		d.Mapping = mapping
		d.Items = extraction.Items
		d.Skipped = extraction.Skipped
		sess.Drawing = &d
		if req.CategoryEnforcement != nil {
			sess.CategoryEnforcement = *req.CategoryEnforcement
		}
		sess.LastReport = nil

		src = &d
		duplicates = extraction.Duplicates
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	s.logExtraction(id, src.Filename, len(src.Items), src.Skipped)

	resp := drawingResponse(id, src, duplicates)
	resp.Message = fmt.Sprintf("Mapping applied; %d items extracted", len(src.Items))
	return resp, nil
}

// DrawingFile returns the archived original of the current drawing.
func (s *reconcileService) DrawingFile(ctx context.Context, id string) (*Export, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}
	if sess.Drawing == nil {
		return nil, utils.NewNotFoundError("No drawing uploaded")
	}

	data, err := s.storage.Download(ctx, sess.Drawing.ArchiveKey)
	switch {
	case errors.Is(err, storage.ErrNotArchived):
		return nil, utils.NewNotFoundError("Upload archiving is disabled")
	case errors.Is(err, storage.ErrNotFound):
		return nil, utils.NewNotFoundError("The archived drawing is no longer available")
	}
	if err != nil {
		s.logger.Error("Failed to download archived drawing", "error", err, "session_id", id)
		return nil, utils.NewInternalError("Failed to retrieve the drawing file")
	}

	contentType := "application/octet-stream"
	if f, err := extractor.FormatOf(sess.Drawing.Filename); err == nil {
		contentType = f.ContentType()
	}
	return &Export{Filename: sess.Drawing.Filename, ContentType: contentType, Data: data}, nil
}

// extract runs ingestion and maps its failures to client errors.
func (s *reconcileService) extract(req *models.UploadRequest) (*extractor.Document, error) {
	doc, err := extractor.Extract(req.Filename, req.File)
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return nil, utils.NewBadRequestError(fmt.Sprintf("Unsupported file type for %q. Allowed: csv, xlsx, pdf, docx, txt", req.Filename))
	case errors.Is(err, extractor.ErrEmptyFile):
		return nil, utils.NewBadRequestError("Uploaded file is empty")
	case err != nil:
		s.logger.Warn("Failed to read upload", "error", err, "filename", req.Filename)
		return nil, utils.NewUnprocessableError(fmt.Sprintf("Failed to read %s: %v", req.Filename, err))
	}
	return doc, nil
}

func (s *reconcileService) logExtraction(id, filename string, accepted int, skipped []models.SkippedRow) {
	s.logger.Info("Records extracted",
		"session_id", id,
		"filename", filename,
		"accepted", accepted,
		"skipped", len(skipped))
	for _, sk := range skipped {
		s.logger.Debug("Row skipped", "session_id", id, "filename", filename, "row", sk.Row, "reason", sk.Reason)
	}
}

// validMapping drops blank entries and rejects fields or columns the table does not have.
func validMapping(in models.FieldMapping, columns []string) (models.FieldMapping, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	out := make(models.FieldMapping, len(in))
	for field, column := range in {
		if !isDrawingField(field) {
			return nil, utils.NewBadRequestError(fmt.Sprintf("Unknown field %q", field))
		}
		if strings.TrimSpace(column) == "" {
			continue
		}
		if !known[column] {
			return nil, utils.NewBadRequestError(fmt.Sprintf("Column %q is not in the drawing", column))
		}
		out[field] = column
	}
	return out, nil
}

func isDrawingField(f models.Field) bool {
	for _, known := range mapper.Fields(models.SchemaDrawing) {
		if f == known {
			return true
		}
	}
	return false
}

func isExtractionError(err error) bool {
	return errors.Is(err, records.ErrUnmappable) || errors.Is(err, records.ErrNoData)
}

func drawingResponse(id string, src *session.DrawingSource, duplicates []string) *models.DrawingUploadResponse {
	return &models.DrawingUploadResponse{
		SessionID:  id,
		Filename:   src.Filename,
		FileSize:   src.FileSize,
		Table:      src.Table.Name,
		Columns:    src.Table.Columns,
		Mapping:    src.Mapping,
		Unmapped:   src.Mapping.Missing(),
		Preview:    src.Table.Preview(PreviewRows),
		ItemCount:  len(src.Items),
		Skipped:    src.Skipped,
		Duplicates: duplicates,
		Items:      src.Items,
		UploadedAt: src.UploadedAt,
	}
}
