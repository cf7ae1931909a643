package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/exporter"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/extractor"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// ExportKind names a downloadable artifact by its file name.
type ExportKind string

const (
	ExportReportXLSX  ExportKind = "report.xlsx"
	ExportReportPDF   ExportKind = "report.pdf"
	ExportDrawingXLSX ExportKind = "drawing.xlsx"
	ExportQuotesXLSX  ExportKind = "quotes.xlsx"
)

// ParseExportKind validates a requested export name.
func ParseExportKind(name string) (ExportKind, bool) {
	switch k := ExportKind(name); k {
	case ExportReportXLSX, ExportReportPDF, ExportDrawingXLSX, ExportQuotesXLSX:
		return k, true
	}
	return "", false
}

// Export is a rendered file ready to be sent.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (s *reconcileService) Export(ctx context.Context, id string, kind ExportKind) (*Export, error) {
	var (
		data []byte
		err  error
		base = "analysis"
	)

	switch kind {
	case ExportReportXLSX, ExportReportPDF:
		report, rerr := s.currentReport(ctx, id)
		if rerr != nil {
			return nil, rerr
		}
		if report.DrawingFile != "" {
			base = strings.TrimSuffix(filepath.Base(report.DrawingFile), filepath.Ext(report.DrawingFile))
		}
		if kind == ExportReportPDF {
			data, err = exporter.SummaryPDF(report)
		} else {
			data, err = exporter.Workbook(report)
		}
	case ExportDrawingXLSX:
		sess, serr := s.getSession(id)
		if serr != nil {
			return nil, serr
		}
		if sess.Drawing == nil || len(sess.Drawing.Items) == 0 {
			return nil, utils.NewNotFoundError("No drawing items to export")
		}
		base = "drawing"
		data, err = exporter.DrawingWorkbook(sess.Drawing.Items)
	case ExportQuotesXLSX:
		sess, serr := s.getSession(id)
		if serr != nil {
			return nil, serr
		}
		items := sess.QuoteItems()
		if len(items) == 0 {
			return nil, utils.NewNotFoundError("No quote items to export")
		}
		base = "quotes"
		data, err = exporter.QuoteWorkbook(items)
	default:
		return nil, utils.NewBadRequestError(fmt.Sprintf("Unknown export %q", kind))
	}

	if err != nil {
		s.logger.Error("Failed to render export", "error", err, "session_id", id, "export", kind)
		return nil, utils.NewInternalError("Failed to render export")
	}

	ext := filepath.Ext(string(kind))
	format := extractor.FormatXLSX
	if ext == ".pdf" {
		format = extractor.FormatPDF
	}
	name := base + ext
	if kind == ExportReportXLSX || kind == ExportReportPDF {
		name = base + "_analysis" + ext
	}

	s.logger.Info("Export rendered", "session_id", id, "export", kind, "bytes", len(data))
	return &Export{Filename: name, ContentType: format.ContentType(), Data: data}, nil
}
