package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/summary"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// ErrNoDrawing is returned when there is no schedule to reconcile.
var ErrNoDrawing = errors.New("no drawing items loaded")

// Input is one reconciliation request.
type Input struct {
	SessionID    string
	DrawingFile  string
	DrawingItems []models.DrawingItem
	QuoteItems   []models.QuoteItem
	Options      Options
}

type Analyzer interface {
	Analyze(ctx context.Context, in Input) (*models.Report, error)
}

type reconciler struct {
	logger *utils.Logger
	now    func() time.Time
}

func NewAnalyzer(logger *utils.Logger) Analyzer {
	return &reconciler{
		logger: logger,
		now:    time.Now,
	}
}

func (a *reconciler) Analyze(ctx context.Context, in Input) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(in.DrawingItems) == 0 {
		return nil, ErrNoDrawing
	}

	codes := in.Options.SupplierCodes
	if codes == nil {
		codes = models.DefaultSupplierCodes()
	}
	opts := Options{CategoryEnforcement: in.Options.CategoryEnforcement, SupplierCodes: codes}

	results := Analyze(in.DrawingItems, in.QuoteItems, opts)

	report := &models.Report{
		SessionID:           in.SessionID,
		DrawingFile:         in.DrawingFile,
		CategoryEnforcement: opts.CategoryEnforcement,
		SupplierCodes:       codes.Clone(),
		DrawingItems:        in.DrawingItems,
		QuoteItems:          in.QuoteItems,
		Results:             results,
		Summary: summary.Build(summary.Input{
			DrawingItems:        in.DrawingItems,
			QuoteItems:          in.QuoteItems,
			Results:             results,
			SupplierCodes:       codes,
			CategoryEnforcement: opts.CategoryEnforcement,
		}),
		GeneratedAt: a.now().UTC(),
	}

	a.logger.Debug("Analysis complete",
		"session_id", in.SessionID,
		"drawing_items", len(in.DrawingItems),
		"quote_items", len(in.QuoteItems),
		"missing", report.Summary.Overview.Missing,
	)

	return report, nil
}
