package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/session"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/summary"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// RunHistoryLimit bounds how many runs ListRuns returns.
const RunHistoryLimit = 50

// Analyze reconciles the current drawing against every loaded quote, records the run and
// keeps the report on the session for results, summaries and exports.
func (s *reconcileService) Analyze(ctx context.Context, id string) (*models.Report, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}

	report, err := s.reconcile(ctx, sess)
	if err != nil {
		return nil, err
	}
	report.RunID = utils.GenerateID()

	run := models.NewAnalysisRun(report.RunID, report, len(sess.Quotes))
	if err := s.repo.Create(ctx, run); err != nil {
		s.logger.Error("Failed to record analysis run", "error", err, "session_id", id)
		return nil, utils.NewInternalError("Failed to record analysis run")
	}

	if _, err := s.store.Update(id, func(current *session.Session) error {
		// a concurrent upload makes this report stale for the session
		if current.UpdatedAt.Equal(sess.UpdatedAt) {
			current.LastReport = report
		}
		return nil
	}); err != nil {
		return nil, sessionError(err)
	}

	s.logger.Info("Analysis completed",
		"session_id", id,
		"run_id", report.RunID,
		"items", report.Summary.Overview.TotalItems,
		"missing", report.Summary.Overview.Missing,
		"qty_mismatch", report.Summary.Overview.QtyMismatch)

	return report, nil
}

func (s *reconcileService) Results(ctx context.Context, id string, statuses []models.Status, codes []int) ([]models.ClassificationResult, error) {
	report, err := s.currentReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return summary.Filter(report.Results, statuses, codes), nil
}

func (s *reconcileService) Summary(ctx context.Context, id string) (*models.Summary, error) {
	report, err := s.currentReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return &report.Summary, nil
}

func (s *reconcileService) GetRun(ctx context.Context, runID string) (*models.AnalysisRun, error) {
	run, err := s.repo.GetByID(ctx, runID)
	if err != nil {
		s.logger.Error("Failed to load analysis run", "error", err, "run_id", runID)
		return nil, utils.NewInternalError("Failed to load analysis run")
	}
	if run == nil {
		return nil, utils.NewNotFoundError("Analysis run not found")
	}
	return run, nil
}

func (s *reconcileService) ListRuns(ctx context.Context, sessionID string) ([]models.AnalysisRun, error) {
	runs, err := s.repo.ListBySession(ctx, sessionID, RunHistoryLimit)
	if err != nil {
		s.logger.Error("Failed to list analysis runs", "error", err, "session_id", sessionID)
		return nil, utils.NewInternalError("Failed to list analysis runs")
	}
	if runs == nil {
		runs = []models.AnalysisRun{}
	}
	return runs, nil
}

// currentReport returns the report of the last analysis, or reconciles afresh without
// recording a run when the session changed since.
func (s *reconcileService) currentReport(ctx context.Context, id string) (*models.Report, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}
	if sess.LastReport != nil {
		return sess.LastReport, nil
	}
	return s.reconcile(ctx, sess)
}

func (s *reconcileService) reconcile(ctx context.Context, sess *session.Session) (*models.Report, error) {
	in := analyzer.Input{
		SessionID:  sess.ID,
		QuoteItems: sess.QuoteItems(),
		Options: analyzer.Options{
			CategoryEnforcement: sess.CategoryEnforcement,
			SupplierCodes:       sess.SupplierCodes,
		},
	}
	if sess.Drawing != nil {
		in.DrawingFile = sess.Drawing.Filename
		in.DrawingItems = sess.Drawing.Items
	}

	report, err := s.analyzer.Analyze(ctx, in)
	switch {
	case errors.Is(err, analyzer.ErrNoDrawing):
		return nil, utils.NewUnprocessableError("No drawing items loaded. Upload a drawing and map its columns first")
	case err != nil:
		return nil, utils.NewInternalError(fmt.Sprintf("Analysis failed: %v", err))
	}
	return report, nil
}
