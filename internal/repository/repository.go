package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// Repository stores the history of analysis runs. Nothing stored here feeds back into an
// analysis.
type Repository interface {
	Create(ctx context.Context, run *models.AnalysisRun) error
	GetByID(ctx context.Context, id string) (*models.AnalysisRun, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRun, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// runRow mirrors the analysis_runs table.
type runRow struct {
	models.AnalysisRun
	StatusCountsJSON string `db:"status_counts"`
}

const runColumns = `id, session_id, drawing_file, drawing_items, quote_files, quote_items,
	category_enforcement, total_items, actionable_items, quoted, missing, qty_mismatch,
	needs_pricing, total_value, status_counts, created_at`

func (r *repository) Create(ctx context.Context, run *models.AnalysisRun) error {
	statusCounts := run.StatusCounts
	if statusCounts == nil {
		statusCounts = map[models.Status]int{}
	}
	counts, err := json.Marshal(statusCounts)
	if err != nil {
		return fmt.Errorf("failed to encode status counts: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.SessionID,
		run.DrawingFile,
		run.DrawingItems,
		run.QuoteFiles,
		run.QuoteItems,
		run.CategoryEnforcement,
		run.TotalItems,
		run.ActionableItems,
		run.Quoted,
		run.Missing,
		run.QtyMismatch,
		run.NeedsPricing,
		run.TotalValue,
		string(counts),
		run.CreatedAt.UTC(),
	)
	return err
}

// GetByID returns nil, nil when no run has the id.
func (r *repository) GetByID(ctx context.Context, id string) (*models.AnalysisRun, error) {
	var row runRow

	query := `SELECT ` + runColumns + ` FROM analysis_runs WHERE id = ?`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListBySession returns the newest runs first.
func (r *repository) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []runRow
	query := `
		SELECT ` + runColumns + `
		FROM analysis_runs
		WHERE session_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, sessionID, limit); err != nil {
		return nil, err
	}

	runs := make([]models.AnalysisRun, 0, len(rows))
	for _, row := range rows {
		run, err := row.toModel()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (row runRow) toModel() (models.AnalysisRun, error) {
	run := row.AnalysisRun
	if row.StatusCountsJSON != "" {
		if err := json.Unmarshal([]byte(row.StatusCountsJSON), &run.StatusCounts); err != nil {
			return models.AnalysisRun{}, fmt.Errorf("failed to decode status counts: %w", err)
		}
	}
	if run.StatusCounts == nil {
		run.StatusCounts = map[models.Status]int{}
	}
	run.CreatedAt = run.CreatedAt.In(time.UTC)
	return run, nil
}
