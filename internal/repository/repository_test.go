package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/db"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database))
	require.NoError(t, db.RunMigrations(database), "migrations are idempotent")

	return NewRepository(database)
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	run := &models.AnalysisRun{
		ID:                  "run-1",
		SessionID:           "sess-1",
		DrawingFile:         "K-101.pdf",
		DrawingItems:        42,
		QuoteFiles:          2,
		QuoteItems:          57,
		CategoryEnforcement: true,
		TotalItems:          42,
		ActionableItems:     30,
		Quoted:              25,
		Missing:             3,
		QtyMismatch:         2,
		TotalValue:          123456.78,
		StatusCounts:        map[models.Status]int{models.StatusQuoted: 25, models.StatusMissing: 3},
		CreatedAt:           created,
	}
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "K-101.pdf", got.DrawingFile)
	assert.Equal(t, 57, got.QuoteItems)
	assert.True(t, got.CategoryEnforcement)
	assert.InDelta(t, 123456.78, got.TotalValue, 0.001)
	assert.Equal(t, 3, got.StatusCounts[models.StatusMissing])
	assert.True(t, created.Equal(got.CreatedAt))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_ListBySession(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &models.AnalysisRun{
			ID:        id,
			SessionID: "sess-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.AnalysisRun{ID: "other", SessionID: "sess-2", CreatedAt: base}))

	runs, err := repo.ListBySession(ctx, "sess-1", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.NotNil(t, runs[0].StatusCounts)

	none, err := repo.ListBySession(ctx, "sess-3", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
