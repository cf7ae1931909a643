package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/repository"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/session"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/storage"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/summary"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// ReconcileService drives the session workflow: load a drawing, load quotes, analyze, export.
type ReconcileService interface {
	CreateSession(ctx context.Context, req *models.SettingsRequest) (*models.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*models.SessionResponse, error)
	DeleteSession(ctx context.Context, id string) error
	ResetSession(ctx context.Context, id string) (*models.SessionResponse, error)
	UpdateSettings(ctx context.Context, id string, req *models.SettingsRequest) (*models.SessionResponse, error)
	ReleaseExpired(ctx context.Context, expired []*session.Session)

	UploadDrawing(ctx context.Context, id string, req *models.UploadRequest) (*models.DrawingUploadResponse, error)
	ApplyMapping(ctx context.Context, id string, req *models.MappingRequest) (*models.DrawingUploadResponse, error)
	DrawingFile(ctx context.Context, id string) (*Export, error)

	UploadQuotes(ctx context.Context, id string, reqs []*models.UploadRequest) (*models.QuoteUploadResponse, error)
	AddQuoteText(ctx context.Context, id string, req *models.QuoteTextRequest) (*models.QuoteUploadResponse, error)
	ClearQuotes(ctx context.Context, id string) (*models.SessionResponse, error)

	Analyze(ctx context.Context, id string) (*models.Report, error)
	Results(ctx context.Context, id string, statuses []models.Status, codes []int) ([]models.ClassificationResult, error)
	Summary(ctx context.Context, id string) (*models.Summary, error)
	Export(ctx context.Context, id string, kind ExportKind) (*Export, error)

	GetRun(ctx context.Context, runID string) (*models.AnalysisRun, error)
	ListRuns(ctx context.Context, sessionID string) ([]models.AnalysisRun, error)
}

// Defaults applied to sessions created without explicit settings.
type Defaults struct {
	SupplierCodes       models.SupplierCodes
	CategoryEnforcement bool
}

type reconcileService struct {
	store    *session.Store
	repo     repository.Repository
	storage  storage.Storage
	analyzer analyzer.Analyzer
	defaults Defaults
	logger   *utils.Logger
}

func NewService(store *session.Store, repo repository.Repository, archive storage.Storage, a analyzer.Analyzer, defaults Defaults, logger *utils.Logger) ReconcileService {
	if defaults.SupplierCodes == nil {
		defaults.SupplierCodes = models.DefaultSupplierCodes()
	}
	return &reconcileService{
		store:    store,
		repo:     repo,
		storage:  archive,
		analyzer: a,
		defaults: defaults,
		logger:   logger,
	}
}

func (s *reconcileService) CreateSession(ctx context.Context, req *models.SettingsRequest) (*models.SessionResponse, error) {
	codes := s.defaults.SupplierCodes
	enforce := s.defaults.CategoryEnforcement

	if req != nil {
		if len(req.SupplierCodes) > 0 {
			if err := models.SupplierCodes(req.SupplierCodes).Validate(); err != nil {
				return nil, utils.NewBadRequestError(err.Error())
			}
			codes = codes.Merge(req.SupplierCodes)
		}
		if req.CategoryEnforcement != nil {
			enforce = *req.CategoryEnforcement
		}
	}

	sess := s.store.Create(codes, enforce)
	s.logger.Info("Session created", "session_id", sess.ID, "category_enforcement", enforce)

	return sessionResponse(sess), nil
}

func (s *reconcileService) GetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}
	return sessionResponse(sess), nil
}

func (s *reconcileService) DeleteSession(ctx context.Context, id string) error {
	sess, err := s.getSession(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return sessionError(err)
	}

	s.removeArchived(ctx, sess.ArchiveKeys()...)
	s.logger.Info("Session deleted", "session_id", id)
	return nil
}

// ReleaseExpired removes the archived uploads of sessions the janitor expired.
func (s *reconcileService) ReleaseExpired(ctx context.Context, expired []*session.Session) {
	for _, sess := range expired {
		keys := sess.ArchiveKeys()
		s.removeArchived(ctx, keys...)
		s.logger.Info("Session expired", "session_id", sess.ID, "archived_uploads", len(keys))
	}
}

func (s *reconcileService) ResetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	var keys []string
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		keys = sess.ArchiveKeys()
		sess.Reset()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	s.removeArchived(ctx, keys...)
	s.logger.Info("Session reset", "session_id", id)
	return sessionResponse(sess), nil
}

func (s *reconcileService) UpdateSettings(ctx context.Context, id string, req *models.SettingsRequest) (*models.SessionResponse, error) {
	if req == nil {
		return nil, utils.NewBadRequestError("Settings are required")
	}

	if err := models.SupplierCodes(req.SupplierCodes).Validate(); err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}

	sess, err := s.store.Update(id, func(sess *session.Session) error {
		if len(req.SupplierCodes) > 0 {
			sess.SupplierCodes = sess.SupplierCodes.Merge(req.SupplierCodes)
		}
		if req.CategoryEnforcement != nil {
			sess.CategoryEnforcement = *req.CategoryEnforcement
		}
		sess.LastReport = nil
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	s.logger.Info("Session settings updated",
		"session_id", id,
		"supplier_codes", len(sess.SupplierCodes),
		"category_enforcement", sess.CategoryEnforcement)

	return sessionResponse(sess), nil
}

func (s *reconcileService) getSession(id string) (*session.Session, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, sessionError(err)
	}
	return sess, nil
}

// sessionError turns store errors into responses; AppErrors raised inside updates pass through.
func sessionError(err error) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, session.ErrNotFound):
		return utils.NewNotFoundError("Session not found")
	default:
		return utils.NewInternalError(fmt.Sprintf("Session update failed: %v", err))
	}
}

func (s *reconcileService) archive(ctx context.Context, key string, req *models.UploadRequest) error {
	if err := s.storage.Upload(ctx, key, req.File, req.ContentType); err != nil {
		s.logger.Error("Failed to archive upload", "error", err, "key", key)
		return utils.NewInternalError("Failed to store uploaded file")
	}
	return nil
}

func (s *reconcileService) removeArchived(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to remove archived upload", "error", err, "key", key)
		}
	}
}

func sessionResponse(sess *session.Session) *models.SessionResponse {
	resp := &models.SessionResponse{
		ID:                  sess.ID,
		QuoteFiles:          make([]models.QuoteFileSummary, 0, len(sess.Quotes)),
		SupplierCodes:       sess.SupplierCodes,
		CategoryEnforcement: sess.CategoryEnforcement,
		CreatedAt:           sess.CreatedAt,
		UpdatedAt:           sess.UpdatedAt,
	}
	if d := sess.Drawing; d != nil {
		resp.DrawingFile = d.Filename
		resp.DrawingColumns = d.Table.Columns
		resp.DrawingMapping = d.Mapping
		resp.DrawingItems = len(d.Items)
	}
	resp.QuoteFiles = append(resp.QuoteFiles, summary.QuoteFiles(sess.QuoteItems())...)
	if sess.LastReport != nil {
		resp.LastRunID = sess.LastReport.RunID
	}
	return resp
}
