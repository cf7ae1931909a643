package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/config"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/db"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/repository"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/router"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/services"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/session"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/storage"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(database); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize upload archive
	archive, err := storage.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize upload archive", "error", err)
	}

	// Sessions and their expiry
	store := session.NewStore()
	janitor, err := session.NewJanitor(store, cfg.SessionTTL, cfg.SessionSweepSchedule, logger)
	if err != nil {
		logger.Fatal("Failed to schedule session expiry", "error", err)
	}

	// Initialize reconcile service
	runRepo := repository.NewRepository(database)
	svc := services.NewService(store, runRepo, archive, analyzer.NewAnalyzer(logger), services.Defaults{
		SupplierCodes:       cfg.SupplierCodes,
		CategoryEnforcement: cfg.CategoryEnforcement,
	}, logger)

	janitor.OnExpire = func(expired []*session.Session) {
		svc.ReleaseExpired(context.Background(), expired)
	}
	janitor.Start()

	// Setup HTTP router
	handler := router.NewRouter(svc, router.Options{
		MaxFileSize:        cfg.MaxFileSize,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"archive_uploads", cfg.ArchiveUploads,
			"category_enforcement", cfg.CategoryEnforcement)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-janitor.Stop().Done()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
