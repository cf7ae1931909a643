package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/handlers"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/middleware"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/services"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// Options carries the HTTP settings the router needs from configuration.
type Options struct {
	MaxFileSize        int64
	CORSAllowedOrigins []string
}

func NewRouter(service services.ReconcileService, opts Options, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	h := handlers.NewReconcileHandler(service, opts.MaxFileSize, logger)

	// Routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Session endpoints
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/reset", h.ResetSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/settings", h.UpdateSettings).Methods(http.MethodPut)

	// Drawing endpoints
	api.HandleFunc("/sessions/{id}/drawing", h.UploadDrawing).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/drawing/mapping", h.ApplyMapping).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/drawing/file", h.DrawingFile).Methods(http.MethodGet)

	// Quote endpoints
	api.HandleFunc("/sessions/{id}/quotes", h.UploadQuotes).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/quotes/text", h.AddQuoteText).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/quotes", h.ClearQuotes).Methods(http.MethodDelete)

	// Analysis endpoints
	api.HandleFunc("/sessions/{id}/analyze", h.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/results", h.Results).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/summary", h.Summary).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/export/{file}", h.Export).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/runs", h.ListRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", h.GetRun).Methods(http.MethodGet)

	return middleware.CORS(opts.CORSAllowedOrigins)(r)
}
