package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/extractor"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/services"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

const (
	// MaxQuoteFiles bounds the files accepted by one quote upload.
	MaxQuoteFiles = 20
	// formOverhead allows for multipart boundaries and headers on top of file bytes.
	formOverhead = 1 << 20
	// maxJSONBody bounds settings, mapping and pasted quote requests.
	maxJSONBody = 2 << 20
)

var errEmptyBody = utils.NewBadRequestError("Request body is required")

type ReconcileHandler struct {
	service     services.ReconcileService
	maxFileSize int64
	logger      *utils.Logger
}

func NewReconcileHandler(service services.ReconcileService, maxFileSize int64, logger *utils.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (h *ReconcileHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// parseForm applies the body limit and parses a multipart upload.
func (h *ReconcileHandler) parseForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	// Check Content-Length header first to reject oversized requests early
	if r.ContentLength > limit {
		return utils.NewRequestTooLargeError(h.sizeMessage())
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return utils.NewRequestTooLargeError(h.sizeMessage())
		}
		return utils.NewBadRequestError("Invalid form data")
	}
	return nil
}

// readUpload reads one multipart file, enforcing the per-file size limit.
func (h *ReconcileHandler) readUpload(header *multipart.FileHeader) (*models.UploadRequest, error) {
	if header.Size > h.maxFileSize {
		return nil, utils.NewRequestTooLargeError(fmt.Sprintf("%s: %s", header.Filename, h.sizeMessage()))
	}

	file, err := header.Open()
	if err != nil {
		return nil, utils.NewBadRequestError("Failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, utils.NewInternalError("Failed to read file")
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, utils.NewRequestTooLargeError(fmt.Sprintf("%s: %s", header.Filename, h.sizeMessage()))
	}
	if len(data) == 0 {
		return nil, utils.NewBadRequestError(fmt.Sprintf("Uploaded file %s is empty", header.Filename))
	}

	return &models.UploadRequest{
		File:        data,
		Filename:    filepath.Base(header.Filename),
		ContentType: determineContentType(header.Filename, header.Header.Get("Content-Type")),
	}, nil
}

func (h *ReconcileHandler) sizeMessage() string {
	return fmt.Sprintf("File size exceeds %dMB limit", h.maxFileSize>>20)
}

// decodeJSON reads a bounded JSON body into v.
func (h *ReconcileHandler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return utils.NewRequestTooLargeError("Request body too large")
		}
		return utils.NewBadRequestError(fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

// determineContentType prefers the type implied by the file extension over the
// client-reported one.
func determineContentType(filename, headerContentType string) string {
	if f, err := extractor.FormatOf(filename); err == nil {
		return f.ContentType()
	}
	if headerContentType != "" {
		return headerContentType
	}
	return "application/octet-stream"
}

func sessionID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func (h *ReconcileHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *ReconcileHandler) respondFile(w http.ResponseWriter, file *services.Export) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.logger.Error("Failed to write file response", "error", err, "filename", file.Filename)
	}
}

func (h *ReconcileHandler) respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	} else {
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", status, "error", err.Error())
	} else {
		h.logger.Warn("Request error", "status", status, "error", message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
