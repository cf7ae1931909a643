package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

func (h *ReconcileHandler) UploadDrawing(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r, h.maxFileSize+formOverhead); err != nil {
		h.respondError(w, err)
		return
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}

	req, err := h.readUpload(headers[0])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("Drawing upload attempt",
		"session_id", sessionID(r),
		"filename", req.Filename,
		"content_type", req.ContentType,
		"size", len(req.File))

	resp, err := h.service.UploadDrawing(r.Context(), sessionID(r), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *ReconcileHandler) ApplyMapping(w http.ResponseWriter, r *http.Request) {
	var req models.MappingRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	resp, err := h.service.ApplyMapping(r.Context(), sessionID(r), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *ReconcileHandler) DrawingFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.DrawingFile(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondFile(w, file)
}

// UploadQuotes accepts one or more files under the "files" (or "file") form field.
func (h *ReconcileHandler) UploadQuotes(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r, MaxQuoteFiles*h.maxFileSize+formOverhead); err != nil {
		h.respondError(w, err)
		return
	}

	var headers []*multipart.FileHeader
	headers = append(headers, r.MultipartForm.File["files"]...)
	headers = append(headers, r.MultipartForm.File["file"]...)
	switch {
	case len(headers) == 0:
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	case len(headers) > MaxQuoteFiles:
		h.respondError(w, utils.NewBadRequestError("Too many files in one upload"))
		return
	}

	reqs := make([]*models.UploadRequest, 0, len(headers))
	for _, header := range headers {
		req, err := h.readUpload(header)
		if err != nil {
			h.respondError(w, err)
			return
		}
		reqs = append(reqs, req)
	}

	h.logger.Info("Quote upload attempt", "session_id", sessionID(r), "files", len(reqs))

	resp, err := h.service.UploadQuotes(r.Context(), sessionID(r), reqs)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *ReconcileHandler) AddQuoteText(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteTextRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	resp, err := h.service.AddQuoteText(r.Context(), sessionID(r), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *ReconcileHandler) ClearQuotes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ClearQuotes(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
