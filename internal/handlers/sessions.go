package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

func (h *ReconcileHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	req := &models.SettingsRequest{}
	if err := h.decodeJSON(w, r, req); err == errEmptyBody {
		req = nil
	} else if err != nil {
		h.respondError(w, err)
		return
	}

	resp, err := h.service.CreateSession(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *ReconcileHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetSession(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *ReconcileHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), sessionID(r)); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReconcileHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ResetSession(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *ReconcileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.SupplierCodes == nil && req.CategoryEnforcement == nil {
		h.respondError(w, utils.NewBadRequestError("Nothing to update"))
		return
	}

	resp, err := h.service.UpdateSettings(r.Context(), sessionID(r), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
