package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/services"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

func (h *ReconcileHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Analyze(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

// Results serves the classification results, optionally filtered by
// ?status=MISSING&status=Quoted and ?code=5,6.
func (h *ReconcileHandler) Results(w http.ResponseWriter, r *http.Request) {
	statuses, err := parseStatuses(queryValues(r, "status"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	codes, err := parseCodes(queryValues(r, "code"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	results, err := h.service.Results(r.Context(), sessionID(r), statuses, codes)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

func (h *ReconcileHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}

func (h *ReconcileHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind, ok := services.ParseExportKind(mux.Vars(r)["file"])
	if !ok {
		h.respondError(w, utils.NewNotFoundError("Unknown export"))
		return
	}

	file, err := h.service.Export(r.Context(), sessionID(r), kind)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondFile(w, file)
}

func (h *ReconcileHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, run)
}

func (h *ReconcileHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.ListRuns(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, runs)
}

// queryValues accepts both repeated parameters and comma-separated lists.
func queryValues(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseStatuses(values []string) ([]models.Status, error) {
	out := make([]models.Status, 0, len(values))
	for _, v := range values {
		st, ok := models.ParseStatus(v)
		if !ok {
			return nil, utils.NewBadRequestError(fmt.Sprintf("Unknown status %q", v))
		}
		out = append(out, st)
	}
	return out, nil
}

func parseCodes(values []string) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		code, err := strconv.Atoi(v)
		if err != nil || code < models.MinSupplierCode || code > models.MaxSupplierCode {
			return nil, utils.NewBadRequestError(fmt.Sprintf("Invalid supplier code %q", v))
		}
		out = append(out, code)
	}
	return out, nil
}
