package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/al-solutions/salesdash/internal/dashboard"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

// DashboardService defines the dashboard operations used by the handler.
type DashboardService interface {
	Snapshot() dashboard.Snapshot
	Update(ctx context.Context, patch entities.FilterPatch) dashboard.Snapshot
	Reset(ctx context.Context) dashboard.Snapshot
	ExportSummary(ctx context.Context) (*dashboard.Export, error)
}

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	service DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Snapshot())
}

// UpdateFilters handles POST /api/dashboard/filters
func (h *DashboardHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var patch entities.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	snap := h.service.Update(r.Context(), patch)
	respondWithJSON(w, snapshotStatusCode(snap), snap)
}

// ResetFilters handles POST /api/dashboard/reset
func (h *DashboardHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Reset(r.Context())
	respondWithJSON(w, snapshotStatusCode(snap), snap)
}

// ExportSummaryReport handles GET /api/dashboard/export
func (h *DashboardHandler) ExportSummaryReport(w http.ResponseWriter, r *http.Request) {
	export, err := h.service.ExportSummary(r.Context())
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeExport) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("X-Report-ID", export.ID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		return
	}
}

// snapshotStatusCode maps a terminal snapshot state to an HTTP status. An
// empty-result snapshot is a valid dashboard state, not a client error.
func snapshotStatusCode(snap dashboard.Snapshot) int {
	switch snap.StatusMessage {
	case dashboard.MsgInvalidDateRange:
		return http.StatusBadRequest
	case dashboard.MsgError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
