package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/al-solutions/salesdash/internal/api/handlers"
	"github.com/al-solutions/salesdash/internal/dashboard"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

type stubDashboardService struct {
	snapshot  dashboard.Snapshot
	updates   []entities.FilterPatch
	resets    int
	export    *dashboard.Export
	exportErr error
}

func (s *stubDashboardService) Snapshot() dashboard.Snapshot {
	return s.snapshot
}

func (s *stubDashboardService) Update(ctx context.Context, patch entities.FilterPatch) dashboard.Snapshot {
	s.updates = append(s.updates, patch)
	return s.snapshot
}

func (s *stubDashboardService) Reset(ctx context.Context) dashboard.Snapshot {
	s.resets++
	return s.snapshot
}

func (s *stubDashboardService) ExportSummary(ctx context.Context) (*dashboard.Export, error) {
	return s.export, s.exportErr
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	service := &stubDashboardService{
		snapshot: dashboard.Snapshot{RowCount: 42},
	}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	w := httptest.NewRecorder()

	handler.GetDashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var snap dashboard.Snapshot
	err := json.NewDecoder(w.Body).Decode(&snap)
	assert.NoError(t, err)
	assert.Equal(t, 42, snap.RowCount)
}

func TestDashboardHandler_UpdateFilters_Success(t *testing.T) {
	service := &stubDashboardService{
		snapshot: dashboard.Snapshot{RowCount: 7},
	}
	handler := handlers.NewDashboardHandler(service)

	body := `{"continent":"Europe","countries":["Germany"]}`
	req := httptest.NewRequest("POST", "/api/dashboard/filters", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.UpdateFilters(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, service.updates, 1)

	patch := service.updates[0]
	if assert.NotNil(t, patch.Continent) {
		assert.Equal(t, "Europe", *patch.Continent)
	}
	if assert.NotNil(t, patch.Countries) {
		assert.Equal(t, []string{"Germany"}, *patch.Countries)
	}
	assert.Nil(t, patch.StartDate)
	assert.Nil(t, patch.TrendView)
}

func TestDashboardHandler_UpdateFilters_InvalidJSON(t *testing.T) {
	service := &stubDashboardService{}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("POST", "/api/dashboard/filters", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	handler.UpdateFilters(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.updates)

	var response map[string]string
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "invalid request payload", response["error"])
}

func TestDashboardHandler_UpdateFilters_InvalidDateRange(t *testing.T) {
	service := &stubDashboardService{
		snapshot: dashboard.Snapshot{StatusMessage: dashboard.MsgInvalidDateRange},
	}
	handler := handlers.NewDashboardHandler(service)

	body := `{"start_date":"2025-01-01","end_date":"2024-01-01"}`
	req := httptest.NewRequest("POST", "/api/dashboard/filters", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.UpdateFilters(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The body still carries the full terminal snapshot.
	var snap dashboard.Snapshot
	err := json.NewDecoder(w.Body).Decode(&snap)
	assert.NoError(t, err)
	assert.Equal(t, dashboard.MsgInvalidDateRange, snap.StatusMessage)
}

func TestDashboardHandler_UpdateFilters_EmptyResultIsOK(t *testing.T) {
	service := &stubDashboardService{
		snapshot: dashboard.Snapshot{StatusMessage: dashboard.MsgNoData},
	}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("POST", "/api/dashboard/filters", strings.NewReader(`{"continent":"Asia"}`))
	w := httptest.NewRecorder()

	handler.UpdateFilters(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardHandler_ResetFilters(t *testing.T) {
	service := &stubDashboardService{
		snapshot: dashboard.Snapshot{RowCount: 100},
	}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("POST", "/api/dashboard/reset", nil)
	w := httptest.NewRecorder()

	handler.ResetFilters(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.resets)
}

func TestDashboardHandler_Export_Success(t *testing.T) {
	content := []byte("Metric,Mean,Median,Std Dev\nDemo Requests,1.00,1.00,0.00\n")
	service := &stubDashboardService{
		export: &dashboard.Export{
			ID:       "3f1d9a6e-0000-0000-0000-000000000000",
			Filename: "summary_stats_report_20240301_120000.csv",
			Content:  content,
		},
	}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("GET", "/api/dashboard/export", nil)
	w := httptest.NewRecorder()

	handler.ExportSummaryReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "summary_stats_report_20240301_120000.csv")
	assert.Equal(t, "3f1d9a6e-0000-0000-0000-000000000000", w.Header().Get("X-Report-ID"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestDashboardHandler_Export_NothingRetained(t *testing.T) {
	service := &stubDashboardService{
		exportErr: apperrors.NewExportError("no filtered rows available for export"),
	}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("GET", "/api/dashboard/export", nil)
	w := httptest.NewRecorder()

	handler.ExportSummaryReport(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestDashboardHandler_Export_UnexpectedError(t *testing.T) {
	service := &stubDashboardService{
		exportErr: errors.New("disk on fire"),
	}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("GET", "/api/dashboard/export", nil)
	w := httptest.NewRecorder()

	handler.ExportSummaryReport(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
