package routes

import (
	"net/http"

	"github.com/al-solutions/salesdash/internal/api/handlers"
	"github.com/al-solutions/salesdash/internal/api/middleware"
	"github.com/al-solutions/salesdash/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	dashboardHandler *handlers.DashboardHandler
	streamHandler    *handlers.StreamHandler

	metrics        *observability.Metrics
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(
	dashboardHandler *handlers.DashboardHandler,
	streamHandler *handlers.StreamHandler,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		dashboardHandler: dashboardHandler,
		streamHandler:    streamHandler,

		metrics:        metrics,
		allowedOrigins: allowedOrigins,
	}
}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			return
		}
	})

	// Dashboard endpoints
	r.mux.HandleFunc("GET /api/dashboard", r.dashboardHandler.GetDashboard)
	r.mux.HandleFunc("POST /api/dashboard/filters", r.dashboardHandler.UpdateFilters)
	r.mux.HandleFunc("POST /api/dashboard/reset", r.dashboardHandler.ResetFilters)
	r.mux.HandleFunc("GET /api/dashboard/export", r.dashboardHandler.ExportSummaryReport)

	// Live snapshot stream
	r.mux.HandleFunc("GET /api/dashboard/stream", r.streamHandler.StreamDashboard)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so every response carries its headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
