package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/al-solutions/salesdash/internal/api/handlers"
	"github.com/al-solutions/salesdash/internal/api/routes"
	"github.com/al-solutions/salesdash/internal/dashboard"
	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	"github.com/al-solutions/salesdash/internal/infrastructure/observability"
	"github.com/al-solutions/salesdash/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.App.ServiceName, cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry export is optional; the dashboard serves without a collector.
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		otelShutdown, err := observability.Setup(ctx, cfg.App.ServiceName, cfg.App.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("OpenTelemetry setup failed, continuing without telemetry")
		} else {
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := otelShutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("OpenTelemetry shutdown failed")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// A failed load leaves an empty table behind; the server still comes up
	// and every cycle reports no data rather than crashing at boot.
	table, report, err := dataset.LoadCSV(cfg.Dataset.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Dataset.Path).Msg("Dataset load failed, serving empty dashboard")
	}
	log.Info().
		Str("path", report.Path).
		Int("total_rows", report.TotalRows).
		Int("retained", report.Retained).
		Int("dropped_bad_timestamp", report.DroppedBadTimestamp).
		Int("dropped_missing_field", report.DroppedMissingField).
		Int("dropped_malformed", report.DroppedMalformed).
		Int("coerced_revenue", report.CoercedRevenue).
		Int("coerced_purchase_flag", report.CoercedPurchaseFlag).
		Msg("Dataset loaded")

	catalog := dataset.BuildCatalog(table)
	targets := entities.TargetTable{
		Revenue:          cfg.Targets.Revenue,
		ConversionRate:   cfg.Targets.ConversionRate,
		DemoToPurchase:   cfg.Targets.DemoToPurchase,
		JobsPlaced:       cfg.Targets.JobsPlaced,
		AIAssistRequests: cfg.Targets.AIAssistRequests,
		PromoRequests:    cfg.Targets.PromoRequests,
	}

	controller := dashboard.NewController(table, catalog, targets, metrics)
	streamHandler := handlers.NewStreamHandler(metrics)
	controller.OnSnapshot(streamHandler.BroadcastSnapshot)

	snap := controller.Refresh(ctx)
	log.Info().Int("row_count", snap.RowCount).Msg("Initial dashboard cycle complete")

	dashboardHandler := handlers.NewDashboardHandler(controller)
	router := routes.NewRouter(dashboardHandler, streamHandler, metrics, cfg.Server.Origins())

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.App.Env).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	streamHandler.CloseAll()

	log.Info().Msg("Server stopped")
}
