package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	backofficeserver "github.com/Apurer/sales-backoffice/go"
	"github.com/Apurer/sales-backoffice/internal/app/wiring"
	backofficeworkflows "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/workflows"
	backofficeports "github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	platformobservability "github.com/Apurer/sales-backoffice/internal/platform/observability"
	platformpostgres "github.com/Apurer/sales-backoffice/internal/platform/postgres"
)

const serviceName = "sales-backoffice-api"

// Run boots the back-office HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithLogLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	services := wiring.Build(db, wiring.Options{
		Logger:           logger,
		Telemetry:        instruments,
		SnapshotCacheTTL: cfg.SnapshotCacheTTL,
	})

	sweeps, closeSweeps := selectSweeps(services, func() (client.Client, error) {
		return connectTemporalClient(cfg, instruments)
	}, logger)
	defer closeSweeps()

	handlers := backofficeserver.ApiHandleFunctions{
		SalesAPI:    backofficeserver.NewSalesAPI(services.Sales),
		TriageAPI:   backofficeserver.NewTriageAPI(services.Backoffice, sweeps),
		FollowUpAPI: backofficeserver.NewFollowUpAPI(services.FollowUps, services.Sales),
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName))
	router := backofficeserver.NewRouterWithGinEngine(engine, handlers)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("back-office API listening", slog.String("addr", server.Addr), slog.Bool("postgres", services.Postgres))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("back-office API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("back-office API shutdown failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("back-office API stopped")
	return nil
}

// selectSweeps picks the sweep orchestrator. Temporal is used only when sales live in Postgres:
// the worker cannot see this process's in-memory repositories.
func selectSweeps(services wiring.Services, dial func() (client.Client, error), logger *slog.Logger) (backofficeports.SweepOrchestrator, func()) {
	inline := backofficeworkflows.NewInlineSweeps(services.Backoffice)
	if !services.Postgres {
		logger.Warn("sales are held in memory, running triage sweeps inline")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running triage sweeps inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled")
	return backofficeworkflows.NewTemporalSweeps(temporalClient), temporalClient.Close
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
