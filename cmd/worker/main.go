package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/sales-backoffice/internal/app/api"
	"github.com/Apurer/sales-backoffice/internal/app/wiring"
	triageactivities "github.com/Apurer/sales-backoffice/internal/durable/temporal/activities/triage"
	triageworkflows "github.com/Apurer/sales-backoffice/internal/durable/temporal/workflows/triage"
	platformobservability "github.com/Apurer/sales-backoffice/internal/platform/observability"
	platformpostgres "github.com/Apurer/sales-backoffice/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "sales-backoffice-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithLogLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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
	if db == nil {
		logger.Warn("worker sweeps run against in-memory repositories, results are not shared with the API")
	}
	services := wiring.Build(db, wiring.Options{
		Logger:    logger,
		Telemetry: instruments,
		// Sweeps must see the latest snapshot.
		SnapshotCacheTTL: 0,
	})
	sweepActivities := triageactivities.NewActivities(services.Backoffice)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, triageworkflows.SweepTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(triageworkflows.SweepWorkflow, workflow.RegisterOptions{Name: triageworkflows.SweepWorkflowName})
	w.RegisterActivityWithOptions(sweepActivities.RunSweep, activity.RegisterOptions{Name: triageactivities.RunSweepActivityName})

	logger.Info("worker listening", slog.String("taskQueue", triageworkflows.SweepTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
