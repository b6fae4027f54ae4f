// Package wiring assembles the back-office services over either Postgres or in-memory adapters.
// The API, the Temporal worker and the operator CLI share it.
package wiring

import (
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"gorm.io/gorm"

	backofficememory "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/memory"
	backofficeobs "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/observability"
	backofficepostgres "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/persistence/postgres"
	backofficeapp "github.com/Apurer/sales-backoffice/internal/domains/backoffice/application"
	backofficeports "github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	followupsmemory "github.com/Apurer/sales-backoffice/internal/domains/followups/adapters/memory"
	followupsobs "github.com/Apurer/sales-backoffice/internal/domains/followups/adapters/observability"
	followupspostgres "github.com/Apurer/sales-backoffice/internal/domains/followups/adapters/persistence/postgres"
	followupsapp "github.com/Apurer/sales-backoffice/internal/domains/followups/application"
	followupsports "github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
	salesmemory "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/memory"
	salesobs "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/observability"
	salespostgres "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/Apurer/sales-backoffice/internal/domains/sales/application"
	salesports "github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

// Telemetry supplies named tracers and meters. *observability.Instruments satisfies it.
type Telemetry interface {
	Tracer(name string) trace.Tracer
	Meter(name string) metric.Meter
}

// Options tune Build.
type Options struct {
	Logger           *slog.Logger
	Telemetry        Telemetry
	SnapshotCacheTTL time.Duration
}

// Services are the decorated application services of every bounded context.
type Services struct {
	Sales      salesports.Service
	FollowUps  followupsports.Service
	Backoffice backofficeports.Service
	// Postgres reports whether the services persist to the database.
	Postgres bool
}

// Build wires repositories, services and observability decorators. A nil db selects the
// in-memory adapters.
func Build(db *gorm.DB, opts Options) Services {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = noopTelemetry{}
	}

	var (
		saleRepo     salesports.Repository
		followUpRepo followupsports.Repository
		sweepRepo    backofficeports.SweepRepository
	)
	if db != nil {
		saleRepo = salespostgres.NewRepository(db)
		followUpRepo = followupspostgres.NewRepository(db)
		sweepRepo = backofficepostgres.NewSweepRepository(db)
	} else {
		saleRepo = salesmemory.NewRepository()
		followUpRepo = followupsmemory.NewRepository()
		sweepRepo = backofficememory.NewSweepRepository(0)
	}

	sales := salesobs.New(
		salesapp.NewService(saleRepo, salesapp.WithSnapshotCache(opts.SnapshotCacheTTL)),
		salesobs.WithLogger(logger),
		salesobs.WithTracer(telemetry.Tracer("internal.sales.application")),
		salesobs.WithMeter(telemetry.Meter("internal.sales.application")),
	)
	followUps := followupsobs.New(
		followupsapp.NewService(followUpRepo),
		followupsobs.WithLogger(logger),
		followupsobs.WithTracer(telemetry.Tracer("internal.followups.application")),
		followupsobs.WithMeter(telemetry.Meter("internal.followups.application")),
	)
	backoffice := backofficeobs.New(
		backofficeapp.NewService(sales, followUps, sweepRepo),
		backofficeobs.WithLogger(logger),
		backofficeobs.WithTracer(telemetry.Tracer("internal.backoffice.application")),
		backofficeobs.WithMeter(telemetry.Meter("internal.backoffice.application")),
	)
	return Services{
		Sales:      sales,
		FollowUps:  followUps,
		Backoffice: backoffice,
		Postgres:   db != nil,
	}
}

type noopTelemetry struct{}

func (noopTelemetry) Tracer(name string) trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(name)
}

func (noopTelemetry) Meter(name string) metric.Meter {
	return metricnoop.NewMeterProvider().Meter(name)
}
