package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

const tracerName = "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/observability/service"

// Service decorates the back-office service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the back-office service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) ClassifySale(ctx context.Context, id string, asOf time.Time) (*ports.ClassifiedSale, error) {
	ctx, span := s.tracer.Start(ctx, "BackofficeService.ClassifySale", trace.WithAttributes(attribute.String("sale.id", id)))
	defer span.End()

	classified, err := s.inner.ClassifySale(ctx, id, asOf)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to classify sale", slog.String("sale.id", id))
	}
	r := classified.Result
	span.SetAttributes(
		attribute.String("triage.priority", string(r.Priority)),
		attribute.String("triage.bucket", string(r.Bucket)),
		attribute.Bool("triage.unclassifiable", r.Unclassifiable),
	)
	s.metrics.recordClassification(ctx, r)
	if r.Unclassifiable {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "sale is unclassifiable", slog.String("sale.id", id))
	}
	return classified, nil
}

func (s *Service) Queue(ctx context.Context, query ports.QueueQuery) (*ports.Queue, error) {
	ctx, span := s.tracer.Start(ctx, "BackofficeService.Queue")
	defer span.End()

	queue, err := s.inner.Queue(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build triage queue")
	}
	span.SetAttributes(
		attribute.Int("triage.queue.size", len(queue.Items)),
		attribute.String("triage.as_of", queue.AsOf.Format(time.RFC3339)),
	)
	s.metrics.recordQueueSize(ctx, len(queue.Items))
	return queue, nil
}

func (s *Service) Summary(ctx context.Context, query ports.QueueQuery) (*ports.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "BackofficeService.Summary")
	defer span.End()

	summary, err := s.inner.Summary(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to summarize triage")
	}
	span.SetAttributes(attribute.Int("triage.total_cases", summary.Metrics.TotalCases))
	return summary, nil
}

func (s *Service) Sweep(ctx context.Context, asOf time.Time) (*ports.SweepResult, error) {
	ctx, span := s.tracer.Start(ctx, "BackofficeService.Sweep")
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "triage sweep started", slog.Time("as_of", asOf))
	result, err := s.inner.Sweep(ctx, asOf)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "triage sweep failed")
	}
	span.SetAttributes(
		attribute.String("sweep.id", result.ID),
		attribute.Int("sweep.opened", len(result.Opened)),
	)
	s.metrics.recordSweep(ctx, len(result.Opened))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "triage sweep completed",
		slog.String("sweep.id", result.ID),
		slog.Time("as_of", result.AsOf),
		slog.Int("total_cases", result.Metrics.TotalCases),
		slog.Int("high_priority", result.Metrics.HighPriorityCount),
		slog.Int("opened", len(result.Opened)))
	return result, nil
}

func (s *Service) RecentSweeps(ctx context.Context, limit int) ([]*ports.SweepResult, error) {
	ctx, span := s.tracer.Start(ctx, "BackofficeService.RecentSweeps", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	list, err := s.inner.RecentSweeps(ctx, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list sweeps")
	}
	return list, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	classifications metric.Int64Counter
	queueSize       metric.Int64Histogram
	sweeps          metric.Int64Counter
	sweepOpened     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	classifications, _ := m.Int64Counter("backoffice.triage.classifications", metric.WithDescription("Single-sale classifications by priority and bucket"))
	queueSize, _ := m.Int64Histogram("backoffice.triage.queue_size", metric.WithDescription("Items returned per triage queue request"))
	sweeps, _ := m.Int64Counter("backoffice.sweeps.completed", metric.WithDescription("Number of completed triage sweeps"))
	opened, _ := m.Int64Counter("backoffice.sweeps.followups_opened", metric.WithDescription("Follow-up tasks opened by sweeps"))
	return serviceMetrics{classifications: classifications, queueSize: queueSize, sweeps: sweeps, sweepOpened: opened}
}

func (m serviceMetrics) recordClassification(ctx context.Context, r triage.Result) {
	if m.classifications != nil {
		m.classifications.Add(ctx, 1, metric.WithAttributes(
			attribute.String("triage.priority", string(r.Priority)),
			attribute.String("triage.bucket", string(r.Bucket)),
		))
	}
}

func (m serviceMetrics) recordQueueSize(ctx context.Context, size int) {
	if m.queueSize != nil {
		m.queueSize.Record(ctx, int64(size))
	}
}

func (m serviceMetrics) recordSweep(ctx context.Context, opened int) {
	if m.sweeps != nil {
		m.sweeps.Add(ctx, 1)
	}
	if m.sweepOpened != nil {
		m.sweepOpened.Add(ctx, int64(opened))
	}
}

var _ ports.Service = (*Service)(nil)
