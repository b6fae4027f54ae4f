package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	salesdomain "github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	salesports "github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

const tracerName = "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/observability/service"

// Service decorates the sales service with tracing, logging, and metrics.
type Service struct {
	inner   salesports.Service
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

// New wraps the core sales service.
func New(inner salesports.Service, opts ...Option) salesports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateSale(ctx context.Context, draft salesdomain.SaleDraft) (*salesports.SaleProjection, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.CreateSale",
		trace.WithAttributes(attribute.String("sale.product_type", string(draft.ProductType))))
	defer span.End()

	s.logInfo(ctx, "creating sale", slog.String("sale.id", draft.ID), slog.String("sale.product_type", string(draft.ProductType)))
	result, err := s.inner.CreateSale(ctx, draft)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create sale", slog.String("sale.id", draft.ID))
	}
	span.SetAttributes(attribute.String("sale.id", result.Entity.ID))
	s.metrics.recordCreated(ctx, result.Entity.ProductType)
	s.logInfo(ctx, "sale created", slog.String("sale.id", result.Entity.ID), slog.String("commercial_status", string(result.Entity.CommercialStatus)))
	return result, nil
}

func (s *Service) GetSale(ctx context.Context, id string) (*salesports.SaleProjection, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.GetSale", trace.WithAttributes(attribute.String("sale.id", id)))
	defer span.End()

	result, err := s.inner.GetSale(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load sale", slog.String("sale.id", id))
	}
	return result, nil
}

func (s *Service) ListSales(ctx context.Context, filter salesports.ListFilter) ([]*salesports.SaleProjection, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ListSales")
	defer span.End()

	result, err := s.inner.ListSales(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list sales")
	}
	span.SetAttributes(attribute.Int("sales.count", len(result)))
	return result, nil
}

func (s *Service) UpdateStatuses(ctx context.Context, id string, change salesdomain.StatusChange) (*salesports.SaleProjection, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.UpdateStatuses", trace.WithAttributes(attribute.String("sale.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating sale statuses", slog.String("sale.id", id))
	result, err := s.inner.UpdateStatuses(ctx, id, change)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update sale statuses", slog.String("sale.id", id))
	}
	s.metrics.recordStatusChange(ctx)
	s.logInfo(ctx, "sale statuses updated",
		slog.String("sale.id", id),
		slog.String("commercial_status", string(result.Entity.CommercialStatus)),
		slog.String("logistic_status", string(result.Entity.LogisticStatus)),
		slog.String("line_status", string(result.Entity.LineStatus)))
	return result, nil
}

func (s *Service) DeleteSale(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SalesService.DeleteSale", trace.WithAttributes(attribute.String("sale.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting sale", slog.String("sale.id", id))
	if err := s.inner.DeleteSale(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete sale", slog.String("sale.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "sale deleted", slog.String("sale.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	salesCreated  metric.Int64Counter
	salesDeleted  metric.Int64Counter
	statusChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("sales.service.sales_created", metric.WithDescription("Number of sales created"))
	deleted, _ := m.Int64Counter("sales.service.sales_deleted", metric.WithDescription("Number of sales deleted"))
	changes, _ := m.Int64Counter("sales.service.status_changes", metric.WithDescription("Number of status updates applied"))
	return serviceMetrics{salesCreated: created, salesDeleted: deleted, statusChanges: changes}
}

func (m serviceMetrics) recordCreated(ctx context.Context, product salesdomain.ProductType) {
	if m.salesCreated != nil {
		m.salesCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("sale.product_type", string(product))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.salesDeleted != nil {
		m.salesDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStatusChange(ctx context.Context) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1)
	}
}

var _ salesports.Service = (*Service)(nil)
