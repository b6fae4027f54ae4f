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

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
)

const tracerName = "github.com/Apurer/sales-backoffice/internal/domains/followups/adapters/observability/service"

// Service decorates the follow-up service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	opened   metric.Int64Counter
	resolved metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.opened, _ = m.Int64Counter("followups.service.opened", metric.WithDescription("Number of follow-up tasks opened"))
		s.resolved, _ = m.Int64Counter("followups.service.resolved", metric.WithDescription("Number of follow-up tasks resolved"))
	}
}

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
	return s
}

func (s *Service) Open(ctx context.Context, saleID, reason string) (*domain.Task, bool, error) {
	ctx, span := s.start(ctx, "FollowUpService.Open", saleID)
	defer span.End()

	task, opened, err := s.inner.Open(ctx, saleID, reason)
	if err != nil {
		return nil, false, s.handleError(ctx, span, err, "failed to open follow-up", slog.String("sale.id", saleID))
	}
	span.SetAttributes(attribute.Bool("followup.opened", opened))
	if opened {
		if s.opened != nil {
			s.opened.Add(ctx, 1)
		}
		s.logInfo(ctx, "follow-up opened", slog.String("sale.id", saleID), slog.String("followup.id", task.ID), slog.String("reason", task.Reason))
	}
	return task, opened, nil
}

func (s *Service) Assign(ctx context.Context, saleID, assignee string) (*domain.Task, error) {
	ctx, span := s.start(ctx, "FollowUpService.Assign", saleID)
	defer span.End()

	task, err := s.inner.Assign(ctx, saleID, assignee)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to assign follow-up", slog.String("sale.id", saleID))
	}
	s.logInfo(ctx, "follow-up assigned", slog.String("sale.id", saleID), slog.String("assignee", task.Assignee))
	return task, nil
}

func (s *Service) AddNote(ctx context.Context, saleID, author, body string) (*domain.Task, error) {
	ctx, span := s.start(ctx, "FollowUpService.AddNote", saleID)
	defer span.End()

	task, err := s.inner.AddNote(ctx, saleID, author, body)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add follow-up note", slog.String("sale.id", saleID))
	}
	span.SetAttributes(attribute.Int("followup.notes", len(task.Notes)))
	return task, nil
}

func (s *Service) Resolve(ctx context.Context, saleID string) (*domain.Task, error) {
	ctx, span := s.start(ctx, "FollowUpService.Resolve", saleID)
	defer span.End()

	task, err := s.inner.Resolve(ctx, saleID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve follow-up", slog.String("sale.id", saleID))
	}
	if s.resolved != nil {
		s.resolved.Add(ctx, 1)
	}
	s.logInfo(ctx, "follow-up resolved", slog.String("sale.id", saleID), slog.String("followup.id", task.ID))
	return task, nil
}

func (s *Service) GetBySale(ctx context.Context, saleID string) (*domain.Task, error) {
	ctx, span := s.start(ctx, "FollowUpService.GetBySale", saleID)
	defer span.End()

	task, err := s.inner.GetBySale(ctx, saleID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load follow-up", slog.String("sale.id", saleID))
	}
	return task, nil
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "FollowUpService.List")
	defer span.End()

	tasks, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list follow-ups")
	}
	span.SetAttributes(attribute.Int("followups.count", len(tasks)))
	return tasks, nil
}

func (s *Service) start(ctx context.Context, name, saleID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("sale.id", saleID)))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	}
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
