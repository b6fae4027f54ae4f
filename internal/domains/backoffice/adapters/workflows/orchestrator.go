package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	triageworkflows "github.com/Apurer/sales-backoffice/internal/durable/temporal/workflows/triage"
)

var (
	_ ports.SweepOrchestrator = (*TemporalSweeps)(nil)
	_ ports.SweepOrchestrator = (*InlineSweeps)(nil)
)

// TemporalSweeps runs triage sweeps as Temporal workflows.
type TemporalSweeps struct {
	client    client.Client
	taskQueue string
}

func NewTemporalSweeps(c client.Client) *TemporalSweeps {
	return &TemporalSweeps{client: c, taskQueue: triageworkflows.SweepTaskQueue}
}

// RunSweep starts the sweep workflow and waits for its result.
func (o *TemporalSweeps) RunSweep(ctx context.Context, asOf time.Time) (*ports.SweepResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal sweeps not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildSweepWorkflowID(asOf, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, triageworkflows.SweepWorkflow,
		triageworkflows.SweepWorkflowInput{AsOf: asOf, TraceID: traceComponent})
	if err != nil {
		return nil, err
	}
	var result ports.SweepResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InlineSweeps runs the sweep in-process, for development without Temporal.
type InlineSweeps struct {
	service ports.Service
}

func NewInlineSweeps(service ports.Service) *InlineSweeps {
	return &InlineSweeps{service: service}
}

func (o *InlineSweeps) RunSweep(ctx context.Context, asOf time.Time) (*ports.SweepResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline sweeps not configured")
	}
	return o.service.Sweep(ctx, asOf)
}

func buildSweepWorkflowID(asOf time.Time, traceComponent string) string {
	if asOf.IsZero() {
		return fmt.Sprintf("triage-sweep-now-%s", traceComponent)
	}
	return fmt.Sprintf("triage-sweep-%d-%s", asOf.UTC().Unix(), traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
