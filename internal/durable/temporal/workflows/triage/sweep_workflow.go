package triage

import (
	"time"

	"go.temporal.io/sdk/workflow"

	backofficeports "github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	"github.com/Apurer/sales-backoffice/internal/durable/temporal/sequences"
)

const (
	// SweepWorkflowName is the public identifier for registering the workflow.
	SweepWorkflowName = "triage.workflows.Sweep"
	// SweepTaskQueue is the queue consumed by the worker processing triage sweeps.
	SweepTaskQueue = "TRIAGE_SWEEP"
)

// SweepWorkflowInput carries the optional as-of instant of the sweep.
type SweepWorkflowInput struct {
	AsOf    time.Time
	TraceID string
}

// SweepWorkflow pins the as-of instant once, so retries of the activity classify against the
// same clock.
func SweepWorkflow(ctx workflow.Context, input SweepWorkflowInput) (*backofficeports.SweepResult, error) {
	logger := workflow.GetLogger(ctx)
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = workflow.Now(ctx).UTC()
	}
	logger.Info("SweepWorkflow started", withTraceID(input.TraceID, "asOf", asOf)...)
	result, err := sequences.RunTriageSweepSequence(ctx, asOf)
	if err != nil {
		logger.Error("SweepWorkflow failed", withTraceID(input.TraceID, "asOf", asOf, "error", err)...)
		return nil, err
	}
	logger.Info("SweepWorkflow completed", withTraceID(input.TraceID, "sweepId", result.ID, "opened", len(result.Opened))...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
