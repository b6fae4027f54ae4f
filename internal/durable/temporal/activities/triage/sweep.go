package triage

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/activity"

	backofficeports "github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
)

// RunSweepActivityName classifies the snapshot and opens follow-ups for HIGH sales.
const RunSweepActivityName = "triage.activities.RunSweep"

// RunSweepInput pins the as-of instant chosen by the workflow.
type RunSweepInput struct {
	AsOf time.Time
}

// Activities groups activities that operate on the back-office triage context.
type Activities struct {
	service backofficeports.Service
}

func NewActivities(service backofficeports.Service) *Activities {
	return &Activities{service: service}
}

// RunSweep is safe to retry: follow-ups already open are reused rather than duplicated.
func (a *Activities) RunSweep(ctx context.Context, input RunSweepInput) (*backofficeports.SweepResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("sweep activity not initialized")
		return nil, errors.New("sweep activity not initialized")
	}
	logger.Info("RunSweep activity started", "asOf", input.AsOf)
	result, err := a.service.Sweep(ctx, input.AsOf)
	if err != nil {
		logger.Error("RunSweep activity failed", "asOf", input.AsOf, "error", err)
		return nil, err
	}
	logger.Info("RunSweep activity completed", "sweepId", result.ID, "opened", len(result.Opened))
	return result, nil
}
