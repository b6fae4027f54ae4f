package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	backofficeports "github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	triageactivities "github.com/Apurer/sales-backoffice/internal/durable/temporal/activities/triage"
)

// RunTriageSweepSequence executes the sweep activity under the standard retry policy.
func RunTriageSweepSequence(ctx workflow.Context, asOf time.Time) (*backofficeports.SweepResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("triage sweep sequence started", "asOf", asOf)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result backofficeports.SweepResult
	err := workflow.ExecuteActivity(ctx, triageactivities.RunSweepActivityName, triageactivities.RunSweepInput{AsOf: asOf}).Get(ctx, &result)
	if err != nil {
		logger.Error("triage sweep sequence failed", "asOf", asOf, "error", err)
		return nil, err
	}
	logger.Info("triage sweep sequence completed", "sweepId", result.ID, "opened", len(result.Opened))
	return &result, nil
}
