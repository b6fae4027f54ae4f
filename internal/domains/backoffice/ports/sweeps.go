package ports

import (
	"context"
	"time"
)

// SweepOrchestrator runs a sweep, durably when a workflow engine is available.
type SweepOrchestrator interface {
	RunSweep(ctx context.Context, asOf time.Time) (*SweepResult, error)
}

// SweepRepository keeps the audit trail of sweeps.
type SweepRepository interface {
	Record(ctx context.Context, result *SweepResult) error
	// Recent returns at most limit sweeps, newest first.
	Recent(ctx context.Context, limit int) ([]*SweepResult, error)
	// Prune deletes sweeps recorded before cutoff and reports how many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
