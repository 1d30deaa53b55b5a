package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
)

// RunRepository persists matching runs. Runs are written once and never updated.
type RunRepository interface {
	// Add stores a run together with its assignments.
	Add(ctx context.Context, aggregate *run.Run) error

	// Get returns the run with the given id or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*run.Run, error)

	// GetLatest returns the most recent run or an *errs.ObjectNotFoundError when
	// no run was recorded yet.
	GetLatest(ctx context.Context) (*run.Run, error)
}
