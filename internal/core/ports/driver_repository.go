// Package ports defines the contracts between the dispatch core and its infrastructure:
// repositories for the aggregates and the unit of work that scopes them to a transaction.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository persists driver aggregates.
type DriverRepository interface {
	// Add stores a new driver.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update stores the new state of an existing driver.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get returns the driver with the given id or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllFree returns drivers without an order in progress, oldest first.
	// The order is stable between calls and becomes the solver's driver index.
	GetAllFree(ctx context.Context) ([]*driver.Driver, error)

	// GetAllBusy returns drivers serving an order.
	GetAllBusy(ctx context.Context) ([]*driver.Driver, error)
}
