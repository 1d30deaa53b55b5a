package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the new state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with the given id or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInCreatedStatus returns the orders waiting for a driver, oldest first.
	// At most limit orders are returned when limit is positive.
	GetAllInCreatedStatus(ctx context.Context, limit int) ([]*order.Order, error)

	// GetAllInAssignedStatus returns the orders being served.
	GetAllInAssignedStatus(ctx context.Context) ([]*order.Order, error)
}
