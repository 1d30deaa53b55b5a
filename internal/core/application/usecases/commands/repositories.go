// Package commands contains the write side of the dispatch service.
// Every handler validates its command, opens a unit of work, changes aggregates
// through the repositories and commits.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RunRepoFactory interface {
		RunRepository() ports.RunRepository
	}

	// DriverUoW is used by commands that only touch drivers.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans drivers, orders and runs.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   drivers, err := uow.DriverRepository().GetAllFree(ctx)
	//   orders, err := uow.OrderRepository().GetAllInCreatedStatus(ctx, 0)
	//   // ... dispatch and persist
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		OrderRepoFactory
		RunRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// LocationSource draws random positions for drivers registered without one.
type LocationSource interface {
	Location() (kernel.Location, error)
}

// RouteSource draws random routes and revenues for orders created without them.
type RouteSource interface {
	Route() (kernel.Location, kernel.Location, error)
	Revenue() int
}
