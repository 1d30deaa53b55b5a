package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
	)
)

// GetUncompletedOrdersQuery lists orders that are waiting for a driver or on their way.
//
// Example:
//
//	query := NewGetUncompletedOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s %s -> %s (%d)\n", o.ID, o.Origin, o.Destination, o.Revenue)
//	}
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetUncompletedOrdersQueryResponse is one open order. DriverID is nil while the
// order is Created.
type GetUncompletedOrdersQueryResponse struct {
	ID          kernel.UUID
	Origin      kernel.Location
	Destination kernel.Location
	Revenue     int
	Status      order.Status
	DriverID    *kernel.UUID
}
