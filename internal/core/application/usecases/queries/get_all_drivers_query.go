// Package queries contains the read side of the dispatch service. Query handlers
// read straight from the database and never load aggregates.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllDriversQueryIsNotConstructed = errors.New(
	"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
)

// GetAllDriversQuery lists every registered driver with its position.
type GetAllDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllDriversQuery() GetAllDriversQuery {
	return GetAllDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

// GetAllDriversQueryResponse is one driver row. OrderID is nil for a free driver.
type GetAllDriversQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Speed    int
	Location kernel.Location
	OrderID  *kernel.UUID
}
