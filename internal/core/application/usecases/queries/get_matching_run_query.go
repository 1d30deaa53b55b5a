package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetMatchingRunQueryIsNotConstructed = errors.New(
	"GetMatchingRunQuery must be created via NewGetMatchingRunQuery or NewGetLatestMatchingRunQuery constructors",
)

// GetMatchingRunQuery reads one recorded matching run, either by id or the most
// recent one.
type GetMatchingRunQuery struct {
	runID  kernel.UUID
	latest bool

	guard guard.ConstructorGuard
}

func NewGetMatchingRunQuery(runID kernel.UUID) (GetMatchingRunQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetMatchingRunQuery{}, err
	}
	return GetMatchingRunQuery{runID: runID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetLatestMatchingRunQuery() GetMatchingRunQuery {
	return GetMatchingRunQuery{latest: true, guard: guard.NewConstructorGuard()}
}

func (q GetMatchingRunQuery) Validate() error {
	return q.guard.Validate(ErrGetMatchingRunQueryIsNotConstructed)
}

// RunID returns the requested id and false for a latest-run query.
func (q GetMatchingRunQuery) RunID() (kernel.UUID, bool) {
	return q.runID, !q.latest
}

// GetMatchingRunQueryResponse is a run with its per-driver decisions in the
// order the drivers were offered to the solver.
type GetMatchingRunQueryResponse struct {
	ID           kernel.UUID
	CreatedAt    time.Time
	TotalProfit  float64
	OrdersWaited int
	Assignments  []MatchingRunAssignment
}

// Served returns the number of drivers that took an order.
func (r GetMatchingRunQueryResponse) Served() int {
	served := 0
	for _, a := range r.Assignments {
		if a.OrderID != nil {
			served++
		}
	}
	return served
}

// MatchingRunAssignment is the decision for one driver. OrderID is nil when the
// driver declined. DriverName is empty if the driver was removed since.
type MatchingRunAssignment struct {
	DriverID   kernel.UUID
	DriverName string
	OrderID    *kernel.UUID
	Profit     float64
}
