package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/core/domain/services/matching"
)

// ErrDriverIsNotFree is returned when a busy driver is offered to the dispatcher.
var ErrDriverIsNotFree = errors.New("driver is not free")

// Plan is the outcome of one Dispatch call.
type Plan struct {
	// Run records every driver decision and the total profit.
	Run *run.Run
	// Instance is the problem that was solved, drivers and orders in input order.
	Instance matching.Instance
	// Result is the raw solver output, including the optimality certificate.
	Result matching.Result
	// Drivers and Orders are the aggregates modified by the plan.
	Drivers []*driver.Driver
	Orders  []*order.Order
}

// BatchDispatcher assigns a batch of free drivers to waiting orders so that the
// total profit is maximal.
//
// Example:
//
//	engine := matching.NewEngine(matching.EuclideanCost{}, matching.DefaultOptions())
//	dispatcher := services.NewBatchDispatcher(engine)
//	plan, err := dispatcher.Dispatch(kernel.NewUUID(), time.Now(), freeDrivers, createdOrders)
type BatchDispatcher struct {
	engine *matching.Engine
}

// NewBatchDispatcher returns a dispatcher backed by engine.
func NewBatchDispatcher(engine *matching.Engine) *BatchDispatcher {
	return &BatchDispatcher{engine: engine}
}

// Dispatch solves the assignment of drivers to orders and applies it:
// every matched driver takes its order and every matched order is assigned.
//
// Parameters:
//   - runID, now: identity and timestamp of the resulting run
//   - drivers: free drivers; their slice order is the solver's driver index
//   - orders: orders accepting an assignment; slice position k is order number k+1
//
// Returns:
//   - Plan: the run record and the solver result
//   - error: invalid aggregates, a busy driver, or a solver failure. On error the
//     aggregates may be partially updated and must be discarded with the transaction.
func (d *BatchDispatcher) Dispatch(
	runID kernel.UUID,
	now time.Time,
	drivers []*driver.Driver,
	orders []*order.Order,
) (Plan, error) {
	instance, err := buildInstance(drivers, orders)
	if err != nil {
		return Plan{}, err
	}

	result, err := d.engine.Solve(instance)
	if err != nil {
		return Plan{}, err
	}

	assignments := make([]run.Assignment, len(drivers))
	for i, dr := range drivers {
		assignments[i] = run.Assignment{DriverID: dr.ID()}
	}
	for _, p := range result.Pairs() {
		dr, o := drivers[p.Driver], orders[p.Order-1]
		if err := dr.TakeOrder(o); err != nil {
			return Plan{}, fmt.Errorf("driver %s: %w", dr.ID(), err)
		}
		if err := o.Assign(dr.ID()); err != nil {
			return Plan{}, fmt.Errorf("order %s: %w", o.ID(), err)
		}
		orderID := o.ID()
		assignments[p.Driver].OrderID = &orderID
		assignments[p.Driver].Profit = p.Profit
	}

	record, err := run.NewRun(runID, now, assignments, len(orders))
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Run:      record,
		Instance: instance,
		Result:   result,
		Drivers:  drivers,
		Orders:   orders,
	}, nil
}

func buildInstance(drivers []*driver.Driver, orders []*order.Order) (matching.Instance, error) {
	instance := matching.Instance{
		Drivers: make([]matching.Driver, len(drivers)),
		Orders:  make([]matching.Order, len(orders)),
	}

	for i, dr := range drivers {
		if err := dr.Validate(); err != nil {
			return matching.Instance{}, err
		}
		if !dr.IsFree() {
			return matching.Instance{}, fmt.Errorf("%w: %s", ErrDriverIsNotFree, dr.ID())
		}
		instance.Drivers[i] = matching.Driver{Position: point(dr.Location())}
	}

	for k, o := range orders {
		if err := o.Validate(); err != nil {
			return matching.Instance{}, err
		}
		if err := o.ValidateAssign(); err != nil {
			return matching.Instance{}, fmt.Errorf("order %s: %w", o.ID(), err)
		}
		instance.Orders[k] = matching.Order{
			Origin:      point(o.Origin()),
			Destination: point(o.Destination()),
			Revenue:     int64(o.Revenue()),
		}
	}

	return instance, nil
}

func point(l kernel.Location) matching.Point {
	return matching.Point{X: float64(l.X()), Y: float64(l.Y())}
}
