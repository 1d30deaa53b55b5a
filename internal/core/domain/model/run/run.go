package run

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrRunIsNotConstructed is returned when a zero-value or nil Run is used.
var ErrRunIsNotConstructed = errors.New("Run must be created via NewRun constructor")

// Assignment is the decision taken for one driver during a run.
// A nil OrderID means the driver declined.
type Assignment struct {
	DriverID kernel.UUID
	OrderID  *kernel.UUID
	Profit   float64
}

// IsDeclined reports whether the driver took no order.
func (a Assignment) IsDeclined() bool {
	return a.OrderID == nil
}

// Run is an immutable record of a matching run.
//
// Business rules:
//   - every driver appears at most once
//   - every order is served at most once
//   - the total profit equals the sum of the assignment profits
type Run struct {
	id           kernel.UUID
	createdAt    time.Time
	assignments  []Assignment
	totalProfit  float64
	ordersWaited int
	guard        guard.ConstructorGuard
}

// NewRun records a run. ordersWaited is the number of orders that were open when
// the run started, served or not.
func NewRun(id kernel.UUID, createdAt time.Time, assignments []Assignment, ordersWaited int) (*Run, error) {
	return build(id, createdAt, assignments, ordersWaited)
}

// RestoreRun rebuilds a run loaded from storage.
func RestoreRun(id kernel.UUID, createdAt time.Time, assignments []Assignment, ordersWaited int) (*Run, error) {
	return build(id, createdAt, assignments, ordersWaited)
}

func build(id kernel.UUID, createdAt time.Time, assignments []Assignment, ordersWaited int) (*Run, error) {
	r := &Run{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setID(id),
		r.setCreatedAt(createdAt),
		r.setAssignments(assignments),
		r.setOrdersWaited(ordersWaited),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate reports whether the run was built by a constructor.
func (r *Run) Validate() error {
	if r == nil {
		return ErrRunIsNotConstructed
	}
	return r.guard.Validate(ErrRunIsNotConstructed)
}

func (r *Run) ID() kernel.UUID {
	return r.id
}

func (r *Run) CreatedAt() time.Time {
	return r.createdAt
}

// Assignments returns a copy of the per-driver decisions in solver order.
func (r *Run) Assignments() []Assignment {
	out := make([]Assignment, len(r.assignments))
	copy(out, r.assignments)
	return out
}

func (r *Run) TotalProfit() float64 {
	return r.totalProfit
}

func (r *Run) OrdersWaited() int {
	return r.ordersWaited
}

// Served returns the number of orders handed to a driver.
func (r *Run) Served() int {
	served := 0
	for _, a := range r.assignments {
		if !a.IsDeclined() {
			served++
		}
	}
	return served
}

func (r *Run) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Run) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt.UTC()
	return nil
}

func (r *Run) setAssignments(assignments []Assignment) error {
	drivers := make(map[kernel.UUID]struct{}, len(assignments))
	orders := make(map[kernel.UUID]struct{}, len(assignments))
	total := 0.0

	for i, a := range assignments {
		if err := a.DriverID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("assignments[%d].driverId", i), err)
		}
		if _, dup := drivers[a.DriverID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("assignments[%d].driverId", i),
				fmt.Errorf("driver %s appears twice", a.DriverID))
		}
		drivers[a.DriverID] = struct{}{}

		if a.IsDeclined() {
			if a.Profit != 0 {
				return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("assignments[%d].profit", i),
					errors.New("a declined driver earns nothing"))
			}
			continue
		}
		if err := a.OrderID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("assignments[%d].orderId", i), err)
		}
		if _, dup := orders[*a.OrderID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("assignments[%d].orderId", i),
				fmt.Errorf("order %s served twice", a.OrderID))
		}
		orders[*a.OrderID] = struct{}{}

		if math.IsNaN(a.Profit) || math.IsInf(a.Profit, 0) {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("assignments[%d].profit", i),
				fmt.Errorf("%v is not finite", a.Profit))
		}
		total += a.Profit
	}

	r.assignments = make([]Assignment, len(assignments))
	for i, a := range assignments {
		r.assignments[i] = a
		if a.OrderID != nil {
			id := *a.OrderID
			r.assignments[i].OrderID = &id
		}
	}
	r.totalProfit = total
	return nil
}

func (r *Run) setOrdersWaited(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("ordersWaited", n, 0, math.MaxInt)
	}
	if n < r.Served() {
		return errs.NewValueIsInvalidErrorWithCause("ordersWaited",
			fmt.Errorf("%d orders waited but %d were served", n, r.Served()))
	}
	r.ordersWaited = n
	return nil
}
