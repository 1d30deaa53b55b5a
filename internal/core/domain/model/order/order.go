package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when a zero-value or nil Order is used.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrSameOriginAndDestination is the cause reported for a trip that goes nowhere.
	ErrSameOriginAndDestination = errors.New("destination equals origin")
)

// Order is the aggregate root of a one-time delivery job.
//
// Business rules:
//   - id must be a valid UUID
//   - origin and destination must be valid and distinct locations
//   - revenue must be positive
//   - a driver is attached exactly when the status is Assigned or Completed
//
// Example:
//
//	origin, _ := kernel.NewLocation(0.5, 0.5)
//	destination, _ := kernel.NewLocation(3.5, 4.5)
//	o, err := order.NewOrder(kernel.NewUUID(), origin, destination, 17)
type Order struct {
	id          kernel.UUID
	driverID    *kernel.UUID
	origin      kernel.Location
	destination kernel.Location
	revenue     int
	status      Status
	guard       guard.ConstructorGuard
}

// NewOrder creates an order in the Created status.
//
// Parameters:
//   - id: identifier of the order
//   - origin: pickup location
//   - destination: drop-off location, different from origin
//   - revenue: amount paid for serving the order, greater than 0
//
// Returns:
//   - *Order: the new order
//   - error: every violated rule joined together
func NewOrder(id kernel.UUID, origin, destination kernel.Location, revenue int) (*Order, error) {
	o := &Order{
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRoute(origin, destination),
		o.setRevenue(revenue),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. Unlike NewOrder it accepts
// any valid status, and the driver must be consistent with that status.
func RestoreOrder(
	id kernel.UUID,
	origin, destination kernel.Location,
	revenue int,
	status Status,
	driverID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRoute(origin, destination),
		o.setRevenue(revenue),
		o.setStatus(status, driverID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Origin() kernel.Location {
	return o.origin
}

func (o *Order) Destination() kernel.Location {
	return o.destination
}

func (o *Order) Revenue() int {
	return o.revenue
}

func (o *Order) Status() Status {
	return o.status
}

// Driver returns the id of the serving driver, or nil while the order is Created.
func (o *Order) Driver() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// TripLength returns the distance between origin and destination.
func (o *Order) TripLength() float64 {
	d, _ := o.origin.Distance(o.destination)
	return d
}

// ValidateAssign reports whether the order can be handed to a driver now.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign hands the order to a driver. Reassigning an Assigned order is allowed.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	return nil
}

// Complete marks an Assigned order as delivered.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRoute(origin, destination kernel.Location) error {
	if err := errors.Join(origin.Validate(), destination.Validate()); err != nil {
		return err
	}

	same, err := origin.IsEqual(destination)
	if err != nil {
		return err
	}
	if same {
		return errs.NewValueIsInvalidErrorWithCause("destination", ErrSameOriginAndDestination)
	}

	o.origin = origin
	o.destination = destination
	return nil
}

func (o *Order) setRevenue(revenue int) error {
	if revenue <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("revenue", fmt.Errorf("%d is not greater than 0", revenue))
	}
	o.revenue = revenue
	return nil
}

func (o *Order) setStatus(status Status, driverID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
		id := *driverID
		o.driverID = &id
	}

	o.status = status
	return nil
}
