package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned for an empty driver name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrSpeedIsRequired is returned for a speed that is not positive.
	ErrSpeedIsRequired = errs.NewValueIsRequiredError("speed")
	// ErrDriverIsNotConstructed is returned when a zero-value or nil Driver is used.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverIsBusy is returned when a driver that already serves an order is given another one.
	ErrDriverIsBusy = errors.New("driver already serves an order")
	// ErrOrderIsNotServed is returned when an operation names an order the driver does not serve.
	ErrOrderIsNotServed = errors.New("order is not served by this driver")
)

// Driver is the aggregate root of a vehicle that can serve one order at a time.
//
// Business rules:
//   - id must be a valid UUID, name non-empty, speed positive
//   - a free driver has no current order; a busy driver has exactly one
//   - the pickup flag is only meaningful while an order is being served
//
// Example:
//
//	loc, _ := kernel.NewLocation(2.5, 2.5)
//	d, err := driver.NewDriver(kernel.NewUUID(), "Alice", 2, loc)
//	if err != nil {
//	    // invalid input
//	}
//	_ = d.TakeOrder(o)
type Driver struct {
	id       kernel.UUID
	name     string
	speed    int
	location kernel.Location
	orderID  *kernel.UUID
	pickedUp bool
	guard    guard.ConstructorGuard
}

// NewDriver creates a free driver.
//
// Parameters:
//   - id: identifier of the driver
//   - name: display name, non-empty
//   - speed: distance covered per movement tick, positive
//   - location: starting position
//
// Returns:
//   - *Driver: the new driver
//   - error: every violated rule joined together
func NewDriver(id kernel.UUID, name string, speed int, location kernel.Location) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setSpeed(speed),
		d.setLocation(location),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver rebuilds a driver loaded from storage, including the order in
// progress and whether it has already been picked up.
func RestoreDriver(
	id kernel.UUID,
	name string,
	speed int,
	location kernel.Location,
	orderID *kernel.UUID,
	pickedUp bool,
) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setSpeed(speed),
		d.setLocation(location),
		d.setCurrentOrder(orderID, pickedUp),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// IsEqual compares drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate reports whether the driver was built by a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Speed() int {
	return d.speed
}

func (d *Driver) Location() kernel.Location {
	return d.location
}

// OrderID returns the order in progress, or nil for a free driver.
func (d *Driver) OrderID() *kernel.UUID {
	if d.orderID == nil {
		return nil
	}
	id := *d.orderID
	return &id
}

// HasPickedUp reports whether the current order has been collected at its origin.
func (d *Driver) HasPickedUp() bool {
	return d.pickedUp
}

// IsFree reports whether the driver can be matched to a new order.
func (d *Driver) IsFree() bool {
	return d.orderID == nil
}

// TakeOrder starts serving o. The driver must be free and o must accept an assignment.
// The order itself is not modified; callers assign it in the same unit of work.
func (d *Driver) TakeOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.ValidateAssign(); err != nil {
		return err
	}
	if !d.IsFree() {
		return ErrDriverIsBusy
	}

	id := o.ID()
	d.orderID = &id
	d.pickedUp = false
	return nil
}

// Move travels at most Speed units in a straight line toward target.
func (d *Driver) Move(target kernel.Location) error {
	if err := target.Validate(); err != nil {
		return err
	}

	next, err := d.location.MoveToward(target, float64(d.speed))
	if err != nil {
		return err
	}
	return d.setLocation(next)
}

// Advance performs one movement tick for the order in progress: toward the origin
// until pickup, then toward the destination. It reports whether the driver has
// reached the destination with the order on board.
func (d *Driver) Advance(o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if d.orderID == nil || !d.orderID.IsEqual(o.ID()) {
		return false, ErrOrderIsNotServed
	}

	target := o.Origin()
	if d.pickedUp {
		target = o.Destination()
	}

	if err := d.Move(target); err != nil {
		return false, err
	}

	arrived, err := d.location.IsEqual(target)
	if err != nil {
		return false, err
	}
	if !arrived {
		return false, nil
	}
	if !d.pickedUp {
		d.pickedUp = true
		return false, nil
	}
	return true, nil
}

// CompleteOrder releases the order in progress and frees the driver.
func (d *Driver) CompleteOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if d.orderID == nil || !d.orderID.IsEqual(orderID) {
		return ErrOrderIsNotServed
	}

	d.orderID = nil
	d.pickedUp = false
	return nil
}

// CalculateTimeToLocation returns the number of movement ticks needed to reach target,
// as a fraction.
func (d *Driver) CalculateTimeToLocation(target kernel.Location) (float64, error) {
	distance, err := d.location.Distance(target)
	if err != nil {
		return 0, err
	}
	return distance / float64(d.speed), nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setSpeed(speed int) error {
	if speed <= 0 {
		return ErrSpeedIsRequired
	}
	d.speed = speed
	return nil
}

func (d *Driver) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

func (d *Driver) setCurrentOrder(orderID *kernel.UUID, pickedUp bool) error {
	if orderID == nil {
		if pickedUp {
			return errs.NewValueIsInvalidErrorWithCause("pickedUp", ErrOrderIsNotServed)
		}
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	id := *orderID
	d.orderID = &id
	d.pickedUp = pickedUp
	return nil
}
