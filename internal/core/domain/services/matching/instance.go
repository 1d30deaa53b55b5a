package matching

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidInstance is returned by Validate and Engine.Solve for malformed input.
// The wrapped *errs.ValueIsInvalidError names the offending field, e.g. "orders[2].revenue".
var ErrInvalidInstance = errors.New("invalid instance")

// Point is a position in the plane.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Driver is a vehicle available for one order. Its identity is its index in Instance.Drivers.
type Driver struct {
	Position Point `json:"position" yaml:"position"`
}

// Order is a one-time pickup/drop-off job. Orders are numbered from 1:
// Instance.Orders[k] is order k+1.
type Order struct {
	Origin      Point `json:"origin"      yaml:"origin"`
	Destination Point `json:"destination" yaml:"destination"`
	Revenue     int64 `json:"revenue"     yaml:"revenue"`
}

// Instance is one static assignment problem. It is read, never modified, by the engine.
type Instance struct {
	Drivers []Driver `json:"drivers" yaml:"drivers"`
	Orders  []Order  `json:"orders"  yaml:"orders"`
}

// NumDrivers returns the number of drivers.
func (in Instance) NumDrivers() int {
	return len(in.Drivers)
}

// NumOrders returns the number of orders.
func (in Instance) NumOrders() int {
	return len(in.Orders)
}

// Driver returns driver i (0-based).
func (in Instance) Driver(i int) Driver {
	return in.Drivers[i]
}

// Order returns the order with the given 1-based number.
func (in Instance) Order(number int) Order {
	return in.Orders[number-1]
}

// Validate checks the preconditions of Solve. All problems are reported at once.
//
// Rejected input:
//   - non-finite coordinates of any driver or order
//   - order revenue <= 0
//   - origin equal to destination, only when opts.RequireDistinctEndpoints is set
func (in Instance) Validate(opts Options) error {
	var problems []error

	for i, d := range in.Drivers {
		if !d.Position.finite() {
			problems = append(problems, invalidField(fmt.Sprintf("drivers[%d].position", i),
				fmt.Errorf("%v is not finite", d.Position)))
		}
	}

	for k, o := range in.Orders {
		if !o.Origin.finite() {
			problems = append(problems, invalidField(fmt.Sprintf("orders[%d].origin", k),
				fmt.Errorf("%v is not finite", o.Origin)))
		}
		if !o.Destination.finite() {
			problems = append(problems, invalidField(fmt.Sprintf("orders[%d].destination", k),
				fmt.Errorf("%v is not finite", o.Destination)))
		}
		if o.Revenue <= 0 {
			problems = append(problems, invalidField(fmt.Sprintf("orders[%d].revenue", k),
				fmt.Errorf("%d is not greater than 0", o.Revenue)))
		}
		if opts.RequireDistinctEndpoints && o.Origin == o.Destination {
			problems = append(problems, invalidField(fmt.Sprintf("orders[%d].destination", k),
				errors.New("equals origin")))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInstance, errors.Join(problems...))
}

func invalidField(field string, cause error) error {
	return errs.NewValueIsInvalidErrorWithCause(field, cause)
}
