package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRevenueIsInvalid  = errors.New("revenue must not be negative")
	ErrRouteIsIncomplete = errors.New("origin and destination must be given together")
)

// Route is an explicit pickup and drop-off pair.
type Route struct {
	Origin      kernel.Location
	Destination kernel.Location
}

// CreateOrderCommand registers a new order. A nil route draws a random one, and a
// zero revenue draws a random revenue.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), nil, 0) // fully random order
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	route   *Route
	revenue int

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(orderID kernel.UUID, route *Route, revenue int) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRoute(route),
		command.setRevenue(revenue),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Route returns the requested route and false when it is to be drawn at random.
func (c CreateOrderCommand) Route() (Route, bool) {
	if c.route == nil {
		return Route{}, false
	}
	return *c.route, true
}

// Revenue returns the requested revenue, 0 meaning random.
func (c CreateOrderCommand) Revenue() int {
	return c.revenue
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRoute(route *Route) error {
	if route == nil {
		return nil
	}
	if err := errors.Join(route.Origin.Validate(), route.Destination.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("route", errors.Join(ErrRouteIsIncomplete, err))
	}
	same, err := route.Origin.IsEqual(route.Destination)
	if err != nil {
		return err
	}
	if same {
		return errs.NewValueIsInvalidErrorWithCause("destination", order.ErrSameOriginAndDestination)
	}
	r := *route
	c.route = &r
	return nil
}

func (c *CreateOrderCommand) setRevenue(revenue int) error {
	if revenue < 0 {
		return ErrRevenueIsInvalid
	}
	c.revenue = revenue
	return nil
}
