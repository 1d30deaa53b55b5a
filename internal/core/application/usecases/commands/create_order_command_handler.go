package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new order in the Created status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	routes     RouteSource
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, routes RouteSource) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		routes:     routes,
	}
}

// Handle creates the order, filling in a random route or revenue when the
// command leaves them out.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	route, ok := cmd.Route()
	if !ok {
		origin, destination, err := h.routes.Route()
		if err != nil {
			return err
		}
		route = Route{Origin: origin, Destination: destination}
	}

	revenue := cmd.Revenue()
	if revenue == 0 {
		revenue = h.routes.Revenue()
	}

	o, err := order.NewOrder(cmd.OrderID(), route.Origin, route.Destination, revenue)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
