package http

import (
	"context"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type CreateDriverHandler interface {
	Handle(ctx context.Context, cmd commands.CreateDriverCommand) error
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type RunMatchingHandler interface {
	Handle(ctx context.Context, cmd commands.RunMatchingCommand) error
}

type GetAllDriversHandler interface {
	Handle(ctx context.Context, query queries.GetAllDriversQuery) ([]queries.GetAllDriversQueryResponse, error)
}

type GetUncompletedOrdersHandler interface {
	Handle(
		ctx context.Context,
		query queries.GetUncompletedOrdersQuery,
	) ([]queries.GetUncompletedOrdersQueryResponse, error)
}

type GetMatchingRunHandler interface {
	Handle(ctx context.Context, query queries.GetMatchingRunQuery) (queries.GetMatchingRunQueryResponse, error)
}

// Handlers groups the use cases the API is served by.
type Handlers struct {
	CreateDriver         CreateDriverHandler
	CreateOrder          CreateOrderHandler
	RunMatching          RunMatchingHandler
	GetAllDrivers        GetAllDriversHandler
	GetUncompletedOrders GetUncompletedOrdersHandler
	GetMatchingRun       GetMatchingRunHandler
}

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	drivers, err := s.handlers.GetAllDrivers.Handle(ctx.Request().Context(), queries.NewGetAllDriversQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve drivers")
	}

	response := make([]servers.Driver, len(drivers))
	for i, d := range drivers {
		response[i] = servers.Driver{
			Id:       d.ID.Bytes(),
			Name:     d.Name,
			Speed:    d.Speed,
			Location: toLocation(d.Location),
			OrderId:  toOptionalID(d.OrderID),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers. The driver is placed on a random
// cell centre unless a location is given.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.NewDriver
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var location *kernel.Location
	if body.Location != nil {
		loc, err := fromLocation(*body.Location)
		if err != nil {
			return badRequest(ctx, "Invalid location: "+err.Error())
		}
		location = &loc
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, body.Name, body.Speed, location)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	if err := s.handlers.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create driver")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: driverID.Bytes()})
}

// GetOrders handles GET /api/v1/orders/active.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.handlers.GetUncompletedOrders.Handle(
		ctx.Request().Context(),
		queries.NewGetUncompletedOrdersQuery(),
	)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = servers.Order{
			Id:          o.ID.Bytes(),
			Origin:      toLocation(o.Origin),
			Destination: toLocation(o.Destination),
			Revenue:     o.Revenue,
			Status:      servers.OrderStatus(o.Status.String()),
			DriverId:    toOptionalID(o.DriverID),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. Missing endpoints and revenue are
// drawn at random, the same way generated instances are.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var route *commands.Route
	switch {
	case body.Origin != nil && body.Destination != nil:
		origin, err := fromLocation(*body.Origin)
		if err != nil {
			return badRequest(ctx, "Invalid origin: "+err.Error())
		}
		destination, err := fromLocation(*body.Destination)
		if err != nil {
			return badRequest(ctx, "Invalid destination: "+err.Error())
		}
		route = &commands.Route{Origin: origin, Destination: destination}
	case body.Origin != nil || body.Destination != nil:
		return badRequest(ctx, "Invalid order data: "+commands.ErrRouteIsIncomplete.Error())
	}

	revenue := 0
	if body.Revenue != nil {
		revenue = *body.Revenue
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, route, revenue)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: orderID.Bytes()})
}

// CreateRun handles POST /api/v1/runs: one matching run now, answered with the
// recorded result.
func (s *Server) CreateRun(ctx echo.Context) error {
	var body servers.NewRun
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	maxOrders := 0
	if body.MaxOrders != nil {
		maxOrders = *body.MaxOrders
	}

	runID := kernel.NewUUID()
	cmd, err := commands.NewRunMatchingCommand(runID, maxOrders)
	if err != nil {
		return badRequest(ctx, "Invalid run data: "+err.Error())
	}

	reqCtx := ctx.Request().Context()
	if err := s.handlers.RunMatching.Handle(reqCtx, cmd); err != nil {
		return s.fail(ctx, err, "Failed to run matching")
	}

	query, err := queries.NewGetMatchingRunQuery(runID)
	if err != nil {
		return s.fail(ctx, err, "Failed to load run")
	}
	recorded, err := s.handlers.GetMatchingRun.Handle(reqCtx, query)
	if err != nil {
		return s.fail(ctx, err, "Failed to load run")
	}

	return ctx.JSON(http.StatusCreated, toRun(recorded))
}

// GetLatestRun handles GET /api/v1/runs/latest.
func (s *Server) GetLatestRun(ctx echo.Context) error {
	recorded, err := s.handlers.GetMatchingRun.Handle(
		ctx.Request().Context(),
		queries.NewGetLatestMatchingRunQuery(),
	)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve run")
	}

	return ctx.JSON(http.StatusOK, toRun(recorded))
}

// GetRun handles GET /api/v1/runs/{runId}.
func (s *Server) GetRun(ctx echo.Context, runID servers.RunId) error {
	recorded, err := s.loadRun(ctx, runID)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve run")
	}

	return ctx.JSON(http.StatusOK, toRun(recorded))
}

// GetRunGraph handles GET /api/v1/runs/{runId}/graph.
func (s *Server) GetRunGraph(ctx echo.Context, runID servers.RunId) error {
	recorded, err := s.loadRun(ctx, runID)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve run")
	}

	graph, err := runGraph(recorded)
	if err != nil {
		return s.fail(ctx, err, "Failed to render run")
	}

	return ctx.Blob(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(graph.String()))
}

func (s *Server) loadRun(ctx echo.Context, runID servers.RunId) (queries.GetMatchingRunQueryResponse, error) {
	id, err := kernel.UUIDFromGoogle(runID)
	if err != nil {
		return queries.GetMatchingRunQueryResponse{}, err
	}
	query, err := queries.NewGetMatchingRunQuery(id)
	if err != nil {
		return queries.GetMatchingRunQueryResponse{}, err
	}
	return s.handlers.GetMatchingRun.Handle(ctx.Request().Context(), query)
}
