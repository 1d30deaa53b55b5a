package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/drivers)
	GetDrivers(ctx echo.Context) error
	// (POST /api/v1/drivers)
	CreateDriver(ctx echo.Context) error
	// (GET /api/v1/orders/active)
	GetOrders(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (POST /api/v1/runs)
	CreateRun(ctx echo.Context) error
	// (GET /api/v1/runs/latest)
	GetLatestRun(ctx echo.Context) error
	// (GET /api/v1/runs/{runId})
	GetRun(ctx echo.Context, runId RunId) error
	// (GET /api/v1/runs/{runId}/graph)
	GetRunGraph(ctx echo.Context, runId RunId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetDrivers(ctx echo.Context) error {
	return w.Handler.GetDrivers(ctx)
}

func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	return w.Handler.CreateDriver(ctx)
}

func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) CreateRun(ctx echo.Context) error {
	return w.Handler.CreateRun(ctx)
}

func (w *ServerInterfaceWrapper) GetLatestRun(ctx echo.Context) error {
	return w.Handler.GetLatestRun(ctx)
}

func (w *ServerInterfaceWrapper) GetRun(ctx echo.Context) error {
	runId, err := bindRunId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRun(ctx, runId)
}

func (w *ServerInterfaceWrapper) GetRunGraph(ctx echo.Context) error {
	runId, err := bindRunId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRunGraph(ctx, runId)
}

func bindRunId(ctx echo.Context) (RunId, error) {
	var runId RunId
	err := runtime.BindStyledParameterWithOptions("simple", "runId", ctx.Param("runId"), &runId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return runId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter runId: %s", err))
	}
	return runId, nil
}

// EchoRouter is the subset of echo used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/drivers", wrapper.GetDrivers)
	router.POST(baseURL+"/api/v1/drivers", wrapper.CreateDriver)
	router.GET(baseURL+"/api/v1/orders/active", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.POST(baseURL+"/api/v1/runs", wrapper.CreateRun)
	router.GET(baseURL+"/api/v1/runs/latest", wrapper.GetLatestRun)
	router.GET(baseURL+"/api/v1/runs/:runId", wrapper.GetRun)
	router.GET(baseURL+"/api/v1/runs/:runId/graph", wrapper.GetRunGraph)
}
