// Package servers is the HTTP contract of the dispatch API: wire types, the server
// interface with its echo bindings, and the embedded OpenAPI document they follow.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Location defines model for Location.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Driver defines model for Driver.
type Driver struct {
	Id       openapi_types.UUID  `json:"id"`
	Location Location            `json:"location"`
	Name     string              `json:"name"`
	OrderId  *openapi_types.UUID `json:"orderId"`
	Speed    int                 `json:"speed"`
}

// NewDriver defines model for NewDriver.
type NewDriver struct {
	Location *Location `json:"location,omitempty"`
	Name     string    `json:"name"`
	Speed    int       `json:"speed"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

const (
	OrderStatusCreated  OrderStatus = "Created"
	OrderStatusAssigned OrderStatus = "Assigned"
)

// Order defines model for Order.
type Order struct {
	Destination Location            `json:"destination"`
	DriverId    *openapi_types.UUID `json:"driverId"`
	Id          openapi_types.UUID  `json:"id"`
	Origin      Location            `json:"origin"`
	Revenue     int                 `json:"revenue"`
	Status      OrderStatus         `json:"status"`
}

// NewOrder defines model for NewOrder. Omitted endpoints or revenue are drawn at random.
type NewOrder struct {
	Destination *Location `json:"destination,omitempty"`
	Origin      *Location `json:"origin,omitempty"`
	Revenue     *int      `json:"revenue,omitempty"`
}

// NewRun defines model for NewRun.
type NewRun struct {
	MaxOrders *int `json:"maxOrders,omitempty"`
}

// Assignment defines model for Assignment.
type Assignment struct {
	DriverId   openapi_types.UUID  `json:"driverId"`
	DriverName string              `json:"driverName"`
	OrderId    *openapi_types.UUID `json:"orderId"`
	Profit     float64             `json:"profit"`
}

// Run defines model for Run.
type Run struct {
	Assignments  []Assignment       `json:"assignments"`
	CreatedAt    time.Time          `json:"createdAt"`
	Id           openapi_types.UUID `json:"id"`
	OrdersWaited int                `json:"ordersWaited"`
	Served       int                `json:"served"`
	TotalProfit  float64            `json:"totalProfit"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RunId defines model for RunId.
type RunId = openapi_types.UUID
