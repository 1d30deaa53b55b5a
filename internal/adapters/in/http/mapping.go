package http

import (
	"fmt"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/bipartite"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toLocation(l kernel.Location) servers.Location {
	return servers.Location{X: float64(l.X()), Y: float64(l.Y())}
}

func fromLocation(l servers.Location) (kernel.Location, error) {
	return kernel.NewLocation(kernel.Coordinate(l.X), kernel.Coordinate(l.Y))
}

func toOptionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func toRun(r queries.GetMatchingRunQueryResponse) servers.Run {
	assignments := make([]servers.Assignment, len(r.Assignments))
	for i, a := range r.Assignments {
		assignments[i] = servers.Assignment{
			DriverId:   a.DriverID.Bytes(),
			DriverName: a.DriverName,
			OrderId:    toOptionalID(a.OrderID),
			Profit:     a.Profit,
		}
	}

	return servers.Run{
		Id:           r.ID.Bytes(),
		CreatedAt:    r.CreatedAt,
		TotalProfit:  r.TotalProfit,
		OrdersWaited: r.OrdersWaited,
		Served:       r.Served(),
		Assignments:  assignments,
	}
}

// runGraph draws the run with drivers numbered in solver order. Only served
// orders are known to a run, so they are numbered by first appearance.
func runGraph(r queries.GetMatchingRunQueryResponse) (*bipartite.Graph, error) {
	g := &bipartite.Graph{Name: "run " + r.ID.String()}

	for i, a := range r.Assignments {
		label := fmt.Sprintf("Driver %d", i+1)
		if a.DriverName != "" {
			label += "\n" + a.DriverName
		}
		from := g.AddLeft(a.DriverID.String(), label)

		if a.OrderID == nil {
			continue
		}
		to := g.AddRight(a.OrderID.String(), fmt.Sprintf("Order %d", len(g.Right)+1))
		if err := g.Connect(from, to, a.Profit); err != nil {
			return nil, err
		}
	}

	return g, nil
}
