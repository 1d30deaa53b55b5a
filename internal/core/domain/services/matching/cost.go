package matching

// CostModel prices a single driver/order pair. Implementations must be pure:
// the same pair always yields the same profit.
type CostModel interface {
	Profit(d Driver, o Order) float64
}

// CostFunc adapts an ordinary function to CostModel.
type CostFunc func(d Driver, o Order) float64

// Profit calls f(d, o).
func (f CostFunc) Profit(d Driver, o Order) float64 {
	return f(d, o)
}

// EuclideanCost charges the straight-line distance from the driver to the pickup
// plus the distance of the trip itself:
//
//	profit = revenue - (dist(driver, origin) + dist(origin, destination))
//
// An order whose origin equals its destination costs only the approach leg.
type EuclideanCost struct{}

// TravelCost returns the distance the driver covers to serve the order.
func (EuclideanCost) TravelCost(d Driver, o Order) float64 {
	return Distance(d.Position, o.Origin) + Distance(o.Origin, o.Destination)
}

// Profit implements CostModel.
func (c EuclideanCost) Profit(d Driver, o Order) float64 {
	return float64(o.Revenue) - c.TravelCost(d, o)
}
