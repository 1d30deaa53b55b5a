package matching

// DefaultTolerance is the absolute tolerance used for cost comparisons.
const DefaultTolerance = 1e-9

// Options tune the engine.
type Options struct {
	// Tolerance is the absolute slack under which two path costs count as equal.
	Tolerance float64
	// RequireDistinctEndpoints rejects orders whose origin equals the destination
	// instead of pricing them with the approach leg only.
	RequireDistinctEndpoints bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

func (o Options) normalized() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}
