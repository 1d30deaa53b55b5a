package matching

import (
	"errors"
	"fmt"
	"math"
)

// ErrVerificationFailed is returned by Result.Verify when a result does not hold for its instance.
var ErrVerificationFailed = errors.New("assignment verification failed")

// OutcomeKind tags an Outcome.
type OutcomeKind uint8

const (
	// OutcomeUnknown is the zero value and never appears in a solved Result.
	OutcomeUnknown OutcomeKind = iota
	// OutcomeDeclined means the driver takes no order.
	OutcomeDeclined
	// OutcomeAssigned means the driver serves exactly one order.
	OutcomeAssigned
)

// Outcome is what a single driver does: decline, or serve one order.
type Outcome struct {
	kind  OutcomeKind
	order int
}

// Declined returns the decline outcome.
func Declined() Outcome {
	return Outcome{kind: OutcomeDeclined}
}

// AssignedTo returns the outcome of serving the order with the given 1-based number.
func AssignedTo(order int) Outcome {
	return Outcome{kind: OutcomeAssigned, order: order}
}

// Kind returns the tag.
func (o Outcome) Kind() OutcomeKind {
	return o.kind
}

// IsDeclined reports whether the driver declined.
func (o Outcome) IsDeclined() bool {
	return o.kind == OutcomeDeclined
}

// Order returns the assigned order number; ok is false for anything but OutcomeAssigned.
func (o Outcome) Order() (number int, ok bool) {
	if o.kind != OutcomeAssigned {
		return 0, false
	}
	return o.order, true
}

func (o Outcome) String() string {
	switch o.kind {
	case OutcomeDeclined:
		return "declined"
	case OutcomeAssigned:
		return fmt.Sprintf("order %d", o.order)
	default:
		return "unknown"
	}
}

// Pair is one served order.
type Pair struct {
	Driver int     `json:"driver"`
	Order  int     `json:"order"`
	Profit float64 `json:"profit"`
}

// Certificate holds the final node potentials of the flow network. With
//
//	reduced(i, j) = -profit(i, j) + Drivers[i] - Orders[j-1]
//
// every matched pair has reduced cost 0 and every other pair a non-negative one.
// The analogous conditions on the source, decline and sink arcs complete the proof
// that no better assignment exists.
type Certificate struct {
	Source  float64   `json:"source"`
	Decline float64   `json:"decline"`
	Sink    float64   `json:"sink"`
	Drivers []float64 `json:"drivers"`
	Orders  []float64 `json:"orders"`
}

// ReducedCost returns the reduced cost of the arc from driver i to order j for a given profit.
func (c Certificate) ReducedCost(i, j int, profit float64) float64 {
	return -profit + c.Drivers[i] - c.Orders[j-1]
}

// Result is an immutable solution of one instance.
type Result struct {
	outcomes    []Outcome
	pairs       []Pair
	totalProfit float64
	certificate Certificate
}

// NumDrivers returns the number of outcomes, one per driver.
func (r Result) NumDrivers() int {
	return len(r.outcomes)
}

// Outcome returns what driver i does.
func (r Result) Outcome(i int) Outcome {
	return r.outcomes[i]
}

// Outcomes returns a copy of all outcomes indexed by driver.
func (r Result) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Pairs returns a copy of the served orders, ordered by driver index.
func (r Result) Pairs() []Pair {
	out := make([]Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// DriverFor returns the driver serving the given order number.
func (r Result) DriverFor(order int) (int, bool) {
	for _, p := range r.pairs {
		if p.Order == order {
			return p.Driver, true
		}
	}
	return 0, false
}

// TotalProfit is the sum of profits over served orders. Declines add nothing.
func (r Result) TotalProfit() float64 {
	return r.totalProfit
}

// Certificate returns the optimality certificate.
func (r Result) Certificate() Certificate {
	c := r.certificate
	c.Drivers = append([]float64(nil), c.Drivers...)
	c.Orders = append([]float64(nil), c.Orders...)
	return c
}

// Verify re-derives the result against in and model. It checks:
//   - one outcome per driver
//   - every referenced order exists and is served at most once
//   - the reported total matches the re-priced pairs within tol
//   - the certificate conditions hold within tol
//
// All violations are returned together, wrapped in ErrVerificationFailed.
func (r Result) Verify(in Instance, model CostModel, tol float64) error {
	if model == nil {
		model = EuclideanCost{}
	}

	var problems []error
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	n, m := in.NumDrivers(), in.NumOrders()
	if len(r.outcomes) != n {
		fail("%d outcomes for %d drivers", len(r.outcomes), n)
		return fmt.Errorf("%w: %w", ErrVerificationFailed, errors.Join(problems...))
	}

	servedBy := make([]int, m+1)
	for j := range servedBy {
		servedBy[j] = -1
	}
	total := 0.0
	for i, o := range r.outcomes {
		switch o.kind {
		case OutcomeDeclined:
		case OutcomeAssigned:
			if o.order < 1 || o.order > m {
				fail("driver %d assigned to unknown order %d", i, o.order)
				continue
			}
			if prev := servedBy[o.order]; prev >= 0 {
				fail("order %d served by drivers %d and %d", o.order, prev, i)
				continue
			}
			servedBy[o.order] = i
			total += model.Profit(in.Driver(i), in.Order(o.order))
		default:
			fail("driver %d has no outcome", i)
		}
	}

	if math.Abs(total-r.totalProfit) > tol*math.Max(1, float64(n)) {
		fail("reported profit %v, re-derived %v", r.totalProfit, total)
	}

	if len(problems) == 0 {
		problems = append(problems, r.verifyCertificate(in, model, tol, servedBy)...)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrVerificationFailed, errors.Join(problems...))
}

func (r Result) verifyCertificate(in Instance, model CostModel, tol float64, servedBy []int) []error {
	c := r.certificate
	n, m := in.NumDrivers(), in.NumOrders()
	if len(c.Drivers) != n || len(c.Orders) != m {
		return []error{fmt.Errorf("certificate covers %d drivers and %d orders, want %d and %d",
			len(c.Drivers), len(c.Orders), n, m)}
	}

	var problems []error
	// An arc with residual capacity needs reduced cost >= 0; an arc carrying flow
	// needs its reverse to satisfy the same, i.e. reduced cost <= 0.
	check := func(name string, reduced float64, flow, capacity int) {
		if flow < capacity && reduced < -tol {
			problems = append(problems, fmt.Errorf("%s: reduced cost %v < 0 on unsaturated arc", name, reduced))
		}
		if flow > 0 && reduced > tol {
			problems = append(problems, fmt.Errorf("%s: reduced cost %v > 0 on used arc", name, reduced))
		}
	}

	declined := 0
	for i, o := range r.outcomes {
		check(fmt.Sprintf("source->driver %d", i), c.Source-c.Drivers[i], 1, 1)

		flowX := 0
		if o.IsDeclined() {
			flowX = 1
			declined++
		}
		check(fmt.Sprintf("driver %d->decline", i), c.Drivers[i]-c.Decline, flowX, 1)

		for j := 1; j <= m; j++ {
			flow := 0
			if servedBy[j] == i {
				flow = 1
			}
			profit := model.Profit(in.Driver(i), in.Order(j))
			check(fmt.Sprintf("driver %d->order %d", i, j), c.ReducedCost(i, j, profit), flow, 1)
		}
	}

	for j := 1; j <= m; j++ {
		flow := 0
		if servedBy[j] >= 0 {
			flow = 1
		}
		check(fmt.Sprintf("order %d->sink", j), c.Orders[j-1]-c.Sink, flow, 1)
	}
	check("decline->sink", c.Decline-c.Sink, declined, n)

	return problems
}
