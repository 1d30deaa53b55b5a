package matching

import (
	"errors"
	"fmt"
	"math"
)

// ErrSolverInvariant signals a defect in the solver itself, such as a missing
// augmenting path. It never describes bad input; no partial result accompanies it.
var ErrSolverInvariant = errors.New("matching solver invariant violated")

// Engine solves assignment instances. The zero value prices pairs with EuclideanCost
// under DefaultOptions. An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	model CostModel
	opts  Options
}

// NewEngine returns an engine pricing pairs with model. A nil model selects EuclideanCost.
//
// Example:
//
//	engine := matching.NewEngine(matching.EuclideanCost{}, matching.DefaultOptions())
//	result, err := engine.Solve(instance)
func NewEngine(model CostModel, opts Options) *Engine {
	if model == nil {
		model = EuclideanCost{}
	}
	return &Engine{model: model, opts: opts.normalized()}
}

// Model returns the cost model used by the engine.
func (e *Engine) Model() CostModel {
	if e.model == nil {
		return EuclideanCost{}
	}
	return e.model
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts.normalized()
}

// Solve computes a profit-maximising assignment for in.
//
// Every driver ends up with exactly one outcome: an order or a decline. Each order is
// served at most once. Orders with negative profit for every driver are left
// unserved because declining costs nothing. Among equally profitable assignments the
// drivers choose in index order: each takes the lowest numbered order still possible,
// and a decline beats an order whose profit is zero.
//
// Returns ErrInvalidInstance for malformed input and ErrSolverInvariant if the
// algorithm breaks its own invariants.
func (e *Engine) Solve(in Instance) (Result, error) {
	model, opts := e.Model(), e.Options()
	if err := in.Validate(opts); err != nil {
		return Result{}, err
	}

	n, m := in.NumDrivers(), in.NumOrders()
	if n == 0 {
		return Result{certificate: Certificate{Drivers: []float64{}, Orders: make([]float64, m)}}, nil
	}
	if m == 0 {
		return allDeclined(n), nil
	}

	g := newNetwork(in, model)
	s := solver{g: g, tol: opts.Tolerance}

	if err := s.run(); err != nil {
		return Result{}, err
	}
	if err := s.canonicalize(); err != nil {
		return Result{}, err
	}

	return s.result()
}

func allDeclined(n int) Result {
	outcomes := make([]Outcome, n)
	for i := range outcomes {
		outcomes[i] = Declined()
	}
	return Result{
		outcomes:    outcomes,
		certificate: Certificate{Drivers: make([]float64, n), Orders: []float64{}},
	}
}

// solver carries the mutable state of one Solve call.
type solver struct {
	g   *network
	tol float64
	pot []float64

	// per-iteration scratch
	dist     []float64
	prevNode []int
	prevArc  []int
	settled  []bool
}

func (s *solver) run() error {
	s.pot = s.bellmanFord()

	size := s.g.size()
	s.dist = make([]float64, size)
	s.prevNode = make([]int, size)
	s.prevArc = make([]int, size)
	s.settled = make([]bool, size)

	// Each augmentation saturates one source arc, so numDrivers rounds always suffice.
	for round := range s.g.numDrivers {
		if !s.dijkstra() {
			return fmt.Errorf("%w: no augmenting path in round %d of %d", ErrSolverInvariant, round+1, s.g.numDrivers)
		}
		s.updatePotentials()
		if err := s.augment(); err != nil {
			return err
		}
	}

	return nil
}

// bellmanFord returns shortest distances from the source over arcs with residual
// capacity. The initial network is acyclic and every node is reachable, so the
// distances are finite and form valid potentials.
func (s *solver) bellmanFord() []float64 {
	size := s.g.size()
	dist := make([]float64, size)
	for v := range dist {
		dist[v] = math.Inf(1)
	}
	dist[s.g.source()] = 0

	for range size - 1 {
		changed := false
		for u := range size {
			if math.IsInf(dist[u], 1) {
				continue
			}
			for _, a := range s.g.adj[u] {
				if a.residual == 0 {
					continue
				}
				if nd := dist[u] + a.cost; nd < dist[a.to] {
					dist[a.to] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	for v := range dist {
		if math.IsInf(dist[v], 1) {
			dist[v] = 0
		}
	}
	return dist
}

// dijkstra finds a shortest source-sink path on reduced costs and reports whether
// the sink was reached. Nodes are settled by distance, lowest node index first
// on equal distances. A node keeps the predecessor with the lower index when two
// candidates are within tolerance of each other.
func (s *solver) dijkstra() bool {
	size := s.g.size()
	for v := range size {
		s.dist[v] = math.Inf(1)
		s.prevNode[v] = -1
		s.prevArc[v] = -1
		s.settled[v] = false
	}
	s.dist[s.g.source()] = 0
	sink := s.g.sink()

	for {
		u := -1
		for v := range size {
			if s.settled[v] || math.IsInf(s.dist[v], 1) {
				continue
			}
			if u == -1 || s.dist[v] < s.dist[u] {
				u = v
			}
		}
		if u == -1 {
			return false
		}
		s.settled[u] = true
		if u == sink {
			return true
		}

		for k, a := range s.g.adj[u] {
			if a.residual == 0 || s.settled[a.to] {
				continue
			}
			nd := s.dist[u] + a.cost + s.pot[u] - s.pot[a.to]
			switch {
			case nd < s.dist[a.to]-s.tol:
				s.dist[a.to] = nd
				s.prevNode[a.to] = u
				s.prevArc[a.to] = k
			case nd <= s.dist[a.to]+s.tol && u < s.prevNode[a.to]:
				s.dist[a.to] = math.Min(s.dist[a.to], nd)
				s.prevNode[a.to] = u
				s.prevArc[a.to] = k
			}
		}
	}
}

// updatePotentials adds min(dist, dist[sink]) to every potential, which keeps
// reduced costs non-negative although the search stopped at the sink.
func (s *solver) updatePotentials() {
	limit := s.dist[s.g.sink()]
	for v := range s.pot {
		s.pot[v] += math.Min(s.dist[v], limit)
	}
}

// augment pushes one unit along the path recorded by dijkstra.
func (s *solver) augment() error {
	for v := s.g.sink(); v != s.g.source(); {
		u, k := s.prevNode[v], s.prevArc[v]
		if u < 0 {
			return fmt.Errorf("%w: broken predecessor chain at node %d", ErrSolverInvariant, v)
		}
		if a := s.g.adj[u][k]; a.residual < 1 {
			return fmt.Errorf("%w: saturated arc %d->%d on augmenting path", ErrSolverInvariant, u, a.to)
		}
		s.push(u, k)
		v = u
	}
	return nil
}

// result reads the assignment off the final flow.
func (s *solver) result() (Result, error) {
	g := s.g
	outcomes := make([]Outcome, g.numDrivers)
	pairs := make([]Pair, 0, min(g.numDrivers, g.numOrders))
	served := make([]bool, g.numOrders+1)
	total := 0.0

	for i := range g.numDrivers {
		for _, a := range g.adj[g.driverNode(i)] {
			if a.capacity == 0 || a.flow() == 0 {
				continue
			}
			if outcomes[i].Kind() != OutcomeUnknown {
				return Result{}, fmt.Errorf("%w: driver %d carries more than one unit", ErrSolverInvariant, i)
			}
			if a.to == g.decline() {
				outcomes[i] = Declined()
				continue
			}
			j := g.orderNumber(a.to)
			if served[j] {
				return Result{}, fmt.Errorf("%w: order %d served twice", ErrSolverInvariant, j)
			}
			served[j] = true
			outcomes[i] = AssignedTo(j)
			p := g.profit[i][j-1]
			pairs = append(pairs, Pair{Driver: i, Order: j, Profit: p})
			total += p
		}
		if outcomes[i].Kind() == OutcomeUnknown {
			return Result{}, fmt.Errorf("%w: driver %d has no outcome", ErrSolverInvariant, i)
		}
	}

	return Result{
		outcomes:    outcomes,
		pairs:       pairs,
		totalProfit: total,
		certificate: s.certificate(),
	}, nil
}

func (s *solver) certificate() Certificate {
	g := s.g
	c := Certificate{
		Source:  s.pot[g.source()],
		Decline: s.pot[g.decline()],
		Sink:    s.pot[g.sink()],
		Drivers: make([]float64, g.numDrivers),
		Orders:  make([]float64, g.numOrders),
	}
	for i := range g.numDrivers {
		c.Drivers[i] = s.pot[g.driverNode(i)]
	}
	for j := 1; j <= g.numOrders; j++ {
		c.Orders[j-1] = s.pot[g.orderNode(j)]
	}
	return c
}
