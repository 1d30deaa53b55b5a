package matching

import (
	"fmt"
	"math"
)

// canonicalize moves the optimal flow to the preferred optimal assignment.
//
// Drivers are settled by index. Each one takes the first outcome of its preference
// list that an optimal assignment agreeing with the already settled drivers allows:
// profitable orders by number, then decline, then the remaining orders. Optimal
// assignments differ by cycles of zero reduced cost, so every move rotates the flow
// along such a cycle and the potentials remain a valid certificate.
func (s *solver) canonicalize() error {
	g := s.g
	size := g.size()
	blocked := make([]bool, size)
	blocked[g.source()] = true
	reach := make([]bool, size)

	for i := range g.numDrivers {
		u := g.driverNode(i)
		blocked[u] = true

		curArc := s.outlet(u)
		if curArc < 0 {
			return fmt.Errorf("%w: driver %d has no outcome", ErrSolverInvariant, i)
		}
		cur := g.adj[u][curArc].to

		s.reachableTo(cur, blocked, reach)
		for _, k := range s.preference(u) {
			a := g.adj[u][k]
			if a.to == cur {
				break
			}
			if a.residual > 0 && reach[a.to] && s.tight(u, a) {
				if err := s.rotate(u, k, curArc, blocked); err != nil {
					return err
				}
				break
			}
		}
	}

	return nil
}

// outlet returns the index of the forward arc carrying u's unit of flow, or -1.
func (s *solver) outlet(u int) int {
	for k, a := range s.g.adj[u] {
		if a.capacity > 0 && a.flow() > 0 {
			return k
		}
	}
	return -1
}

// preference lists the forward arcs of driver node u from most to least preferred.
func (s *solver) preference(u int) []int {
	var profitable, rest []int
	decline := -1
	for k, a := range s.g.adj[u] {
		switch {
		case a.capacity == 0:
		case a.to == s.g.decline():
			decline = k
		case -a.cost > s.tol:
			profitable = append(profitable, k)
		default:
			rest = append(rest, k)
		}
	}
	order := append(profitable, decline)
	return append(order, rest...)
}

// tight reports whether arc a leaving u has zero reduced cost within tolerance.
func (s *solver) tight(u int, a arc) bool {
	return math.Abs(a.cost+s.pot[u]-s.pot[a.to]) <= s.tol
}

// reachableTo marks the nodes that reach target over tight residual arcs without
// entering a blocked node.
func (s *solver) reachableTo(target int, blocked, reach []bool) {
	for v := range reach {
		reach[v] = false
	}
	reach[target] = true
	queue := []int{target}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, a := range s.g.adj[v] {
			w := a.to
			if blocked[w] || reach[w] {
				continue
			}
			in := s.g.adj[w][a.rev]
			if in.residual > 0 && s.tight(w, in) {
				reach[w] = true
				queue = append(queue, w)
			}
		}
	}
}

// rotate sends u's unit over arc k instead of arc curArc. The freed and the taken
// endpoints are reconnected by a shortest tight residual path avoiding blocked nodes.
func (s *solver) rotate(u, k, curArc int, blocked []bool) error {
	g := s.g
	from, cur := g.adj[u][k].to, g.adj[u][curArc].to

	for v := range s.prevNode {
		s.prevNode[v] = -1
		s.prevArc[v] = -1
		s.settled[v] = false
	}
	s.settled[from] = true
	queue := []int{from}

	for len(queue) > 0 && !s.settled[cur] {
		v := queue[0]
		queue = queue[1:]
		for j, a := range g.adj[v] {
			if blocked[a.to] || s.settled[a.to] || a.residual == 0 || !s.tight(v, a) {
				continue
			}
			s.settled[a.to] = true
			s.prevNode[a.to] = v
			s.prevArc[a.to] = j
			queue = append(queue, a.to)
		}
	}
	if !s.settled[cur] {
		return fmt.Errorf("%w: no zero-cost cycle through node %d", ErrSolverInvariant, u)
	}

	for v := cur; v != from; v = s.prevNode[v] {
		s.push(s.prevNode[v], s.prevArc[v])
	}
	s.push(u, k)
	old := g.adj[u][curArc]
	s.push(cur, old.rev)

	return nil
}

func (s *solver) push(u, k int) {
	a := &s.g.adj[u][k]
	a.residual--
	s.g.adj[a.to][a.rev].residual++
}
