package matching

// arc is one direction of a residual edge. Every edge is stored twice, the
// reverse arc starting with zero residual capacity and the negated cost.
type arc struct {
	to       int
	rev      int // index of the paired arc in adj[to]
	residual int
	capacity int // 0 for reverse arcs
	cost     float64
}

func (a arc) flow() int {
	return a.capacity - a.residual
}

// network is the flow network of one instance. Node numbering is fixed and
// doubles as the tie-break order of the solver:
//
//	0                 source
//	1..n              drivers by index
//	n+1               decline
//	n+2..n+m+1        orders by number
//	n+m+2             sink
type network struct {
	adj        [][]arc
	numDrivers int
	numOrders  int
	profit     [][]float64 // profit[i][j-1] of driver i serving order j
}

func newNetwork(in Instance, model CostModel) *network {
	n, m := in.NumDrivers(), in.NumOrders()
	g := &network{
		adj:        make([][]arc, n+m+3),
		numDrivers: n,
		numOrders:  m,
		profit:     make([][]float64, n),
	}

	for i := range n {
		g.addArc(g.source(), g.driverNode(i), 1, 0)
	}
	for i, d := range in.Drivers {
		g.profit[i] = make([]float64, m)
		for k, o := range in.Orders {
			p := model.Profit(d, o)
			g.profit[i][k] = p
			g.addArc(g.driverNode(i), g.orderNode(k+1), 1, -p)
		}
		g.addArc(g.driverNode(i), g.decline(), 1, 0)
	}
	for k := range m {
		g.addArc(g.orderNode(k+1), g.sink(), 1, 0)
	}
	g.addArc(g.decline(), g.sink(), n, 0)

	return g
}

func (g *network) addArc(from, to, capacity int, cost float64) {
	g.adj[from] = append(g.adj[from], arc{to: to, rev: len(g.adj[to]), residual: capacity, capacity: capacity, cost: cost})
	g.adj[to] = append(g.adj[to], arc{to: from, rev: len(g.adj[from]) - 1, residual: 0, capacity: 0, cost: -cost})
}

func (g *network) size() int                { return len(g.adj) }
func (g *network) source() int              { return 0 }
func (g *network) driverNode(i int) int     { return 1 + i }
func (g *network) decline() int             { return g.numDrivers + 1 }
func (g *network) orderNode(number int) int { return g.numDrivers + 1 + number }
func (g *network) sink() int                { return g.numDrivers + g.numOrders + 2 }

func (g *network) orderNumber(v int) int {
	return v - g.numDrivers - 1
}
