// Package matching solves the static driver/order assignment problem.
//
// Given a set of drivers and a set of one-time orders, the Engine decides for every
// driver whether it takes exactly one order or declines, so that the total net profit
// (order revenue minus travel cost) is maximal and no order is served twice.
//
// The problem is solved as a min-cost flow on the network
//
//	S -> driver_i        cap 1, cost 0
//	driver_i -> order_j  cap 1, cost -profit(i, j)
//	driver_i -> X        cap 1, cost 0          (decline)
//	order_j -> T         cap 1, cost 0
//	X -> T               cap len(drivers), cost 0
//
// with successive shortest augmenting paths. Bellman-Ford seeds the node potentials,
// and every augmentation runs Dijkstra on reduced costs. The final potentials are returned
// as a Certificate of optimality that callers can check independently with Result.Verify.
//
// The package is pure: no I/O, no shared state. An Engine may be used from many
// goroutines at once.
package matching
