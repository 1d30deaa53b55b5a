// Package driver implements the Driver aggregate of the dispatch domain.
//
// A driver serves at most one order at a time. Once a matching run assigns an order,
// the driver travels in a straight line to the pickup point and then to the drop-off
// point, covering at most Speed units of distance per movement tick. Delivering the
// order frees the driver for the next run.
package driver
