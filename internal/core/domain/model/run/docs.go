// Package run implements the MatchingRun aggregate: the persisted outcome of one
// batch assignment of free drivers to waiting orders.
package run
