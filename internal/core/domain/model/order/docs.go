// Package order implements the Order aggregate of the dispatch domain.
//
// An order is a one-time trip from an origin to a destination that pays a fixed,
// positive revenue to whichever driver serves it. Orders start as Created, get
// Assigned by a matching run and become Completed once the driver drops them off.
// An order is served by at most one driver.
package order
