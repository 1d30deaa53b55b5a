// Package services provides domain services that work across several aggregates
// of the dispatch domain.
//
// The package includes:
//   - BatchDispatcher: turns free drivers and waiting orders into a matching instance,
//     solves it and applies the optimal assignment to the aggregates
//   - InstanceGenerator: seeded random drivers, routes and revenues on the 10x10 grid
//
// The optimisation itself lives in the matching subpackage, which knows nothing about
// aggregates or identifiers.
package services
