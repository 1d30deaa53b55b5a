// Package kernel holds the value objects shared by every aggregate of the dispatch domain.
//
// The package includes:
//   - UUID: identifier of drivers, orders and matching runs
//   - Location: a real-valued point of the 10x10 service area, with Euclidean distance
//     and straight-line movement
//
// Random locations are sampled on the centres of the 10x10 grid cells, which keeps
// generated instances reproducible under a seeded generator.
package kernel
