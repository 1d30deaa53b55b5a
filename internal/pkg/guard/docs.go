// Package guard holds the constructor guard used by value objects and aggregates
// to reject zero values that bypassed their constructors.
package guard
