package services

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultMinRevenue and DefaultMaxRevenue bound generated order revenue, inclusive.
	DefaultMinRevenue = 11
	DefaultMaxRevenue = 21
)

// InstanceGenerator produces random drivers and orders on the centres of the
// 10x10 grid cells. The same seed always yields the same sequence.
// It is safe for concurrent use.
type InstanceGenerator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	minRevenue int
	maxRevenue int
}

// NewInstanceGenerator returns a generator seeded with seed and the default revenue range.
func NewInstanceGenerator(seed uint64) *InstanceGenerator {
	g, _ := NewInstanceGeneratorWithRevenue(seed, DefaultMinRevenue, DefaultMaxRevenue)
	return g
}

// NewInstanceGeneratorWithRevenue returns a generator drawing revenue uniformly from
// [minRevenue, maxRevenue].
func NewInstanceGeneratorWithRevenue(seed uint64, minRevenue, maxRevenue int) (*InstanceGenerator, error) {
	if minRevenue <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("minRevenue", fmt.Errorf("%d is not greater than 0", minRevenue))
	}
	if maxRevenue < minRevenue {
		return nil, errs.NewValueIsOutOfRangeError("maxRevenue", maxRevenue, minRevenue, "+inf")
	}
	return &InstanceGenerator{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		minRevenue: minRevenue,
		maxRevenue: maxRevenue,
	}, nil
}

// Location returns a random cell centre.
func (g *InstanceGenerator) Location() (kernel.Location, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return kernel.NewRandomLocationFrom(g.rng.IntN)
}

// Route returns a random origin and a random destination in a different cell.
func (g *InstanceGenerator) Route() (kernel.Location, kernel.Location, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.route()
}

// Revenue returns a random revenue in the configured range.
func (g *InstanceGenerator) Revenue() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revenue()
}

// Instance returns a full random matching instance.
func (g *InstanceGenerator) Instance(numDrivers, numOrders int) (matching.Instance, error) {
	if numDrivers < 0 {
		return matching.Instance{}, errs.NewValueIsOutOfRangeError("numDrivers", numDrivers, 0, "+inf")
	}
	if numOrders < 0 {
		return matching.Instance{}, errs.NewValueIsOutOfRangeError("numOrders", numOrders, 0, "+inf")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	instance := matching.Instance{
		Drivers: make([]matching.Driver, numDrivers),
		Orders:  make([]matching.Order, numOrders),
	}
	for i := range instance.Drivers {
		loc, err := kernel.NewRandomLocationFrom(g.rng.IntN)
		if err != nil {
			return matching.Instance{}, err
		}
		instance.Drivers[i] = matching.Driver{Position: point(loc)}
	}
	for k := range instance.Orders {
		origin, destination, err := g.route()
		if err != nil {
			return matching.Instance{}, err
		}
		instance.Orders[k] = matching.Order{
			Origin:      point(origin),
			Destination: point(destination),
			Revenue:     int64(g.revenue()),
		}
	}
	return instance, nil
}

func (g *InstanceGenerator) route() (kernel.Location, kernel.Location, error) {
	origin, err := kernel.NewRandomLocationFrom(g.rng.IntN)
	if err != nil {
		return kernel.Location{}, kernel.Location{}, err
	}
	for {
		destination, err := kernel.NewRandomLocationFrom(g.rng.IntN)
		if err != nil {
			return kernel.Location{}, kernel.Location{}, err
		}
		same, err := origin.IsEqual(destination)
		if err != nil {
			return kernel.Location{}, kernel.Location{}, err
		}
		if !same {
			return origin, destination, nil
		}
	}
}

func (g *InstanceGenerator) revenue() int {
	return g.minRevenue + g.rng.IntN(g.maxRevenue-g.minRevenue+1)
}
