package matching_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/pkg/errs"
)

const verifyTolerance = 1e-6

func newEngine() *matching.Engine {
	return matching.NewEngine(matching.EuclideanCost{}, matching.DefaultOptions())
}

func TestEngine_Solve_SingleProfitableOrder(t *testing.T) {
	// Given
	in := matching.Instance{
		Drivers: []matching.Driver{
			{Position: matching.Point{X: 0, Y: 0}},
			{Position: matching.Point{X: 10, Y: 10}},
		},
		Orders: []matching.Order{
			{Origin: matching.Point{X: 0, Y: 0}, Destination: matching.Point{X: 1, Y: 1}, Revenue: 20},
		},
	}

	// When
	result, err := newEngine().Solve(in)

	// Then
	require.NoError(t, err)
	require.Equal(t, 2, result.NumDrivers())

	order, ok := result.Outcome(0).Order()
	assert.True(t, ok)
	assert.Equal(t, 1, order)
	assert.True(t, result.Outcome(1).IsDeclined())
	assert.InDelta(t, 20-math.Sqrt2, result.TotalProfit(), 1e-9)
	assert.InDelta(t, 18.5858, result.TotalProfit(), 1e-4)

	require.NoError(t, result.Verify(in, matching.EuclideanCost{}, verifyTolerance))
}

func TestEngine_Solve_UnprofitableOrderIsDeclinedByEveryone(t *testing.T) {
	in := matching.Instance{
		Drivers: []matching.Driver{
			{Position: matching.Point{X: 0, Y: 0}},
			{Position: matching.Point{X: 9.5, Y: 9.5}},
			{Position: matching.Point{X: 0.5, Y: 9.5}},
		},
		Orders: []matching.Order{
			{Origin: matching.Point{X: 5, Y: 5}, Destination: matching.Point{X: 9, Y: 1}, Revenue: 1},
		},
	}

	result, err := newEngine().Solve(in)

	require.NoError(t, err)
	for i := range in.Drivers {
		assert.True(t, result.Outcome(i).IsDeclined(), "driver %d", i)
	}
	assert.Zero(t, result.TotalProfit())
	assert.Empty(t, result.Pairs())
	require.NoError(t, result.Verify(in, nil, verifyTolerance))
}

func TestEngine_Solve_DegenerateInstances(t *testing.T) {
	t.Run("should decline every driver when there are no orders", func(t *testing.T) {
		in := matching.Instance{Drivers: []matching.Driver{{}, {Position: matching.Point{X: 3, Y: 3}}}}

		result, err := newEngine().Solve(in)

		require.NoError(t, err)
		assert.Equal(t, []matching.Outcome{matching.Declined(), matching.Declined()}, result.Outcomes())
		assert.Zero(t, result.TotalProfit())
		require.NoError(t, result.Verify(in, nil, verifyTolerance))
	})

	t.Run("should return an empty assignment when there are no drivers", func(t *testing.T) {
		in := matching.Instance{Orders: []matching.Order{
			{Origin: matching.Point{X: 1, Y: 1}, Destination: matching.Point{X: 2, Y: 2}, Revenue: 15},
		}}

		result, err := newEngine().Solve(in)

		require.NoError(t, err)
		assert.Zero(t, result.NumDrivers())
		assert.Zero(t, result.TotalProfit())
		require.NoError(t, result.Verify(in, nil, verifyTolerance))
	})

	t.Run("should solve the empty instance", func(t *testing.T) {
		result, err := newEngine().Solve(matching.Instance{})

		require.NoError(t, err)
		assert.Zero(t, result.NumDrivers())
		require.NoError(t, result.Verify(matching.Instance{}, nil, verifyTolerance))
	})
}

func TestEngine_Solve_TieBreaking(t *testing.T) {
	t.Run("should prefer the lower driver index", func(t *testing.T) {
		in := matching.Instance{
			Drivers: []matching.Driver{{Position: matching.Point{X: 2, Y: 2}}, {Position: matching.Point{X: 2, Y: 2}}},
			Orders: []matching.Order{
				{Origin: matching.Point{X: 3, Y: 3}, Destination: matching.Point{X: 4, Y: 4}, Revenue: 12},
			},
		}

		result, err := newEngine().Solve(in)

		require.NoError(t, err)
		assert.Equal(t, matching.AssignedTo(1), result.Outcome(0))
		assert.Equal(t, matching.Declined(), result.Outcome(1))
	})

	t.Run("should prefer the lower order number", func(t *testing.T) {
		same := matching.Order{Origin: matching.Point{X: 3, Y: 3}, Destination: matching.Point{X: 4, Y: 4}, Revenue: 12}
		in := matching.Instance{
			Drivers: []matching.Driver{{Position: matching.Point{X: 2, Y: 2}}},
			Orders:  []matching.Order{same, same, same},
		}

		result, err := newEngine().Solve(in)

		require.NoError(t, err)
		assert.Equal(t, matching.AssignedTo(1), result.Outcome(0))
	})

	t.Run("should hand identical orders to identical drivers in index order", func(t *testing.T) {
		same := matching.Order{Origin: matching.Point{X: 3, Y: 3}, Destination: matching.Point{X: 4, Y: 4}, Revenue: 12}
		orders := []matching.Order{same, same, same, same}

		for n := 2; n <= 4; n++ {
			drivers := make([]matching.Driver, n)
			want := make([]matching.Outcome, n)
			for i := range drivers {
				drivers[i] = matching.Driver{Position: matching.Point{X: 2, Y: 2}}
				want[i] = matching.AssignedTo(i + 1)
			}
			in := matching.Instance{Drivers: drivers, Orders: orders}

			result, err := newEngine().Solve(in)

			require.NoError(t, err)
			assert.Equal(t, want, result.Outcomes(), "%d drivers", n)
			require.NoError(t, result.Verify(in, nil, verifyTolerance))
		}
	})

	t.Run("should not trade profit for a lower order number", func(t *testing.T) {
		// Driver 0 is indifferent between the orders; only driver 1 profits from order 1.
		profit := [][]float64{
			{5, 5},
			{6, -1},
		}
		model := tableModel(profit)
		in := tableInstance(2, 2)

		result, err := matching.NewEngine(model, matching.DefaultOptions()).Solve(in)

		require.NoError(t, err)
		assert.Equal(t, []matching.Outcome{matching.AssignedTo(2), matching.AssignedTo(1)}, result.Outcomes())
		assert.InDelta(t, 11, result.TotalProfit(), 1e-9)
	})

	t.Run("should decline a zero-profit order", func(t *testing.T) {
		in := matching.Instance{
			Drivers: []matching.Driver{{Position: matching.Point{X: 0, Y: 0}}},
			Orders: []matching.Order{
				{Origin: matching.Point{X: 0, Y: 0}, Destination: matching.Point{X: 3, Y: 4}, Revenue: 5},
			},
		}

		result, err := newEngine().Solve(in)

		require.NoError(t, err)
		assert.True(t, result.Outcome(0).IsDeclined())
		assert.Zero(t, result.TotalProfit())
	})

	t.Run("should be deterministic across runs", func(t *testing.T) {
		same := matching.Order{Origin: matching.Point{X: 5, Y: 5}, Destination: matching.Point{X: 6, Y: 5}, Revenue: 11}
		in := matching.Instance{
			Drivers: []matching.Driver{
				{Position: matching.Point{X: 4, Y: 5}}, {Position: matching.Point{X: 6, Y: 5}},
				{Position: matching.Point{X: 5, Y: 4}}, {Position: matching.Point{X: 5, Y: 6}},
			},
			Orders: []matching.Order{same, same},
		}

		first, err := newEngine().Solve(in)
		require.NoError(t, err)
		for range 10 {
			again, err := newEngine().Solve(in)
			require.NoError(t, err)
			assert.Equal(t, first.Outcomes(), again.Outcomes())
		}
	})
}

func TestEngine_Solve_PrefersLexicographicallySmallestOptimum(t *testing.T) {
	// Small integer profits produce many exact ties.
	rng := rand.New(rand.NewPCG(31, 8))

	for trial := range 400 {
		n, m := 1+rng.IntN(4), 1+rng.IntN(4)
		profit := make([][]float64, n)
		for i := range profit {
			profit[i] = make([]float64, m)
			for j := range profit[i] {
				profit[i][j] = float64(rng.IntN(5) - 1)
			}
		}
		model := tableModel(profit)
		in := tableInstance(n, m)

		result, err := matching.NewEngine(model, matching.DefaultOptions()).Solve(in)

		require.NoError(t, err, "trial %d", trial)
		assert.Equal(t, preferredOptimum(profit), result.Outcomes(), "trial %d: %v", trial, profit)
		require.NoError(t, result.Verify(in, model, verifyTolerance), "trial %d", trial)
	}
}

func TestEngine_Solve_ZeroValueEngine(t *testing.T) {
	in := matching.Instance{
		Drivers: []matching.Driver{{Position: matching.Point{X: 0, Y: 0}}, {Position: matching.Point{X: 10, Y: 10}}},
		Orders: []matching.Order{
			{Origin: matching.Point{X: 0, Y: 0}, Destination: matching.Point{X: 1, Y: 1}, Revenue: 20},
		},
	}
	var engine matching.Engine

	result, err := engine.Solve(in)

	require.NoError(t, err)
	assert.Equal(t, []matching.Outcome{matching.AssignedTo(1), matching.Declined()}, result.Outcomes())
	assert.InDelta(t, 20-math.Sqrt2, result.TotalProfit(), 1e-9)
	assert.Equal(t, matching.EuclideanCost{}, engine.Model())
	assert.Equal(t, matching.DefaultOptions(), engine.Options())
	require.NoError(t, result.Verify(in, engine.Model(), verifyTolerance))
}

func TestEngine_Solve_BeatsGreedy(t *testing.T) {
	// Greedy on the best pair first takes (0,1)=10 then (1,2)=1; the optimum is 9+8.
	profit := [][]float64{
		{10, 9},
		{8, 1},
	}
	model := tableModel(profit)
	in := tableInstance(2, 2)

	result, err := matching.NewEngine(model, matching.DefaultOptions()).Solve(in)

	require.NoError(t, err)
	assert.Equal(t, matching.AssignedTo(2), result.Outcome(0))
	assert.Equal(t, matching.AssignedTo(1), result.Outcome(1))
	assert.InDelta(t, 17, result.TotalProfit(), 1e-9)
	require.NoError(t, result.Verify(in, model, verifyTolerance))
}

func TestEngine_Solve_NegativeProfitsKeepCertificateValid(t *testing.T) {
	profit := [][]float64{
		{-3, 4, -1},
		{-2, 5, -7},
		{-9, -8, -0.5},
	}
	model := tableModel(profit)
	in := tableInstance(3, 3)

	result, err := matching.NewEngine(model, matching.DefaultOptions()).Solve(in)

	require.NoError(t, err)
	assert.InDelta(t, 5, result.TotalProfit(), 1e-9)
	assert.Equal(t, matching.Declined(), result.Outcome(0))
	assert.Equal(t, matching.AssignedTo(2), result.Outcome(1))
	assert.Equal(t, matching.Declined(), result.Outcome(2))
	require.NoError(t, result.Verify(in, model, verifyTolerance))
}

func TestEngine_Solve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 11))
	engine := newEngine()

	for trial := range 300 {
		n, m := rng.IntN(6), rng.IntN(6)
		in := randomInstance(rng, n, m)

		result, err := engine.Solve(in)
		require.NoError(t, err, "trial %d", trial)

		want := bruteForce(in, matching.EuclideanCost{})
		assert.InDelta(t, want, result.TotalProfit(), 1e-9, "trial %d (n=%d, m=%d)", trial, n, m)
		require.NoError(t, result.Verify(in, matching.EuclideanCost{}, verifyTolerance), "trial %d", trial)
	}
}

func TestEngine_Solve_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 99))
	engine := newEngine()

	t.Run("feasibility, totality and certificate on larger instances", func(t *testing.T) {
		for range 10 {
			in := randomInstance(rng, 10+rng.IntN(30), 10+rng.IntN(30))

			result, err := engine.Solve(in)

			require.NoError(t, err)
			assert.Equal(t, in.NumDrivers(), result.NumDrivers())
			seen := map[int]bool{}
			for _, p := range result.Pairs() {
				assert.False(t, seen[p.Order], "order %d served twice", p.Order)
				seen[p.Order] = true
				assert.Greater(t, p.Profit, -1e-9)
			}
			require.NoError(t, result.Verify(in, matching.EuclideanCost{}, verifyTolerance))
		}
	})

	t.Run("profit never decreases when a revenue grows", func(t *testing.T) {
		for range 50 {
			in := randomInstance(rng, 1+rng.IntN(6), 1+rng.IntN(6))
			before, err := engine.Solve(in)
			require.NoError(t, err)

			raised := matching.Instance{
				Drivers: in.Drivers,
				Orders:  append([]matching.Order(nil), in.Orders...),
			}
			k := rng.IntN(len(raised.Orders))
			raised.Orders[k].Revenue += int64(1 + rng.IntN(10))

			after, err := engine.Solve(raised)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, after.TotalProfit(), before.TotalProfit()-1e-9)
		}
	})

	t.Run("solving twice yields the same result", func(t *testing.T) {
		in := randomInstance(rng, 12, 9)

		a, err := engine.Solve(in)
		require.NoError(t, err)
		b, err := engine.Solve(in)
		require.NoError(t, err)

		assert.Equal(t, a.Outcomes(), b.Outcomes())
		assert.Equal(t, a.Pairs(), b.Pairs())
		assert.Equal(t, a.TotalProfit(), b.TotalProfit())
	})
}

func TestEngine_Solve_InvalidInstance(t *testing.T) {
	valid := matching.Order{Origin: matching.Point{X: 1, Y: 1}, Destination: matching.Point{X: 2, Y: 2}, Revenue: 11}

	tests := []struct {
		name      string
		instance  matching.Instance
		opts      matching.Options
		wantField string
	}{
		{
			name: "zero revenue",
			instance: matching.Instance{
				Drivers: []matching.Driver{{}},
				Orders:  []matching.Order{valid, {Origin: valid.Origin, Destination: valid.Destination, Revenue: 0}},
			},
			opts:      matching.DefaultOptions(),
			wantField: "orders[1].revenue",
		},
		{
			name: "non finite driver position",
			instance: matching.Instance{
				Drivers: []matching.Driver{{Position: matching.Point{X: math.NaN(), Y: 0}}},
				Orders:  []matching.Order{valid},
			},
			opts:      matching.DefaultOptions(),
			wantField: "drivers[0].position",
		},
		{
			name: "same origin and destination when distinct endpoints are required",
			instance: matching.Instance{
				Drivers: []matching.Driver{{}},
				Orders:  []matching.Order{{Origin: valid.Origin, Destination: valid.Origin, Revenue: 11}},
			},
			opts:      matching.Options{RequireDistinctEndpoints: true},
			wantField: "orders[0].destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matching.NewEngine(nil, tt.opts).Solve(tt.instance)

			require.ErrorIs(t, err, matching.ErrInvalidInstance)
			var invalid *errs.ValueIsInvalidError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.ParamName)
		})
	}

	t.Run("should report every invalid field", func(t *testing.T) {
		in := matching.Instance{Orders: []matching.Order{
			{Revenue: -1}, {Revenue: 0},
		}}

		err := in.Validate(matching.DefaultOptions())

		require.ErrorIs(t, err, matching.ErrInvalidInstance)
		assert.Contains(t, err.Error(), "orders[0].revenue")
		assert.Contains(t, err.Error(), "orders[1].revenue")
		assert.False(t, errors.Is(err, matching.ErrSolverInvariant))
	})
}

func TestEngine_Solve_SameOriginAndDestinationIsTolerated(t *testing.T) {
	in := matching.Instance{
		Drivers: []matching.Driver{{Position: matching.Point{X: 0, Y: 0}}},
		Orders:  []matching.Order{{Origin: matching.Point{X: 3, Y: 4}, Destination: matching.Point{X: 3, Y: 4}, Revenue: 11}},
	}

	result, err := newEngine().Solve(in)

	require.NoError(t, err)
	assert.Equal(t, matching.AssignedTo(1), result.Outcome(0))
	assert.InDelta(t, 6, result.TotalProfit(), 1e-9)
}

func TestEngine_Solve_ConcurrentUse(t *testing.T) {
	engine := newEngine()
	rng := rand.New(rand.NewPCG(5, 5))
	instances := make([]matching.Instance, 8)
	for i := range instances {
		instances[i] = randomInstance(rng, 15, 15)
	}

	want := make([]float64, len(instances))
	for i, in := range instances {
		result, err := engine.Solve(in)
		require.NoError(t, err)
		want[i] = result.TotalProfit()
	}

	got := make([]float64, len(instances))
	var wg sync.WaitGroup
	for i, in := range instances {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := engine.Solve(in)
			if err == nil {
				got[i] = result.TotalProfit()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, want, got)
}

func BenchmarkEngine_Solve(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	in := randomInstance(rng, 100, 100)
	engine := newEngine()

	for b.Loop() {
		if _, err := engine.Solve(in); err != nil {
			b.Fatal(err)
		}
	}
}

// randomInstance samples drivers and orders on grid cell centres with revenue in [11, 21].
func randomInstance(rng *rand.Rand, n, m int) matching.Instance {
	cell := func() matching.Point {
		return matching.Point{X: float64(rng.IntN(10)) + 0.5, Y: float64(rng.IntN(10)) + 0.5}
	}

	in := matching.Instance{
		Drivers: make([]matching.Driver, n),
		Orders:  make([]matching.Order, m),
	}
	for i := range in.Drivers {
		in.Drivers[i] = matching.Driver{Position: cell()}
	}
	for k := range in.Orders {
		origin := cell()
		destination := cell()
		for destination == origin {
			destination = cell()
		}
		in.Orders[k] = matching.Order{Origin: origin, Destination: destination, Revenue: int64(11 + rng.IntN(11))}
	}
	return in
}

// tableInstance encodes driver i as X=i and order j as X=j so tableModel can look the pair up.
func tableInstance(n, m int) matching.Instance {
	in := matching.Instance{
		Drivers: make([]matching.Driver, n),
		Orders:  make([]matching.Order, m),
	}
	for i := range in.Drivers {
		in.Drivers[i] = matching.Driver{Position: matching.Point{X: float64(i)}}
	}
	for k := range in.Orders {
		in.Orders[k] = matching.Order{
			Origin:      matching.Point{X: float64(k + 1)},
			Destination: matching.Point{X: float64(k + 1), Y: 1},
			Revenue:     1,
		}
	}
	return in
}

func tableModel(profit [][]float64) matching.CostFunc {
	return func(d matching.Driver, o matching.Order) float64 {
		return profit[int(d.Position.X)][int(o.Origin.X)-1]
	}
}

func bruteForce(in matching.Instance, model matching.CostModel) float64 {
	used := make([]bool, in.NumOrders())
	var best func(i int) float64
	best = func(i int) float64 {
		if i == in.NumDrivers() {
			return 0
		}
		top := best(i + 1) // decline
		for k := range in.Orders {
			if used[k] {
				continue
			}
			used[k] = true
			if v := model.Profit(in.Drivers[i], in.Orders[k]) + best(i+1); v > top {
				top = v
			}
			used[k] = false
		}
		return top
	}
	return best(0)
}

// preferredOptimum enumerates every assignment of a profit table and returns the most
// profitable one. Ties are broken driver by driver: profitable orders by number rank
// first, then decline, then the remaining orders.
func preferredOptimum(profit [][]float64) []matching.Outcome {
	n, m := len(profit), len(profit[0])
	rank := func(i, j int) int {
		switch {
		case j == 0:
			return m + 1
		case profit[i][j-1] > 0:
			return j
		default:
			return m + 1 + j
		}
	}

	var bestKey, bestPick []int
	bestTotal := math.Inf(-1)
	pick := make([]int, n) // 0 declines, j takes order j
	key := make([]int, n)
	used := make([]bool, m+1)

	var walk func(i int, total float64)
	walk = func(i int, total float64) {
		if i == n {
			if total > bestTotal || (total == bestTotal && slices.Compare(key, bestKey) < 0) {
				bestTotal = total
				bestKey = slices.Clone(key)
				bestPick = slices.Clone(pick)
			}
			return
		}
		for j := 0; j <= m; j++ {
			if j > 0 && used[j] {
				continue
			}
			used[j] = j > 0
			pick[i], key[i] = j, rank(i, j)
			gain := 0.0
			if j > 0 {
				gain = profit[i][j-1]
			}
			walk(i+1, total+gain)
			used[j] = false
		}
	}
	walk(0, 0)

	outcomes := make([]matching.Outcome, n)
	for i, j := range bestPick {
		if j == 0 {
			outcomes[i] = matching.Declined()
		} else {
			outcomes[i] = matching.AssignedTo(j)
		}
	}
	return outcomes
}
