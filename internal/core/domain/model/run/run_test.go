package run_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	d1, d2, d3 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	o1, o2 := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should sum profits of served orders", func(t *testing.T) {
		r, err := run.NewRun(kernel.NewUUID(), now, []run.Assignment{
			{DriverID: d1, OrderID: &o1, Profit: 12.5},
			{DriverID: d2},
			{DriverID: d3, OrderID: &o2, Profit: 3.25},
		}, 4)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.InDelta(t, 15.75, r.TotalProfit(), 1e-12)
		assert.Equal(t, 2, r.Served())
		assert.Equal(t, 4, r.OrdersWaited())
		assert.Equal(t, time.UTC, r.CreatedAt().Location())
		assert.True(t, r.Assignments()[1].IsDeclined())
	})

	t.Run("should keep its assignments private", func(t *testing.T) {
		assignments := []run.Assignment{{DriverID: d1, OrderID: &o1, Profit: 1}}
		r, err := run.NewRun(kernel.NewUUID(), now, assignments, 1)
		require.NoError(t, err)

		assignments[0].Profit = 99
		*assignments[0].OrderID = kernel.NewUUID()

		assert.InDelta(t, 1, r.Assignments()[0].Profit, 1e-12)
		assert.True(t, r.Assignments()[0].OrderID.IsEqual(o1))
	})

	tests := []struct {
		name        string
		assignments []run.Assignment
		waited      int
	}{
		{
			name:        "driver twice",
			assignments: []run.Assignment{{DriverID: d1}, {DriverID: d1}},
		},
		{
			name:        "order served twice",
			assignments: []run.Assignment{{DriverID: d1, OrderID: &o1, Profit: 1}, {DriverID: d2, OrderID: &o1, Profit: 1}},
			waited:      2,
		},
		{
			name:        "declined with profit",
			assignments: []run.Assignment{{DriverID: d1, Profit: 2}},
		},
		{
			name:        "more served than waited",
			assignments: []run.Assignment{{DriverID: d1, OrderID: &o1, Profit: 1}},
			waited:      0,
		},
		{
			name:        "invalid driver",
			assignments: []run.Assignment{{}},
		},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			r, err := run.NewRun(kernel.NewUUID(), now, tt.assignments, tt.waited)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Nil(t, r)
		})
	}

	t.Run("should require id and time", func(t *testing.T) {
		_, err := run.NewRun(kernel.UUID{}, time.Time{}, nil, 0)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRun_Validate(t *testing.T) {
	var zero run.Run
	require.ErrorIs(t, zero.Validate(), run.ErrRunIsNotConstructed)
}
