package commands_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, x, y kernel.Coordinate) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	return loc
}

func newDriver(t *testing.T, x, y kernel.Coordinate) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Test Driver", 2, mustLocation(t, x, y))
	require.NoError(t, err)
	return d
}

func newOrder(t *testing.T, ox, oy, dx, dy kernel.Coordinate, revenue int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), mustLocation(t, ox, oy), mustLocation(t, dx, dy), revenue)
	require.NoError(t, err)
	return o
}
