package cmd

import (
	"testing"

	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig(env(map[string]string{"DB_HOST": "db", "DB_PORT": "5432"}))

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPPort, c.HTTPPort)
	assert.Equal(t, DefaultMatchingSchedule, c.MatchingSchedule)
	assert.Equal(t, DefaultMovementSchedule, c.MovementSchedule)
	assert.Equal(t, 0, c.MatchingMaxOrders)
	assert.InDelta(t, matching.DefaultTolerance, c.MatchingTolerance, 0)
	assert.NotZero(t, c.GeneratorSeed)
	assert.Equal(t, "db", c.ConnectionSettings().Host)
	assert.Contains(t, c.ConnectionSettings().DSN(), "sslmode=disable")
}

func TestLoadConfig_Overrides(t *testing.T) {
	c, err := LoadConfig(env(map[string]string{
		"HTTP_PORT":           "9090",
		"MATCHING_SCHEDULE":   "*/10 * * * * *",
		"MATCHING_MAX_ORDERS": "25",
		"MATCHING_TOLERANCE":  "1e-6",
		"GENERATOR_SEED":      "42",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", c.HTTPPort)
	assert.Equal(t, "*/10 * * * * *", c.MatchingSchedule)
	assert.Equal(t, 25, c.MatchingMaxOrders)
	assert.Equal(t, uint64(42), c.GeneratorSeed)
	assert.InDelta(t, 1e-6, c.MatchingOptions().Tolerance, 0)
}

func TestLoadConfig_ReportsEveryMalformedValue(t *testing.T) {
	_, err := LoadConfig(env(map[string]string{
		"MATCHING_MAX_ORDERS": "-1",
		"MATCHING_TOLERANCE":  "zero",
		"GENERATOR_SEED":      "x",
	}))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "MATCHING_MAX_ORDERS")
	assert.Contains(t, err.Error(), "MATCHING_TOLERANCE")
	assert.Contains(t, err.Error(), "GENERATOR_SEED")
}
