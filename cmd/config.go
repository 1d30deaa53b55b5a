package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/pkg/errs"
)

const (
	DefaultHTTPPort         = "8080"
	DefaultMatchingSchedule = "*/5 * * * * *"
	DefaultMovementSchedule = "* * * * * *"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MatchingSchedule  string
	MovementSchedule  string
	MatchingMaxOrders int
	MatchingTolerance float64
	// GeneratorSeed seeds random locations and routes; 0 picks one from the clock.
	GeneratorSeed uint64
}

// LoadConfig reads the configuration through getenv. Unset optional keys fall back
// to their defaults; malformed numbers are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	c := Config{
		HTTPPort:         withDefault(getenv("HTTP_PORT"), DefaultHTTPPort),
		DBHost:           getenv("DB_HOST"),
		DBPort:           getenv("DB_PORT"),
		DBUser:           getenv("DB_USER"),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME"),
		DBSslMode:        getenv("DB_SSLMODE"),
		MatchingSchedule: withDefault(getenv("MATCHING_SCHEDULE"), DefaultMatchingSchedule),
		MovementSchedule: withDefault(getenv("MOVEMENT_SCHEDULE"), DefaultMovementSchedule),
	}

	var problems []error

	if v := getenv("MATCHING_MAX_ORDERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("MATCHING_MAX_ORDERS",
				fmt.Errorf("%q is not a non-negative integer", v)))
		}
		c.MatchingMaxOrders = n
	}

	c.MatchingTolerance = matching.DefaultTolerance
	if v := getenv("MATCHING_TOLERANCE"); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil || tol <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("MATCHING_TOLERANCE",
				fmt.Errorf("%q is not a positive number", v)))
		}
		c.MatchingTolerance = tol
	}

	if v := getenv("GENERATOR_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("GENERATOR_SEED", err))
		}
		c.GeneratorSeed = seed
	}
	if c.GeneratorSeed == 0 {
		c.GeneratorSeed = uint64(time.Now().UnixNano())
	}

	if len(problems) > 0 {
		return Config{}, errors.Join(problems...)
	}
	return c, nil
}

// ConnectionSettings returns the database part of the configuration.
func (c Config) ConnectionSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// MatchingOptions returns the engine options.
func (c Config) MatchingOptions() matching.Options {
	opts := matching.DefaultOptions()
	opts.Tolerance = c.MatchingTolerance
	return opts
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
