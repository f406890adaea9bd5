package tripapi

import (
	"os"
	"strconv"
)

// Op identifies one kind of trip API call.
type Op string

const (
	OpListDestinations Op = "list_destinations"
	OpFetchPlans       Op = "fetch_plans"
	OpRegisterTrip     Op = "register_trip"
	OpFetchProgress    Op = "fetch_progress"
	OpWriteProgress    Op = "write_progress"
	OpSharedTrip       Op = "shared_trip"
)

// Config holds all configuration for the trip API client.
type Config struct {
	Enabled           bool
	LogCalls          bool
	Endpoint          string
	TimeoutMs         int
	RegisterTimeoutMs int // overrides TimeoutMs for trip registration if > 0
	ProgressTimeoutMs int // overrides TimeoutMs for progress reads and writes if > 0
	ContentTimeoutMs  int // overrides TimeoutMs for destination and plan content if > 0
}

// DefaultConfig returns a Config with sensible defaults. The API is enabled
// by default and points at a locally running `itinera serve`.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		LogCalls:  false,
		Endpoint:  "http://localhost:8001/api",
		TimeoutMs: 10000,
	}
}

// LoadConfig reads trip API configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from ITINERA_API_* environment variables.
// Invalid numeric values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ITINERA_API_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv("ITINERA_API_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogCalls = b
		}
	}
	if v := os.Getenv("ITINERA_API_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	applyTimeoutEnv(&c.TimeoutMs, "ITINERA_API_TIMEOUT_MS")
	applyTimeoutEnv(&c.RegisterTimeoutMs, "ITINERA_API_REGISTER_TIMEOUT_MS")
	applyTimeoutEnv(&c.ProgressTimeoutMs, "ITINERA_API_PROGRESS_TIMEOUT_MS")
	applyTimeoutEnv(&c.ContentTimeoutMs, "ITINERA_API_CONTENT_TIMEOUT_MS")
}

// OpTimeout returns the effective timeout in milliseconds for an op.
// Uses the op group's timeout if set, otherwise the global timeout.
func (c Config) OpTimeout(op Op) int {
	var specific int
	switch op {
	case OpRegisterTrip:
		specific = c.RegisterTimeoutMs
	case OpFetchProgress, OpWriteProgress:
		specific = c.ProgressTimeoutMs
	case OpListDestinations, OpFetchPlans, OpSharedTrip:
		specific = c.ContentTimeoutMs
	}
	if specific > 0 {
		return specific
	}
	return c.TimeoutMs
}

func applyTimeoutEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
