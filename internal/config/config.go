package config

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults mirror the documented CLI defaults.
const (
	DefaultTerminals      = 10
	DefaultThinkTimeSec   = 1.0
	DefaultDurationSec    = 30
	DefaultBaseURL        = "http://localhost:4000"
	DefaultSeed           = 42
	DefaultRequestTimeout = 10 * time.Second

	// MaxTerminals caps the terminal count to keep the shared connection
	// pool within sane bounds.
	MaxTerminals = 1000
)

// Config holds the full configuration for one benchmark run.
type Config struct {
	Terminals      int           // Number of emulated terminals (concurrent users)
	ThinkTimeSec   float64       // Average think-time t between requests, in seconds
	DurationSec    int           // Run duration d per terminal, in seconds
	BaseURL        string        // Base URL of the backend under test
	Seed           int64         // Base seed for per-terminal random generators
	RequestTimeout time.Duration // Timeout for individual requests
	WorkloadFile   string        // Optional YAML file overriding the built-in query mix
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		Terminals:      DefaultTerminals,
		ThinkTimeSec:   DefaultThinkTimeSec,
		DurationSec:    DefaultDurationSec,
		BaseURL:        DefaultBaseURL,
		Seed:           DefaultSeed,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Validate validates the run configuration. Configuration errors are fatal
// and must be surfaced before any terminal starts.
func (c *Config) Validate() error {
	if c.Terminals <= 0 {
		return fmt.Errorf("terminal count must be greater than 0")
	}
	if c.Terminals > MaxTerminals {
		return fmt.Errorf("terminal count cannot exceed %d", MaxTerminals)
	}
	if c.ThinkTimeSec <= 0 {
		return fmt.Errorf("average think-time must be greater than 0")
	}
	if c.DurationSec <= 0 {
		return fmt.Errorf("run duration must be greater than 0")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base URL must be absolute, got %q", c.BaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout cannot be negative")
	}
	return nil
}

// GetThinkTime returns the average think-time as time.Duration.
func (c *Config) GetThinkTime() time.Duration {
	return time.Duration(c.ThinkTimeSec * float64(time.Second))
}

// GetDuration returns the run duration as time.Duration.
func (c *Config) GetDuration() time.Duration {
	return time.Duration(c.DurationSec) * time.Second
}

// GetRequestTimeout returns the per-request timeout, applying the default
// when unset.
func (c *Config) GetRequestTimeout() time.Duration {
	if c.RequestTimeout == 0 {
		return DefaultRequestTimeout
	}
	return c.RequestTimeout
}
