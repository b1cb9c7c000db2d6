package config

import (
	"testing"
	"time"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero terminals", func(c *Config) { c.Terminals = 0 }},
		{"negative terminals", func(c *Config) { c.Terminals = -3 }},
		{"too many terminals", func(c *Config) { c.Terminals = MaxTerminals + 1 }},
		{"zero think-time", func(c *Config) { c.ThinkTimeSec = 0 }},
		{"negative think-time", func(c *Config) { c.ThinkTimeSec = -0.5 }},
		{"zero duration", func(c *Config) { c.DurationSec = 0 }},
		{"empty base URL", func(c *Config) { c.BaseURL = "" }},
		{"relative base URL", func(c *Config) { c.BaseURL = "localhost:4000" }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tc.name)
			}
		})
	}
}

func TestGetThinkTime(t *testing.T) {
	cfg := Default()
	cfg.ThinkTimeSec = 0.5
	if got := cfg.GetThinkTime(); got != 500*time.Millisecond {
		t.Errorf("Expected 500ms think-time, got: %v", got)
	}
}

func TestGetRequestTimeout_Default(t *testing.T) {
	cfg := Config{}
	if got := cfg.GetRequestTimeout(); got != DefaultRequestTimeout {
		t.Errorf("Expected default timeout %v, got: %v", DefaultRequestTimeout, got)
	}

	cfg.RequestTimeout = 2 * time.Second
	if got := cfg.GetRequestTimeout(); got != 2*time.Second {
		t.Errorf("Expected 2s timeout, got: %v", got)
	}
}
