package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .volt.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Mode is the initial power mode: "performance", "balanced", or "eco".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Refresh is the dashboard redraw cadence (independent of sampling).
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	// SlowInterval is how often the expensive health/condition poll runs.
	// Constant across power modes.
	SlowInterval time.Duration `yaml:"slow_interval" mapstructure:"slow_interval"`

	// FetchTimeout bounds each external command invocation.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// History is the number of wattage samples retained for the graph.
	History int `yaml:"history" mapstructure:"history"`

	Commands CommandsConfig `yaml:"commands" mapstructure:"commands"`
}

// CommandsConfig holds the external commands sampled for power data.
// Overridable for hosts where the defaults live elsewhere, and for tests.
type CommandsConfig struct {
	// Battery returns live battery and adapter telemetry text.
	Battery []string `yaml:"battery" mapstructure:"battery"`

	// Health returns battery identity/condition text (slow tier).
	Health []string `yaml:"health" mapstructure:"health"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		Mode:         "balanced",
		Refresh:      200 * time.Millisecond,
		SlowInterval: 30 * time.Second,
		FetchTimeout: 5 * time.Second,
		History:      120,
		Commands: CommandsConfig{
			Battery: []string{"ioreg", "-w0", "-rn", "AppleSmartBattery"},
			Health:  []string{"system_profiler", "SPPowerDataType"},
		},
	}
}
