package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/voltlab/volt/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".volt.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/volt"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'volt init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .volt.yaml in current directory
// 3. ~/.config/volt/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Global config
	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if
// no config file exists. The dashboard runs fine without any config.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// parseConfig unmarshals the viper instance into a Config, layering it
// over the defaults so omitted keys keep their default values.
func parseConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config file structure",
			"Compare your config against 'volt init' output")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the config for values the sampler cannot run with.
func (c *Config) Validate() error {
	switch c.Mode {
	case "performance", "balanced", "eco":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown mode %q", c.Mode),
			"Use one of: performance, balanced, eco")
	}

	if c.Refresh < 50*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"Refresh interval too short",
			"Minimum refresh is 50ms; the default 200ms is usually right")
	}

	if c.SlowInterval < time.Second {
		return errors.New(errors.ErrConfig,
			"slow_interval too short",
			"Health polling is expensive; use at least 1s (default 30s)")
	}

	if c.FetchTimeout < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"fetch_timeout too short",
			"External commands need at least 100ms to complete")
	}

	if c.History < 2 {
		return errors.New(errors.ErrConfig,
			"History size too small",
			"Use at least 2 samples (default 120)")
	}

	if len(c.Commands.Battery) == 0 || len(c.Commands.Health) == 0 {
		return errors.New(errors.ErrConfig,
			"Empty command override",
			"commands.battery and commands.health must name an executable and its arguments")
	}

	return nil
}
