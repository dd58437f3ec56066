// Package config loads ByteCraft's optional TOML run configuration:
// the host-level step cap and the diagnostic trace destination.
// Neither setting is architectural — both are purely host-side
// conveniences layered on top of the VM's own state machine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is ByteCraft's run configuration.
type Config struct {
	Execution struct {
		MaxSteps uint64 `toml:"max_steps"`
	} `toml:"execution"`

	Trace struct {
		Enabled      bool   `toml:"enabled"`
		OutputFile   string `toml:"output_file"`
		NumberFormat string `toml:"number_format"` // hex, dec
	} `toml:"trace"`
}

// DefaultConfig returns a configuration with no step cap and tracing
// disabled.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxSteps = 0
	cfg.Trace.Enabled = false
	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.NumberFormat = "hex"
	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "bytecraft")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "bytecraft.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "bytecraft")

	default:
		return "bytecraft.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "bytecraft.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path. A missing file is not an
// error — it yields DefaultConfig().
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes configuration to path, creating its directory if
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	return nil
}
