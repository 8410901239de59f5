// Package config loads targo's user configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the targo user configuration.
type Config struct {
	// StoreRoot overrides the store location. Empty means
	// $CARGO_HOME/targo.
	StoreRoot string `yaml:"store_root"`
	// CargoBin overrides the cargo binary. Empty means $CARGO, then
	// "cargo" from PATH.
	CargoBin string        `yaml:"cargo_bin"`
	Logging  LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Verbosity int `yaml:"verbosity"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// Path returns the config file location: $CARGO_HOME/targo/config.yaml
// when CARGO_HOME is set, otherwise the XDG config home.
func Path() string {
	if cargoHome := os.Getenv("CARGO_HOME"); cargoHome != "" {
		return filepath.Join(cargoHome, "targo", "config.yaml")
	}
	return filepath.Join(xdg.ConfigHome, "targo", "config.yaml")
}

// Load reads the configuration from path. A missing file yields the
// defaults; that is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// StoreDir resolves the store root: the config override when set,
// otherwise $CARGO_HOME/targo, otherwise ~/.cargo/targo.
func (c *Config) StoreDir() (string, error) {
	if c.StoreRoot != "" {
		return c.StoreRoot, nil
	}
	if cargoHome := os.Getenv("CARGO_HOME"); cargoHome != "" {
		return filepath.Join(cargoHome, "targo"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine cargo home: %w", err)
	}
	return filepath.Join(home, ".cargo", "targo"), nil
}
