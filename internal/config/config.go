// Package config loads the settings of a run from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSteps is the step limit used when none is configured.
const DefaultMaxSteps = 1_000_000

// ErrInvalidLogLevel is returned for a log level other than
// "info" or "debug".
var ErrInvalidLogLevel = errors.New("config: invalid log level")

// Config holds the settings of a run.
type Config struct {
	ROM            string `yaml:"rom"`
	MaxSteps       int    `yaml:"max_steps"`
	ROMOnly        bool   `yaml:"rom_only"`
	BreakOnIllegal bool   `yaml:"break_on_illegal"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		MaxSteps: DefaultMaxSteps,
		LogLevel: "info",
	}
}

// Load reads the config file at path, on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document on top of Default. Unknown fields
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the values of the configuration.
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("config: max_steps must not be negative, got %d", c.MaxSteps)
	}
	switch c.LogLevel {
	case "info", "debug":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}
