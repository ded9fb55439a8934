// Package config loads the controller's TOML configuration file,
// resolving its location via a fixed search order and validating the
// decoded values before the rest of the process starts up.
package config

import (
	"fmt"
	"net"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Controller holds the network-facing settings: where the RPC server
// listens and where animations are persisted.
type Controller struct {
	Address    string `toml:"address"`
	Animations string `toml:"animations"`
}

// Config is the decoded shape of config.toml.
type Config struct {
	LogLevel     string     `toml:"log_level"`
	StripDensity uint16     `toml:"strip_density"`
	StripLength  uint16     `toml:"strip_length"`
	Development  bool       `toml:"development"`
	Controller   Controller `toml:"controller"`
}

// LEDCount returns the total addressable pixel count: density (pixels
// per meter) times length (meters), per spec.md §6.
func (c *Config) LEDCount() uint16 {
	return c.StripDensity * c.StripLength
}

// Level parses LogLevel into a zerolog.Level, defaulting to info for
// an empty string.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(c.LogLevel)
}

// Load finds config.toml via Find and decodes + validates it. A bad or
// missing configuration is the one error the caller is expected to
// treat as fatal at startup (spec.md §7: "the only permitted panics
// are during startup initialization").
func Load() (*Config, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile decodes and validates the TOML file at path.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, &DecodeError{path: path, cause: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.StripDensity == 0 {
		return &ValidationError{field: "strip_density", reason: "must be non-zero"}
	}
	if c.StripLength == 0 {
		return &ValidationError{field: "strip_length", reason: "must be non-zero"}
	}
	if c.Controller.Address == "" {
		return &ValidationError{field: "controller.address", reason: "must not be empty"}
	}
	if _, _, err := net.SplitHostPort(c.Controller.Address); err != nil {
		return &ValidationError{field: "controller.address", reason: fmt.Sprintf("not a valid host:port: %v", err)}
	}
	if c.Controller.Animations == "" {
		return &ValidationError{field: "controller.animations", reason: "must not be empty"}
	}
	if _, err := c.Level(); err != nil {
		return &ValidationError{field: "log_level", reason: err.Error()}
	}
	return nil
}
