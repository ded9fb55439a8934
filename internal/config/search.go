package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	envConfigPath  = "CONFIG_PATH"
	systemConfig   = "/etc/lights/config.toml"
	configFileName = "config.toml"
)

// ErrNotFound is returned by Find when no candidate path exists.
var ErrNotFound = errors.New("no config.toml found in any search location")

// Find resolves config.toml's location per spec.md §6: $CONFIG_PATH if
// set, then /etc/lights/config.toml, then the nearest config.toml
// walking up from the current working directory.
func Find() (string, error) {
	if p := os.Getenv(envConfigPath); p != "" {
		if fileExists(p) {
			return p, nil
		}
		return "", &NotFoundError{candidate: p}
	}

	if fileExists(systemConfig) {
		return systemConfig, nil
	}

	if p, ok := findUpward(configFileName); ok {
		return p, nil
	}

	return "", ErrNotFound
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// findUpward walks from the current working directory towards the
// filesystem root looking for name, matching the "nearest config.toml"
// language in spec.md §6.
func findUpward(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// NotFoundError reports that $CONFIG_PATH was set but did not point at
// a readable file.
type NotFoundError struct {
	candidate string
}

func (e *NotFoundError) Error() string {
	return "CONFIG_PATH set to \"" + e.candidate + "\" but no such file exists"
}
