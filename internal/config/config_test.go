package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, dir string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

const validConfig = `
log_level = "debug"
strip_density = 60
strip_length = 5
development = true

[controller]
address = "127.0.0.1:30000"
animations = "./animations"
`

func TestLoadFileValid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), validConfig)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if got, want := cfg.LEDCount(), uint16(300); got != want {
		t.Errorf("LEDCount() = %d, want %d", got, want)
	}
	if got, want := cfg.Controller.Address, "127.0.0.1:30000"; got != want {
		t.Errorf("Controller.Address = %q, want %q", got, want)
	}
	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if level != zerolog.DebugLevel {
		t.Errorf("Level() = %v, want %v", level, zerolog.DebugLevel)
	}
}

func TestLoadFileRejectsZeroDensity(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
strip_density = 0
strip_length = 5
[controller]
address = "127.0.0.1:30000"
animations = "./animations"
`)

	_, err := LoadFile(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.field != "strip_density" {
		t.Errorf("field = %q, want strip_density", verr.field)
	}
}

func TestLoadFileRejectsBadAddress(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
strip_density = 30
strip_length = 5
[controller]
address = "not-an-address"
animations = "./animations"
`)

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected a validation error for a malformed address")
	}
}

func TestLoadFileRejectsMalformedToml(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "this is not valid toml {{{")

	_, err := LoadFile(path)
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

func TestFindPrefersConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, validConfig)

	t.Setenv(envConfigPath, path)

	got, err := Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != path {
		t.Errorf("Find() = %q, want %q", got, path)
	}
}

func TestFindWalksUpFromCwd(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, validConfig)

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Setenv(envConfigPath, "")

	got, err := Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != path {
		t.Errorf("Find() = %q, want %q", got, path)
	}
}
