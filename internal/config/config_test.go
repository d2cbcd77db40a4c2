// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// resetOverrides restores package overrides after a test.
func resetOverrides(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetConfigFilePathOverride("")
		SetConfigDirOverride("")
	})
}

// TestLoad_Defaults verifies the built-in defaults when no config file
// exists.
func TestLoad_Defaults(t *testing.T) {
	resetOverrides(t)
	SetConfigDirOverride(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VenvDir != ".venv" {
		t.Errorf("VenvDir = %q, want %q", cfg.VenvDir, ".venv")
	}
	if cfg.Env.Inherit != InheritAll {
		t.Errorf("Env.Inherit = %q, want %q", cfg.Env.Inherit, InheritAll)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
	if cfg.Python != "" || cfg.Entrypoint != "" {
		t.Error("Load() defaults should leave python and entrypoint empty")
	}
}

// TestLoad_FromFile verifies reading config.toml from the config directory.
func TestLoad_FromFile(t *testing.T) {
	resetOverrides(t)
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	content := `python = "/opt/python/bin/python3"
venv_dir = "env"
entrypoint = "python -m pypixelcolor"

[env]
inherit = "none"
deny = ["SECRET"]
files = [".env?"]

[env.vars]
PIXEL_MODE = "demo"

[ui]
verbose = true
color_scheme = "dark"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Python != "/opt/python/bin/python3" {
		t.Errorf("Python = %q", cfg.Python)
	}
	if cfg.VenvDir != "env" {
		t.Errorf("VenvDir = %q, want %q", cfg.VenvDir, "env")
	}
	if cfg.Env.Inherit != InheritNone {
		t.Errorf("Env.Inherit = %q, want %q", cfg.Env.Inherit, InheritNone)
	}
	if len(cfg.Env.Deny) != 1 || cfg.Env.Deny[0] != "SECRET" {
		t.Errorf("Env.Deny = %v", cfg.Env.Deny)
	}
	if cfg.Env.Vars["PIXEL_MODE"] != "demo" {
		t.Errorf("Env.Vars = %v", cfg.Env.Vars)
	}
	if !cfg.UI.Verbose || cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

// TestLoad_ExplicitFileOverride verifies the --config path is used
// exclusively and that a missing file is an error.
func TestLoad_ExplicitFileOverride(t *testing.T) {
	resetOverrides(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("venv_dir = \"virt\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	SetConfigFilePathOverride(path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VenvDir != "virt" {
		t.Errorf("VenvDir = %q, want %q", cfg.VenvDir, "virt")
	}

	SetConfigFilePathOverride(filepath.Join(dir, "absent.toml"))
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for missing explicit config file")
	}
}

// TestLoad_EnvOverrides verifies PIXELRUN_* environment binding, including
// nested keys, and that env values win over file values.
func TestLoad_EnvOverrides(t *testing.T) {
	resetOverrides(t)
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("venv_dir = \"env\"\n\n[ui]\nverbose = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PIXELRUN_PYTHON", "/opt/py/bin/python3")
	t.Setenv("PIXELRUN_VENV_DIR", "virt")
	t.Setenv("PIXELRUN_ENV_INHERIT", "none")
	t.Setenv("PIXELRUN_UI_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Python != "/opt/py/bin/python3" {
		t.Errorf("Python = %q, want env override", cfg.Python)
	}
	if cfg.VenvDir != "virt" {
		t.Errorf("VenvDir = %q, want %q (env over file)", cfg.VenvDir, "virt")
	}
	if cfg.Env.Inherit != InheritNone {
		t.Errorf("Env.Inherit = %q, want %q (nested key binding)", cfg.Env.Inherit, InheritNone)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true (nested key binding over file)")
	}
}

// TestLoad_InvalidValues verifies that unrecognized enum values fail
// validation with the matching sentinel error.
func TestLoad_InvalidValues(t *testing.T) {
	resetOverrides(t)
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[env]\ninherit = \"some\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected validation error")
	}
	if !errors.Is(err, ErrInvalidInheritMode) {
		t.Errorf("Load() error = %v, want ErrInvalidInheritMode", err)
	}
}

// TestLoad_MalformedTOML verifies the error path for syntax errors.
func TestLoad_MalformedTOML(t *testing.T) {
	resetOverrides(t)
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("venv_dir = [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for malformed TOML")
	}
}
