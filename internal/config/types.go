// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// InheritAll passes the full host environment to the delegated process.
	InheritAll InheritMode = "all"
	// InheritNone starts the delegated environment from scratch.
	InheritNone InheritMode = "none"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidInheritMode is returned when an InheritMode value is not recognized.
	ErrInvalidInheritMode = errors.New("invalid env inherit mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidVenvDirName is returned when a VenvDirName value is unusable.
	ErrInvalidVenvDirName = errors.New("invalid venv directory name")
)

type (
	// InheritMode specifies how much of the host environment the delegated
	// process inherits. Defined locally to avoid coupling config to
	// internal/launcher; the CLI layer casts at the boundary.
	InheritMode string

	// InvalidInheritModeError is returned when an InheritMode value is not
	// recognized. It wraps ErrInvalidInheritMode for errors.Is() compatibility.
	InvalidInheritModeError struct {
		Value InheritMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// VenvDirName is the directory name of the isolated environment,
	// relative to the project root. A valid name is non-empty, not
	// whitespace-only, and contains no path separators.
	VenvDirName string

	// InvalidVenvDirNameError is returned when a VenvDirName value is
	// unusable. It wraps ErrInvalidVenvDirName for errors.Is() compatibility.
	InvalidVenvDirNameError struct {
		Value VenvDirName
	}

	// Config is the root configuration for pixelrun.
	Config struct {
		// Python is an explicit interpreter path overriding resolution.
		Python string `mapstructure:"python"`
		// VenvDir is the isolated-environment directory name.
		VenvDir VenvDirName `mapstructure:"venv_dir"`
		// Entrypoint is a command string replacing the default
		// "<python> -m <module>" delegation, parsed with shell field
		// splitting at run time.
		Entrypoint string `mapstructure:"entrypoint"`
		// Env configures delegated-environment construction.
		Env EnvConfig `mapstructure:"env"`
		// UI configures CLI presentation.
		UI UIConfig `mapstructure:"ui"`
	}

	// EnvConfig configures how the delegated environment is built.
	EnvConfig struct {
		// Inherit selects host-environment inheritance (all|none).
		Inherit InheritMode `mapstructure:"inherit"`
		// Deny lists host variable names never passed through.
		Deny []string `mapstructure:"deny"`
		// Files are dotenv files loaded relative to the project root.
		// A trailing '?' marks a file optional.
		Files []string `mapstructure:"files"`
		// Vars are static variables set for every delegation.
		Vars map[string]string `mapstructure:"vars"`
	}

	// UIConfig configures CLI presentation.
	UIConfig struct {
		// Verbose enables debug diagnostics by default.
		Verbose bool `mapstructure:"verbose"`
		// ColorScheme selects the terminal color scheme.
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
	}
)

// Error implements the error interface.
func (e *InvalidInheritModeError) Error() string {
	return fmt.Sprintf("invalid env inherit mode %q (must be one of: all, none)", e.Value)
}

// Unwrap returns ErrInvalidInheritMode for errors.Is detection.
func (e *InvalidInheritModeError) Unwrap() error { return ErrInvalidInheritMode }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be one of: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is detection.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidVenvDirNameError) Error() string {
	return fmt.Sprintf("invalid venv directory name %q (must be a plain directory name)", e.Value)
}

// Unwrap returns ErrInvalidVenvDirName for errors.Is detection.
func (e *InvalidVenvDirNameError) Unwrap() error { return ErrInvalidVenvDirName }

// IsValid returns whether the InheritMode is recognized, with validation
// errors when it is not.
func (m InheritMode) IsValid() (bool, []error) {
	switch m {
	case InheritAll, InheritNone:
		return true, nil
	}
	return false, []error{&InvalidInheritModeError{Value: m}}
}

// IsValid returns whether the ColorScheme is recognized, with validation
// errors when it is not.
func (s ColorScheme) IsValid() (bool, []error) {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	}
	return false, []error{&InvalidColorSchemeError{Value: s}}
}

// IsValid returns whether the VenvDirName is usable, with validation errors
// when it is not.
func (n VenvDirName) IsValid() (bool, []error) {
	trimmed := strings.TrimSpace(string(n))
	if trimmed == "" || strings.ContainsAny(trimmed, `/\`) {
		return false, []error{&InvalidVenvDirNameError{Value: n}}
	}
	return true, nil
}

// Validate checks the whole configuration and returns all violations.
func (c *Config) Validate() []error {
	var errs []error
	if ok, es := c.VenvDir.IsValid(); !ok {
		errs = append(errs, es...)
	}
	if ok, es := c.Env.Inherit.IsValid(); !ok {
		errs = append(errs, es...)
	}
	if ok, es := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, es...)
	}
	return errs
}
