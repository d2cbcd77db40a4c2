// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"maps"
	"os"
	"strings"

	"pixelrun-cli/pkg/pathlist"
)

const (
	// EnvInheritAll passes the full host environment through (minus denied names).
	EnvInheritAll EnvInheritMode = "all"
	// EnvInheritNone starts the child environment from scratch.
	EnvInheritNone EnvInheritMode = "none"
)

type (
	// EnvInheritMode controls how much of the host environment the
	// delegated process inherits.
	EnvInheritMode string

	// EnvBuilder constructs the environment map for the delegated process.
	// It applies a 7-level precedence hierarchy (higher number wins):
	//
	//  1. Host environment (filtered by inherit mode and deny list)
	//  2. Config-level env files (dotenv, loaded in order)
	//  3. Config-level env vars
	//  4. Overlays (isolated-environment activation)
	//  5. Path-list injection (source dir prepended to PYTHONPATH once)
	//  6. --env-file flag files (loaded in flag order)
	//  7. --env-var flag values - HIGHEST priority
	//
	// The host environment is read, never written: the resulting map is
	// handed to the spawn call and the launcher's own environment stays
	// untouched.
	EnvBuilder struct {
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used.
		Environ func() []string
	}

	// EnvOverlay mutates an environment map in place. Overlays express
	// activation steps (VIRTUAL_ENV, PATH adjustment) without coupling the
	// builder to their origin.
	EnvOverlay func(env map[string]string)

	// EnvSpec describes the inputs for building a delegated environment.
	EnvSpec struct {
		// Inherit selects how the host environment seeds the map.
		// Empty means EnvInheritAll.
		Inherit EnvInheritMode
		// Deny lists host variable names that are never inherited.
		Deny []string
		// Files are config-level dotenv paths, resolved against BasePath.
		Files []string
		// BasePath anchors relative paths in Files (the project root).
		BasePath string
		// Vars are config-level static variables.
		Vars map[string]string
		// Overlays run after config vars, in order.
		Overlays []EnvOverlay
		// PythonPathEntry is prepended to PYTHONPATH exactly once when
		// non-empty (the project source directory).
		PythonPathEntry string
		// RuntimeFiles are --env-file flag paths, resolved against Cwd.
		RuntimeFiles []string
		// Cwd anchors relative paths in RuntimeFiles; empty means os.Getwd().
		Cwd string
		// RuntimeVars are --env-var flag values (highest priority).
		RuntimeVars map[string]string
	}
)

// NewEnvBuilder creates an EnvBuilder reading the real host environment.
func NewEnvBuilder() *EnvBuilder {
	return &EnvBuilder{}
}

// Build constructs the environment map following the documented precedence.
func (b *EnvBuilder) Build(spec EnvSpec) (map[string]string, error) {
	env := b.hostEnv(spec)

	// 2. Config-level env files
	for _, path := range spec.Files {
		if err := LoadEnvFile(env, path, spec.BasePath); err != nil {
			return nil, err
		}
	}

	// 3. Config-level env vars
	maps.Copy(env, spec.Vars)

	// 4. Overlays (environment activation)
	for _, overlay := range spec.Overlays {
		overlay(env)
	}

	// 5. Source-directory injection, deduplicated and idempotent
	if spec.PythonPathEntry != "" {
		env["PYTHONPATH"] = pathlist.PrependUnique(env["PYTHONPATH"], spec.PythonPathEntry)
	}

	// 6. --env-file flag files
	for _, path := range spec.RuntimeFiles {
		if err := LoadEnvFileFromCwd(env, path, spec.Cwd); err != nil {
			return nil, err
		}
	}

	// 7. --env-var flag values (highest priority)
	maps.Copy(env, spec.RuntimeVars)

	return env, nil
}

// hostEnv seeds the map from the host environment per the inherit config.
func (b *EnvBuilder) hostEnv(spec EnvSpec) map[string]string {
	env := make(map[string]string)
	if spec.Inherit == EnvInheritNone {
		return env
	}

	denySet := make(map[string]struct{}, len(spec.Deny))
	for _, name := range spec.Deny {
		denySet[name] = struct{}{}
	}

	environ := b.Environ
	if environ == nil {
		environ = os.Environ
	}

	for _, entry := range environ() {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		if _, denied := denySet[name]; denied {
			continue
		}
		env[name] = value
	}

	return env
}

// IsValid returns whether the EnvInheritMode is a recognized value.
func (m EnvInheritMode) IsValid() bool {
	switch m {
	case EnvInheritAll, EnvInheritNone, "":
		return true
	}
	return false
}
