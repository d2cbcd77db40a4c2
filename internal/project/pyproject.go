// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type (
	// Manifest is the subset of pyproject.toml the launcher reads. All
	// other tables (build system, dependencies) belong to the external
	// packaging tools and are ignored here.
	Manifest struct {
		Project ProjectTable `toml:"project"`
		Tool    ToolTable    `toml:"tool"`
	}

	// ProjectTable is the standard [project] table.
	ProjectTable struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	}

	// ToolTable carries the launcher's own [tool.pixelrun] settings.
	ToolTable struct {
		Pixelrun Settings `toml:"pixelrun"`
	}

	// Settings is the [tool.pixelrun] table. Every field is optional;
	// zero values fall back to conventions or the global config.
	Settings struct {
		// Module overrides the module passed to the interpreter with -m.
		Module string `toml:"module"`
		// VenvDir overrides the virtual-environment directory name.
		VenvDir string `toml:"venv-dir"`
		// SourceDir overrides the directory injected into PYTHONPATH,
		// relative to the project root.
		SourceDir string `toml:"source-dir"`
		// Entrypoint is a full command string replacing the default
		// "<python> -m <module>" delegation.
		Entrypoint string `toml:"entrypoint"`
	}
)

// LoadManifest reads and parses a pyproject.toml file.
func LoadManifest(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &manifest, nil
}

// normalizeModuleName maps a distribution name to its conventional import
// name: lowercased with hyphens and dots replaced by underscores.
func normalizeModuleName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	return name
}
