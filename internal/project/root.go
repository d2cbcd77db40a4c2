// SPDX-License-Identifier: MPL-2.0

// Package project locates the launched project on disk and reads its
// pyproject.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFileName is the project manifest at the project root.
const ManifestFileName = "pyproject.toml"

// ErrNotFound is returned when no project root can be located.
var ErrNotFound = errors.New("no pyproject.toml found")

// Project is a located project: its root directory and parsed manifest.
type Project struct {
	// Root is the absolute project root directory.
	Root string
	// Manifest is the parsed pyproject.toml.
	Manifest *Manifest
}

// BaseDir returns the absolute directory containing the running binary,
// with a best-effort symlink resolution so a symlinked launcher resolves to
// its install location. It works regardless of the caller's working
// directory.
func BaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// FindRoot walks up from start looking for a directory containing
// pyproject.toml. It returns ErrNotFound when the filesystem root is
// reached without a match.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		if fileExists(filepath.Join(dir, ManifestFileName)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched up from %s)", ErrNotFound, start)
		}
		dir = parent
	}
}

// Locate finds the project: first by walking up from the working directory,
// then from the binary's own directory (covering a launcher installed
// inside the project tree). The manifest is parsed as part of location.
func Locate() (*Project, error) {
	var starts []string
	if cwd, err := os.Getwd(); err == nil {
		starts = append(starts, cwd)
	}
	if base, err := BaseDir(); err == nil {
		starts = append(starts, base)
	}

	for _, start := range starts {
		root, err := FindRoot(start)
		if err != nil {
			continue
		}
		return Load(root)
	}
	return nil, ErrNotFound
}

// Load parses the manifest at root and returns the Project.
func Load(root string) (*Project, error) {
	manifest, err := LoadManifest(filepath.Join(root, ManifestFileName))
	if err != nil {
		return nil, err
	}
	return &Project{Root: root, Manifest: manifest}, nil
}

// SourceDir returns the directory injected into PYTHONPATH: the configured
// source dir, else "src" when present, else the root itself.
func (p *Project) SourceDir() string {
	if configured := p.Manifest.Tool.Pixelrun.SourceDir; configured != "" {
		return filepath.Join(p.Root, filepath.FromSlash(configured))
	}
	src := filepath.Join(p.Root, "src")
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		return src
	}
	return p.Root
}

// VenvDirName returns the configured virtual-environment directory name,
// empty when the manifest leaves it to the global config or default.
func (p *Project) VenvDirName() string {
	return p.Manifest.Tool.Pixelrun.VenvDir
}

// Module returns the Python module delegated to with "-m": the configured
// module, else the project name normalized per import rules.
func (p *Project) Module() string {
	if m := p.Manifest.Tool.Pixelrun.Module; m != "" {
		return m
	}
	return normalizeModuleName(p.Manifest.Project.Name)
}

// Entrypoint returns the manifest-level entry point command string, empty
// when none is configured.
func (p *Project) Entrypoint() string {
	return p.Manifest.Tool.Pixelrun.Entrypoint
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
