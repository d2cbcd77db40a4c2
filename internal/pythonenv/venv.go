// SPDX-License-Identifier: MPL-2.0

// Package pythonenv resolves isolated Python environments (virtualenvs) and
// ambient interpreters for the launcher.
package pythonenv

import (
	"os"
	"path/filepath"
	"runtime"

	"pixelrun-cli/pkg/pathlist"
)

// DefaultVenvDirName is the conventional virtual-environment directory name.
const DefaultVenvDirName = ".venv"

// Venv describes a detected virtual environment.
type Venv struct {
	// Dir is the absolute path of the environment directory.
	Dir string
	// BinDir is the scripts directory ("bin" on POSIX, "Scripts" on Windows).
	BinDir string
	// Python is the path of the interpreter inside the environment.
	Python string
}

// Detect looks for a virtual environment named name under root. It reports
// false when the directory is missing or holds no interpreter. No deeper
// validation happens here: a corrupted environment surfaces later as an
// interpreter-launch failure.
func Detect(root, name string) (*Venv, bool) {
	if name == "" {
		name = DefaultVenvDirName
	}
	dir := filepath.Join(root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, false
	}

	binDir, python := interpreterLayout(dir)
	if _, err := os.Stat(python); err != nil {
		return nil, false
	}

	return &Venv{Dir: dir, BinDir: binDir, Python: python}, true
}

// interpreterLayout returns the platform-specific scripts directory and
// interpreter path for a venv directory.
func interpreterLayout(dir string) (binDir, python string) {
	if runtime.GOOS == "windows" {
		binDir = filepath.Join(dir, "Scripts")
		return binDir, filepath.Join(binDir, "python.exe")
	}
	binDir = filepath.Join(dir, "bin")
	return binDir, filepath.Join(binDir, "python")
}

// Overlay applies the environment activation to env, mirroring what an
// activate script exports: VIRTUAL_ENV is set, the scripts directory is
// prepended to PATH exactly once, and PYTHONHOME is dropped so the base
// installation cannot shadow the environment.
func (v *Venv) Overlay(env map[string]string) {
	env["VIRTUAL_ENV"] = v.Dir
	env["PATH"] = pathlist.PrependUnique(env["PATH"], v.BinDir)
	delete(env, "PYTHONHOME")
}
