// SPDX-License-Identifier: MPL-2.0

package pythonenv

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"pixelrun-cli/pkg/pathlist"
)

// makeVenv creates a minimal fake virtual environment under root and
// returns its directory.
func makeVenv(t *testing.T, root, name string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	binDir, python := interpreterLayout(dir)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(python, []byte("#!/bin/true\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestDetect_Present verifies detection of a conventional .venv directory.
func TestDetect_Present(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := makeVenv(t, root, DefaultVenvDirName)

	venv, ok := Detect(root, "")
	if !ok {
		t.Fatal("Detect() = false, want true")
	}
	if venv.Dir != dir {
		t.Errorf("Dir = %q, want %q", venv.Dir, dir)
	}
	if venv.Python == "" || venv.BinDir == "" {
		t.Error("Detect() returned incomplete Venv")
	}
}

// TestDetect_CustomName verifies detection under a configured directory name.
func TestDetect_CustomName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeVenv(t, root, "env")

	if _, ok := Detect(root, "env"); !ok {
		t.Error("Detect(root, \"env\") = false, want true")
	}
	if _, ok := Detect(root, ""); ok {
		t.Error("Detect(root, \"\") = true, want false (no .venv present)")
	}
}

// TestDetect_Absent verifies the ambient-fallback signal when no environment
// directory exists.
func TestDetect_Absent(t *testing.T) {
	t.Parallel()

	if _, ok := Detect(t.TempDir(), ""); ok {
		t.Error("Detect() = true for empty root, want false")
	}
}

// TestDetect_DirWithoutInterpreter verifies that a directory shell without
// an interpreter does not count as an environment.
func TestDetect_DirWithoutInterpreter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, DefaultVenvDirName), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, ok := Detect(root, ""); ok {
		t.Error("Detect() = true for interpreter-less directory, want false")
	}
}

// TestOverlay verifies the activation overlay: VIRTUAL_ENV set, PATH
// prepended exactly once, PYTHONHOME dropped.
func TestOverlay(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeVenv(t, root, DefaultVenvDirName)
	venv, ok := Detect(root, "")
	if !ok {
		t.Fatal("Detect() failed")
	}

	env := map[string]string{
		"PATH":       "/usr/bin",
		"PYTHONHOME": "/opt/python",
	}
	venv.Overlay(env)

	if env["VIRTUAL_ENV"] != venv.Dir {
		t.Errorf("VIRTUAL_ENV = %q, want %q", env["VIRTUAL_ENV"], venv.Dir)
	}
	wantPath := pathlist.Join([]string{venv.BinDir, "/usr/bin"})
	if env["PATH"] != wantPath {
		t.Errorf("PATH = %q, want %q", env["PATH"], wantPath)
	}
	if _, ok := env["PYTHONHOME"]; ok {
		t.Error("PYTHONHOME not dropped by overlay")
	}

	// Idempotent: re-applying leaves PATH unchanged.
	venv.Overlay(env)
	if env["PATH"] != wantPath {
		t.Errorf("PATH after second overlay = %q, want %q", env["PATH"], wantPath)
	}
}

// TestInterpreterLayout verifies the platform-specific layout.
func TestInterpreterLayout(t *testing.T) {
	t.Parallel()

	binDir, python := interpreterLayout(filepath.Join("x", ".venv"))
	if runtime.GOOS == "windows" {
		if filepath.Base(binDir) != "Scripts" || filepath.Base(python) != "python.exe" {
			t.Errorf("layout = (%q, %q), want Scripts/python.exe", binDir, python)
		}
		return
	}
	if filepath.Base(binDir) != "bin" || filepath.Base(python) != "python" {
		t.Errorf("layout = (%q, %q), want bin/python", binDir, python)
	}
}
