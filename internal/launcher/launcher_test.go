// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// requirePOSIXShell skips tests that drive a real /bin/sh on platforms
// without one.
func requirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
}

// TestLaunch_ExitCodePassthrough verifies that the delegated process's exit
// status becomes the launcher's visible exit status, exactly.
func TestLaunch_ExitCodePassthrough(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	for _, code := range []ExitCode{0, 1, 7, 42, 255} {
		lc := NewLaunchContext([]string{"sh", "-c", "exit " + code.String()}, map[string]string{})
		lc.Stdout = &bytes.Buffer{}
		lc.Stderr = &bytes.Buffer{}

		res := New(nil).Launch(lc)
		if res.Error != nil {
			t.Fatalf("Launch(exit %s) unexpected error: %v", code, res.Error)
		}
		if res.ExitCode != code {
			t.Errorf("Launch(exit %s) ExitCode = %s, want %s", code, res.ExitCode, code)
		}
	}
}

// TestLaunch_ArgumentVectorForwarded verifies that the delegated process
// receives exactly the argument vector, in order, with no added or removed
// elements.
func TestLaunch_ArgumentVectorForwarded(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	var stdout bytes.Buffer
	argv := []string{"sh", "-c", `printf '%s\n' "$@"`, "sh", "one", "two three", "--flag=x"}
	lc := NewLaunchContext(argv, map[string]string{})
	lc.Stdout = &stdout
	lc.Stderr = &bytes.Buffer{}

	res := New(nil).Launch(lc)
	if !res.Success() {
		t.Fatalf("Launch() failed: code=%s err=%v", res.ExitCode, res.Error)
	}

	want := "one\ntwo three\n--flag=x\n"
	if got := stdout.String(); got != want {
		t.Errorf("forwarded args = %q, want %q", got, want)
	}
}

// TestLaunch_ExplicitEnvironment verifies that the delegated process sees
// exactly the environment map from the LaunchContext, not the launcher's
// ambient environment.
func TestLaunch_ExplicitEnvironment(t *testing.T) {
	requirePOSIXShell(t)

	// t.Setenv is incompatible with t.Parallel, so this test runs serially.
	t.Setenv("PIXELRUN_AMBIENT_ONLY", "leaked")

	var stdout bytes.Buffer
	lc := NewLaunchContext(
		[]string{"sh", "-c", `printf '%s|%s' "$PIXELRUN_EXPLICIT" "$PIXELRUN_AMBIENT_ONLY"`},
		map[string]string{"PIXELRUN_EXPLICIT": "yes"},
	)
	lc.Stdout = &stdout
	lc.Stderr = &bytes.Buffer{}

	res := New(nil).Launch(lc)
	if !res.Success() {
		t.Fatalf("Launch() failed: code=%s err=%v", res.ExitCode, res.Error)
	}

	if got := stdout.String(); got != "yes|" {
		t.Errorf("child env = %q, want %q", got, "yes|")
	}
}

// TestLaunch_MissingProgram verifies that a nonexistent program surfaces as
// an infrastructure error with a non-zero exit code.
func TestLaunch_MissingProgram(t *testing.T) {
	t.Parallel()

	lc := NewLaunchContext([]string{"pixelrun-no-such-program-xyzzy"}, map[string]string{})
	lc.Stdout = &bytes.Buffer{}
	lc.Stderr = &bytes.Buffer{}

	res := New(nil).Launch(lc)
	if res.Error == nil {
		t.Fatal("Launch() expected error for missing program")
	}
	if res.ExitCode == 0 {
		t.Error("Launch() ExitCode = 0, want non-zero")
	}
}

// TestLaunch_EmptyArgv verifies the guard against an empty argument vector.
func TestLaunch_EmptyArgv(t *testing.T) {
	t.Parallel()

	res := New(nil).Launch(NewLaunchContext(nil, map[string]string{}))
	if res.Error == nil {
		t.Fatal("Launch() expected error for empty argv")
	}
}

// TestLaunch_WorkDir verifies the delegated process runs in the requested
// working directory.
func TestLaunch_WorkDir(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	dir := t.TempDir()

	var stdout bytes.Buffer
	lc := NewLaunchContext([]string{"sh", "-c", "pwd"}, map[string]string{})
	lc.WorkDir = dir
	lc.Stdout = &stdout
	lc.Stderr = &bytes.Buffer{}

	res := New(nil).Launch(lc)
	if !res.Success() {
		t.Fatalf("Launch() failed: code=%s err=%v", res.ExitCode, res.Error)
	}

	// pwd prints the symlink-resolved form of the temp dir; resolve ours
	// the same way before comparing.
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout.String()); got != want {
		t.Errorf("child working directory = %q, want %q", got, want)
	}
}

// TestLaunch_ContextCancelForwardsInterrupt verifies that cancelling the
// launch context interrupts the child instead of killing it, so the child's
// own handlers run and its chosen exit status passes through.
func TestLaunch_ContextCancelForwardsInterrupt(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lc := NewLaunchContext(
		[]string{"sh", "-c", "trap 'exit 42' INT TERM; sleep 5 & wait"},
		map[string]string{},
	)
	lc.Context = ctx
	lc.Stdout = &bytes.Buffer{}
	lc.Stderr = &bytes.Buffer{}

	go func() {
		// Give the shell time to install its trap before cancelling.
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res := New(nil).Launch(lc)

	if res.Error != nil {
		t.Fatalf("Launch() unexpected error: %v", res.Error)
	}
	if res.ExitCode != 42 {
		t.Errorf("ExitCode = %s, want 42 (the child's own handler, not a kill)", res.ExitCode)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Launch() took %v, child was not interrupted promptly", elapsed)
	}
}

// TestEnvToSlice verifies map-to-slice conversion.
func TestEnvToSlice(t *testing.T) {
	t.Parallel()

	env := map[string]string{"A": "1", "B": "two=2"}
	got := EnvToSlice(env)
	if len(got) != 2 {
		t.Fatalf("EnvToSlice() len = %d, want 2", len(got))
	}
	seen := map[string]bool{}
	for _, e := range got {
		seen[e] = true
	}
	if !seen["A=1"] || !seen["B=two=2"] {
		t.Errorf("EnvToSlice() = %v, want A=1 and B=two=2", got)
	}
}
