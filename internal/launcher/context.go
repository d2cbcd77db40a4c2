// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"io"
	"os"
)

// LaunchContext carries everything needed to delegate execution: the full
// argument vector, an explicit environment map, stdio streams, and the
// working directory. It is constructed fresh per invocation and never
// persisted; the parent process's own environment is never mutated.
type LaunchContext struct {
	// Context is the Go context for cancellation.
	Context context.Context
	// Argv is the complete argument vector. Argv[0] is the program to run
	// (an absolute interpreter path or a name resolved via PATH); the
	// remaining elements are forwarded verbatim, in order.
	Argv []string
	// Env is the explicit environment for the delegated process. The map is
	// converted to a slice at spawn time; the ambient environment is not
	// consulted once the map is built.
	Env map[string]string
	// WorkDir is the working directory for the delegated process.
	// Empty means inherit the launcher's working directory.
	WorkDir string
	// Stdout, Stderr and Stdin are forwarded transparently.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// NewLaunchContext creates a LaunchContext wired to the process's own stdio.
func NewLaunchContext(argv []string, env map[string]string) *LaunchContext {
	return &LaunchContext{
		Context: context.Background(),
		Argv:    argv,
		Env:     env,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
	}
}

// EnvToSlice converts an environment map to the "KEY=VALUE" slice form
// expected by os/exec.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}
