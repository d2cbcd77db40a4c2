// SPDX-License-Identifier: MPL-2.0

// Package launcher builds execution contexts and delegates control to an
// external entry point, forwarding arguments, stdio and exit status exactly.
package launcher

import (
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

// killGracePeriod is how long a child gets to handle an interrupt after
// context cancellation before it is killed outright.
const killGracePeriod = 5 * time.Second

// Launcher spawns the delegated process and waits for it, re-emitting its
// exit status. Spawn-and-wait with signal forwarding is semantically
// equivalent to process replacement and works on every platform.
type Launcher struct {
	// Logger receives diagnostics about the launch. When nil, no
	// diagnostics are emitted.
	Logger *log.Logger
}

// New creates a Launcher with the given logger.
func New(logger *log.Logger) *Launcher {
	return &Launcher{Logger: logger}
}

// Launch runs the delegated process described by the LaunchContext.
//
// The launcher has no retry or recovery logic: a missing program, a
// corrupted interpreter or any other failure surfaces as a non-zero exit
// with whatever diagnostic the failing component printed. Signals delivered
// to the launcher while the child runs are forwarded to the child.
func (l *Launcher) Launch(lc *LaunchContext) *Result {
	if len(lc.Argv) == 0 {
		return NewErrorResult(1, errors.New("empty argument vector"))
	}

	cmd := exec.CommandContext(lc.Context, lc.Argv[0], lc.Argv[1:]...)
	// The default context cancel kills the child outright. Send an
	// interrupt instead so the child can run its own signal handlers, and
	// escalate to a kill only after the grace period.
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = killGracePeriod
	cmd.Dir = lc.WorkDir
	cmd.Env = EnvToSlice(lc.Env)
	cmd.Stdout = lc.Stdout
	cmd.Stderr = lc.Stderr
	cmd.Stdin = lc.Stdin

	if l.Logger != nil {
		l.Logger.Debug("delegating execution", "argv", lc.Argv, "workdir", lc.WorkDir)
	}

	if err := cmd.Start(); err != nil {
		return NewErrorResult(1, err)
	}

	// Forward termination signals to the child so Ctrl-C behaves as it
	// would under process replacement.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return NewExitCodeResult(exitStatus(exitErr))
		}
		return NewErrorResult(1, err)
	}

	return NewSuccessResult()
}

// exitStatus maps an exec.ExitError to the visible exit code. A child that
// died from a signal reports 128 plus the signal number, matching shell
// behavior.
func exitStatus(exitErr *exec.ExitError) ExitCode {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitCode(128 + int(ws.Signal()))
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return ExitCode(code)
	}
	return 1
}
