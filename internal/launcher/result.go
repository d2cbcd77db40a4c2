// SPDX-License-Identifier: MPL-2.0

package launcher

type (
	// Result describes the outcome of a delegated execution.
	Result struct {
		// ExitCode is the exit status of the delegated process. When the
		// process was terminated by a signal it follows the shell
		// convention of 128 plus the signal number.
		ExitCode ExitCode
		// Error is set only for infrastructure failures (interpreter not
		// found, spawn failure). A non-zero ExitCode from a process that
		// ran to completion is not an Error.
		Error error
	}
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the delegated process ran and exited with 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Error == nil
}
