// SPDX-License-Identifier: MPL-2.0

package pythonenv

import (
	"errors"
	"os/exec"
)

// ErrNoInterpreter is returned when no Python interpreter can be found.
var ErrNoInterpreter = errors.New("no python interpreter found")

// ambientNames are tried in order on the search path when neither an
// override nor a virtual environment provides an interpreter.
var ambientNames = []string{"python3", "python"}

// Resolver resolves the interpreter used for delegation.
type Resolver struct {
	// LookPath resolves a name on the ambient search path.
	// When nil, exec.LookPath is used.
	LookPath func(name string) (string, error)
}

// Resolve picks the interpreter: an explicit override wins, then the
// virtual environment's interpreter, then python3/python on the ambient
// search path. The override is returned as given; if it is bogus the
// subsequent launch fails, which is the intended fail-fast behavior.
func (r *Resolver) Resolve(override string, venv *Venv) (string, error) {
	if override != "" {
		return override, nil
	}
	if venv != nil {
		return venv.Python, nil
	}

	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range ambientNames {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoInterpreter
}
