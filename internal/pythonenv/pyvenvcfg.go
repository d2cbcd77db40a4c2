// SPDX-License-Identifier: MPL-2.0

package pythonenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CfgFileName is the metadata file the venv module writes at the
// environment root.
const CfgFileName = "pyvenv.cfg"

// Cfg holds the fields of a pyvenv.cfg file that matter for diagnostics.
// Unknown keys are preserved in Extra.
type Cfg struct {
	// Home is the directory of the base interpreter the env was created from.
	Home string
	// Version is the Python version recorded at creation time.
	Version string
	// IncludeSystemSitePackages reports whether the env sees system packages.
	IncludeSystemSitePackages bool
	// Extra holds any keys not mapped to a named field.
	Extra map[string]string
}

// LoadCfg reads and parses the pyvenv.cfg of the environment. A missing or
// malformed file is an error; callers treating the metadata as optional
// should check os.IsNotExist on the wrapped cause.
func (v *Venv) LoadCfg() (*Cfg, error) {
	path := filepath.Join(v.Dir, CfgFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CfgFileName, err)
	}
	return ParseCfg(content)
}

// ParseCfg parses pyvenv.cfg content. The format is one "key = value" pair
// per line; keys are case-insensitive and values are taken literally.
func ParseCfg(content []byte) (*Cfg, error) {
	cfg := &Cfg{Extra: make(map[string]string)}

	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%s:%d: invalid line (missing '=')", CfgFileName, i+1)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "home":
			cfg.Home = value
		case "version", "version_info":
			cfg.Version = value
		case "include-system-site-packages":
			cfg.IncludeSystemSitePackages = strings.EqualFold(value, "true")
		default:
			cfg.Extra[key] = value
		}
	}

	return cfg, nil
}
