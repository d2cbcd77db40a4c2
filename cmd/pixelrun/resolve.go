// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"pixelrun-cli/internal/config"
	"pixelrun-cli/internal/issue"
	"pixelrun-cli/internal/launcher"
	"pixelrun-cli/internal/project"
	"pixelrun-cli/internal/pythonenv"

	"mvdan.cc/sh/v3/shell"
)

type (
	// resolveOptions are the per-invocation inputs for building a launch plan.
	resolveOptions struct {
		// python is the --python interpreter override.
		python string
		// noVenv skips isolated-environment detection.
		noVenv bool
		// entrypoint is the --entrypoint command-string override.
		entrypoint string
		// envVarFlags are raw --env-var KEY=VALUE values.
		envVarFlags []string
		// envFileFlags are --env-file paths, relative to the CWD.
		envFileFlags []string
	}

	// launchPlan is the fully resolved execution context: everything needed
	// to delegate, or to display with `pixelrun env`.
	launchPlan struct {
		cfg         *config.Config
		project     *project.Project
		venv        *pythonenv.Venv
		interpreter string
		env         map[string]string
		// entry is the argument-vector prefix; forwarded args are appended
		// to it verbatim.
		entry []string
	}
)

// resolvePlan builds the launch plan: project location, environment
// activation, interpreter resolution, environment construction and entry
// point selection.
func resolvePlan(opts resolveOptions) (*launchPlan, error) {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	proj, err := project.Locate()
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate project").
			WithResource(project.ManifestFileName).
			WithSuggestion("Run pixelrun from inside a project tree").
			WithSuggestion("Create a pyproject.toml at the project root").
			Wrap(err).
			BuildError()
	}
	logger.Debug("located project", "root", proj.Root, "module", proj.Module())

	venvName := proj.VenvDirName()
	if venvName == "" {
		venvName = string(cfg.VenvDir)
	}

	var venv *pythonenv.Venv
	if !opts.noVenv {
		if v, ok := pythonenv.Detect(proj.Root, venvName); ok {
			venv = v
			logger.Debug("activating isolated environment", "dir", v.Dir)
		} else {
			logger.Debug("no isolated environment, using ambient interpreter", "name", venvName)
		}
	}

	override := opts.python
	if override == "" {
		override = cfg.Python
	}
	resolver := &pythonenv.Resolver{}
	interpreter, err := resolver.Resolve(override, venv)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve interpreter").
			WithSuggestion("Install Python 3 or run 'pixelrun setup'").
			WithSuggestion("Pass --python with an explicit interpreter path").
			Wrap(err).
			BuildError()
	}
	logger.Debug("resolved interpreter", "path", interpreter)

	runtimeVars, err := parseEnvVarFlags(opts.envVarFlags)
	if err != nil {
		return nil, err
	}

	var overlays []launcher.EnvOverlay
	if venv != nil {
		overlays = append(overlays, venv.Overlay)
	}

	builder := launcher.NewEnvBuilder()
	env, err := builder.Build(launcher.EnvSpec{
		Inherit:         launcher.EnvInheritMode(cfg.Env.Inherit),
		Deny:            cfg.Env.Deny,
		Files:           cfg.Env.Files,
		BasePath:        proj.Root,
		Vars:            cfg.Env.Vars,
		Overlays:        overlays,
		PythonPathEntry: proj.SourceDir(),
		RuntimeFiles:    opts.envFileFlags,
		RuntimeVars:     runtimeVars,
	})
	if err != nil {
		return nil, issue.WrapWithOperation(err, "build environment")
	}
	logger.Debug("injected source directory", "PYTHONPATH", env["PYTHONPATH"])

	entry, err := resolveEntry(opts.entrypoint, proj, cfg, interpreter, env)
	if err != nil {
		return nil, err
	}

	return &launchPlan{
		cfg:         cfg,
		project:     proj,
		venv:        venv,
		interpreter: interpreter,
		env:         env,
		entry:       entry,
	}, nil
}

// resolveEntry selects the entry point: flag override, then the manifest,
// then global config, then the default "<python> -m <module>" form.
// Command strings are split with shell field splitting; variable references
// expand against the delegated environment, not the launcher's own.
func resolveEntry(flagEntry string, proj *project.Project, cfg *config.Config, interpreter string, env map[string]string) ([]string, error) {
	entrypoint := flagEntry
	if entrypoint == "" {
		entrypoint = proj.Entrypoint()
	}
	if entrypoint == "" {
		entrypoint = cfg.Entrypoint
	}

	if entrypoint == "" {
		return []string{interpreter, "-m", proj.Module()}, nil
	}

	fields, err := shell.Fields(entrypoint, func(name string) string { return env[name] })
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse entrypoint").
			WithResource(entrypoint).
			WithSuggestion("Check the entrypoint command string for unbalanced quotes").
			Wrap(err).
			BuildError()
	}
	if len(fields) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("parse entrypoint").
			WithResource(entrypoint).
			Wrap(fmt.Errorf("entrypoint expands to an empty command")).
			BuildError()
	}

	// A generic "python"/"python3" head means: whichever interpreter the
	// launcher resolved.
	if fields[0] == "python" || fields[0] == "python3" {
		fields[0] = interpreter
	}

	return fields, nil
}

// parseEnvVarFlags parses --env-var KEY=VALUE pairs.
func parseEnvVarFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(flags))
	for _, raw := range flags {
		key, value, found := strings.Cut(raw, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --env-var value %q (expected KEY=VALUE)", raw)
		}
		vars[key] = value
	}
	return vars, nil
}
