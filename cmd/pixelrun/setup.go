// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pixelrun-cli/internal/issue"
	"pixelrun-cli/internal/launcher"
	"pixelrun-cli/internal/project"
	"pixelrun-cli/internal/pythonenv"

	"github.com/spf13/cobra"
)

var (
	setupPython    string
	setupSkipVenv  bool
	setupNoUpgrade bool

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Create the virtual environment and install the project",
		Long: `Create the project's virtual environment when it does not exist yet,
then install the project into it in editable mode. Each step delegates
to the interpreter's own tooling (venv, pip) and stops on first failure.`,
		Args: cobra.NoArgs,
		RunE: runSetup,
	}
)

func init() {
	setupCmd.Flags().StringVar(&setupPython, "python", "", "interpreter used to create the environment")
	setupCmd.Flags().BoolVar(&setupSkipVenv, "no-venv", false, "install with the ambient interpreter instead of a virtual environment")
	setupCmd.Flags().BoolVar(&setupNoUpgrade, "no-upgrade-pip", false, "skip the pip self-upgrade step")
}

func runSetup(cmd *cobra.Command, _ []string) error {
	proj, err := project.Locate()
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("locate project").
			WithResource(project.ManifestFileName).
			WithSuggestion("Run pixelrun from inside a project tree").
			Wrap(err).
			BuildError()
	}

	cfg := loadedConfig
	venvName := proj.VenvDirName()
	if venvName == "" && cfg != nil {
		venvName = string(cfg.VenvDir)
	}
	if venvName == "" {
		venvName = pythonenv.DefaultVenvDirName
	}

	resolver := &pythonenv.Resolver{}

	installPython := ""
	if setupSkipVenv {
		installPython, err = resolver.Resolve(setupPython, nil)
		if err != nil {
			return issue.WrapWithOperation(err, "resolve interpreter")
		}
	} else {
		if _, ok := pythonenv.Detect(proj.Root, venvName); !ok {
			ambient, err := resolver.Resolve(setupPython, nil)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("resolve interpreter").
					WithSuggestion("Install Python 3 before running setup").
					Wrap(err).
					BuildError()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Creating virtual environment %s\n", SuccessStyle.Render("→"), ValueStyle.Render(venvName))
			if err := delegateStep(cmd, proj.Root, ambient, "-m", "venv", filepath.Join(proj.Root, venvName)); err != nil {
				return err
			}
		}

		venv, ok := pythonenv.Detect(proj.Root, venvName)
		if !ok {
			return issue.NewErrorContext().
				WithOperation("activate isolated environment").
				WithResource(filepath.Join(proj.Root, venvName)).
				WithSuggestion("Delete the directory and re-run 'pixelrun setup'").
				Wrap(fmt.Errorf("environment created but no interpreter found")).
				BuildError()
		}
		installPython = venv.Python
	}

	if !setupNoUpgrade {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Upgrading pip\n", SuccessStyle.Render("→"))
		if err := delegateStep(cmd, proj.Root, installPython, "-m", "pip", "install", "--upgrade", "pip"); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Installing project in editable mode\n", SuccessStyle.Render("→"))
	if err := delegateStep(cmd, proj.Root, installPython, "-m", "pip", "install", "-e", "."); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Setup complete\n", SuccessStyle.Render("✓"))
	return nil
}

// delegateStep runs one tool invocation with the host environment, stopping
// the caller on any non-zero exit.
func delegateStep(cmd *cobra.Command, workDir, program string, args ...string) error {
	env, err := launcher.NewEnvBuilder().Build(launcher.EnvSpec{})
	if err != nil {
		return err
	}

	lc := launcher.NewLaunchContext(append([]string{program}, args...), env)
	lc.Context = cmd.Context()
	lc.WorkDir = workDir

	result := launcher.New(logger).Launch(lc)
	if result.Error != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("Error:"), result.Error)
		return &ExitError{Code: result.ExitCode, Err: result.Error}
	}
	if !result.ExitCode.IsSuccess() {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
