// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"pixelrun-cli/internal/launcher"

	"github.com/spf13/cobra"
)

var (
	runPython     string
	runNoVenv     bool
	runEntrypoint string
	runWorkdir    string
	runEnvVars    []string
	runEnvFiles   []string

	runCmd = &cobra.Command{
		Use:   "run [-- ARGS...]",
		Short: "Launch the project entry point",
		Long: `Launch the project entry point in a consistent execution context.

The launcher activates the local virtual environment when one exists,
prepends the source directory to PYTHONPATH exactly once, forwards all
arguments verbatim, and exits with the delegated process's exit code.`,
		Example: `  pixelrun run -- --scan
  pixelrun run -- -c set_brightness 50 -a AA:BB:CC:DD:EE:FF
  pixelrun run --no-venv -- --help`,
		Args: cobra.ArbitraryArgs,
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&runPython, "python", "", "explicit interpreter path (overrides venv and config)")
	runCmd.Flags().BoolVar(&runNoVenv, "no-venv", false, "skip virtual-environment activation")
	runCmd.Flags().StringVar(&runEntrypoint, "entrypoint", "", "entry point command string (overrides manifest and config)")
	runCmd.Flags().StringVar(&runWorkdir, "workdir", "", "working directory for the delegated process (default: project root)")
	runCmd.Flags().StringArrayVar(&runEnvVars, "env-var", nil, "extra KEY=VALUE for the delegated environment (repeatable, highest priority)")
	runCmd.Flags().StringArrayVar(&runEnvFiles, "env-file", nil, "extra dotenv file relative to the CWD (repeatable)")

	// Unknown flags after the command name belong to the entry point.
	runCmd.Flags().SetInterspersed(false)
}

func runRun(cmd *cobra.Command, args []string) error {
	plan, err := resolvePlan(resolveOptions{
		python:       runPython,
		noVenv:       runNoVenv,
		entrypoint:   runEntrypoint,
		envVarFlags:  runEnvVars,
		envFileFlags: runEnvFiles,
	})
	if err != nil {
		return err
	}

	argv := append(append([]string{}, plan.entry...), args...)

	lc := launcher.NewLaunchContext(argv, plan.env)
	lc.Context = cmd.Context()
	lc.WorkDir = runWorkdir
	if lc.WorkDir == "" {
		lc.WorkDir = plan.project.Root
	}

	result := launcher.New(logger).Launch(lc)

	if result.Error != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("Error:"), result.Error)
		return &ExitError{Code: result.ExitCode, Err: result.Error}
	}

	if !result.ExitCode.IsSuccess() {
		if verbose {
			fmt.Fprintf(os.Stdout, "%s Entry point exited with code %s\n", WarningStyle.Render("!"), result.ExitCode)
		}
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}
