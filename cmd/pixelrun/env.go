// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var (
	envShowAll bool

	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Show the resolved execution context",
		Long: `Show the execution context the launcher would delegate with: project
root, virtual environment, interpreter, entry point and the injected
environment variables. Nothing is executed.`,
		Args: cobra.NoArgs,
		RunE: runEnv,
	}
)

func init() {
	envCmd.Flags().BoolVar(&envShowAll, "all", false, "print the full delegated environment, not just the launcher-managed variables")
	envCmd.Flags().StringVar(&runPython, "python", "", "explicit interpreter path (overrides venv and config)")
	envCmd.Flags().BoolVar(&runNoVenv, "no-venv", false, "skip virtual-environment activation")
}

func runEnv(cmd *cobra.Command, _ []string) error {
	plan, err := resolvePlan(resolveOptions{
		python: runPython,
		noVenv: runNoVenv,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, TitleStyle.Render("Execution context"))
	printRow(out, "Project", plan.project.Root)
	printRow(out, "Module", plan.project.Module())
	printRow(out, "Source dir", plan.project.SourceDir())
	printRow(out, "Interpreter", plan.interpreter)
	printRow(out, "Entry point", strings.Join(plan.entry, " "))

	if plan.venv != nil {
		printRow(out, "Venv", plan.venv.Dir)
		if cfg, err := plan.venv.LoadCfg(); err == nil {
			printRow(out, "Venv python", cfg.Version)
			printRow(out, "Venv base", cfg.Home)
		}
	} else {
		printRow(out, "Venv", SubtitleStyle.Render("(none, ambient interpreter)"))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("Delegated environment"))
	for _, name := range envReportNames(plan.env) {
		if value, ok := plan.env[name]; ok {
			printRow(out, name, value)
		}
	}

	return nil
}

// envReportNames returns which variables to display: the launcher-managed
// ones by default, every name with --all.
func envReportNames(env map[string]string) []string {
	if !envShowAll {
		return []string{"PYTHONPATH", "VIRTUAL_ENV", "PATH"}
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printRow(out io.Writer, label, value string) {
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render(label), ValueStyle.Render(value))
}
