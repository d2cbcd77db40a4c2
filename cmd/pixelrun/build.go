// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"pixelrun-cli/internal/issue"
	"pixelrun-cli/internal/project"
	"pixelrun-cli/internal/pythonenv"

	"github.com/spf13/cobra"
)

var (
	buildPython string

	buildCmd = &cobra.Command{
		Use:   "build [-- ARGS...]",
		Short: "Build distributable artifacts",
		Long: `Delegate to the interpreter's build frontend ("python -m build") to
produce distributable artifacts. Extra arguments are forwarded to the
build tool verbatim.`,
		Args: cobra.ArbitraryArgs,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVar(&buildPython, "python", "", "explicit interpreter path (overrides venv and config)")
	buildCmd.Flags().SetInterspersed(false)
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	venv, _ := pythonenv.Detect(proj.Root, venvName)
	resolver := &pythonenv.Resolver{}
	interpreter, err := resolver.Resolve(buildPython, venv)
	if err != nil {
		return issue.WrapWithOperation(err, "resolve interpreter")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Building with %s\n", SuccessStyle.Render("→"), ValueStyle.Render(interpreter))
	return delegateStep(cmd, proj.Root, interpreter, append([]string{"-m", "build"}, args...)...)
}
