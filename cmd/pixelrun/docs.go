// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"pixelrun-cli/internal/config"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed usage.md
var usageDoc string

var (
	docsWidth int
	docsPlain bool

	docsCmd = &cobra.Command{
		Use:   "docs",
		Short: "Show the launcher usage guide",
		Long:  `Render the bundled usage guide in the terminal.`,
		Args:  cobra.NoArgs,
		RunE:  runDocs,
	}
)

func init() {
	docsCmd.Flags().IntVar(&docsWidth, "width", 100, "word wrap width")
	docsCmd.Flags().BoolVar(&docsPlain, "plain", false, "print the raw markdown without rendering")
}

func runDocs(cmd *cobra.Command, _ []string) error {
	if docsPlain {
		fmt.Fprint(cmd.OutOrStdout(), usageDoc)
		return nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(docsWidth),
	}

	scheme := config.ColorSchemeAuto
	if loadedConfig != nil {
		scheme = loadedConfig.UI.ColorScheme
	}
	switch scheme {
	case config.ColorSchemeDark:
		opts = append(opts, glamour.WithStandardStyle("dark"))
	case config.ColorSchemeLight:
		opts = append(opts, glamour.WithStandardStyle("light"))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	rendered, err := renderer.Render(usageDoc)
	if err != nil {
		return fmt.Errorf("rendering usage guide: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
