// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/rauletaveras/zettel/internal/config"
	"github.com/rauletaveras/zettel/internal/issue"
	"github.com/rauletaveras/zettel/internal/vault"

	"github.com/spf13/cobra"
)

// newInitCommand creates the `zettel init` command.
func newInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new vault",
		Long: `Create the vault directory, its .zettel settings directory and a commented
.zettel/config.toml. Existing files are never overwritten.

Without a path the configured vault is used (--vault, ZETTEL_VAULT,
vault.default_path, or the current directory).`,
		Example: `  zettel init
  zettel init ~/notes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, app, args)
		},
	}
}

func runInit(cmd *cobra.Command, app *App, args []string) error {
	var overrides map[string]any
	if len(args) == 1 {
		overrides = map[string]any{"vault.default_path": args[0]}
	}

	s, err := app.openSessionWith(cmd, overrides)
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	root := s.cfg.Vault.DefaultPath

	settingsDir, err := vault.Init(root)
	if err != nil {
		return app.fail(cmd, s, issue.NewErrorContext().
			WithOperation("initialize vault").
			WithResource(root).
			WithSuggestion("Choose a directory path that is not an existing file").
			Wrap(err).
			Build())
	}
	s.logger.Debug("vault directories ready", "settings", settingsDir)

	cfgPath := config.VaultConfigPath(root)
	created, err := config.CreateDefaultConfig(cfgPath)
	if err != nil {
		return app.fail(cmd, s, issue.WrapWithOperation(err, "write vault configuration"))
	}

	fmt.Fprintf(app.stdout, "%s Initialized zettel vault at %s\n", SuccessStyle.Render("✓"), root)
	if created {
		fmt.Fprintf(app.stdout, "  Created %s\n", cfgPath)
	} else {
		fmt.Fprintf(app.stdout, "  Kept existing %s\n", cfgPath)
	}
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(app.stdout, "  "+CmdStyle.Render("zettel id next-sibling 1")+"   pick an ID for your next note")
	fmt.Fprintln(app.stdout, "  "+CmdStyle.Render("zettel list")+"               see the notes in the vault")

	return nil
}
