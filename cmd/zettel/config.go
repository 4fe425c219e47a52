// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rauletaveras/zettel/internal/config"
	"github.com/rauletaveras/zettel/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `zettel config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage zettel configuration",
		Long: `Manage zettel configuration.

Settings are read, lowest priority first, from built-in defaults, the global
config file, the vault's .zettel/config.toml, ZETTEL_* environment variables
and command-line flags.

The global config file is stored in:
  - Linux: $XDG_CONFIG_HOME/zettel/config.toml (default ~/.config)
  - macOS: ~/Library/Application Support/zettel/config.toml
  - Windows: %APPDATA%\zettel\config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default global configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd)
			if err != nil {
				return app.fail(cmd, nil, err)
			}

			data, err := config.Dump(s.cfg)
			if err != nil {
				return app.fail(cmd, s, issue.WrapWithOperation(err, "dump configuration"))
			}
			_, err = app.stdout.Write(data)
			return err
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	s, err := app.openSession(cmd)
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	sources, err := config.Sources(cmd.Context(), app.loadOptions(cmd))
	if err != nil {
		return app.fail(cmd, s, err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if len(sources) == 0 {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config files"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s:\n", keyStyle.Render("Config files"))
		for _, src := range sources {
			fmt.Fprintf(w, "  %s\n", src)
		}
	}
	fmt.Fprintln(w)

	cfg := s.cfg
	excluded := SubtitleStyle.Render("(none)")
	if len(cfg.Vault.ExcludeDirs) > 0 {
		excluded = valueStyle.Render(strings.Join(cfg.Vault.ExcludeDirs, ", "))
	}
	rows := []struct{ key, value string }{
		{"vault.default_path", valueStyle.Render(cfg.Vault.DefaultPath)},
		{"vault.exclude_dirs", excluded},
		{"id.match_rule", valueStyle.Render(cfg.ID.MatchRule.String())},
		{"id.separator", valueStyle.Render(fmt.Sprintf("%q", cfg.ID.Separator))},
		{"id.allow_unicode", valueStyle.Render(fmt.Sprint(cfg.ID.AllowUnicode))},
		{"id.max_depth", valueStyle.Render(maxDepthLabel(cfg.ID.MaxDepth))},
		{"note.extension", valueStyle.Render(cfg.Note.Extension.String())},
		{"ui.verbose", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose))},
		{"ui.color_scheme", valueStyle.Render(cfg.UI.ColorScheme.String())},
		{"list.format", valueStyle.Render(cfg.List.Format.String())},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s = %s\n", keyStyle.Render(row.key), row.value)
	}

	return nil
}

func maxDepthLabel(depth int) string {
	if depth == 0 {
		return "0 (unlimited)"
	}
	return fmt.Sprint(depth)
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	globalPath, err := globalConfigFile(app)
	if err != nil {
		return app.fail(cmd, nil, issue.WrapWithOperation(err, "determine config directory"))
	}
	fmt.Fprintf(app.stdout, "%s: %s%s\n", CmdStyle.Render("global"), globalPath, existsMarker(globalPath))

	// The vault location may itself come from a broken file; report what is
	// known instead of failing.
	s, err := app.openSession(cmd)
	if err != nil {
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("vault"), WarningStyle.Render("(unknown: configuration failed to load)"))
		return nil
	}
	vaultPath := config.VaultConfigPath(s.cfg.Vault.DefaultPath)
	fmt.Fprintf(app.stdout, "%s: %s%s\n", CmdStyle.Render("vault"), vaultPath, existsMarker(vaultPath))

	return nil
}

func initConfig(cmd *cobra.Command, app *App, force bool) error {
	path, err := globalConfigFile(app)
	if err != nil {
		return app.fail(cmd, nil, issue.WrapWithOperation(err, "determine config directory"))
	}

	if force {
		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return app.fail(cmd, nil, issue.WrapWithOperation(err, "write configuration"))
		}
		fmt.Fprintf(app.stdout, "%s Wrote default configuration to %s\n", SuccessStyle.Render("✓"), path)
		return nil
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return app.fail(cmd, nil, issue.WrapWithOperation(err, "write configuration"))
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s %s already exists (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)

	return nil
}

// globalConfigFile is the --config file when given, else the platform default.
func globalConfigFile(app *App) (string, error) {
	if app.flags.configFile != "" {
		return app.flags.configFile, nil
	}
	return config.GlobalConfigPath()
}

func existsMarker(path string) string {
	if _, err := os.Stat(path); err != nil {
		return " " + SubtitleStyle.Render("(not found)")
	}
	return ""
}
