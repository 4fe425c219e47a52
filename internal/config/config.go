// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rauletaveras/zettel/internal/issue"
	"github.com/rauletaveras/zettel/internal/vault"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "zettel"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// VaultConfigDirName is the per-vault settings directory.
	VaultConfigDirName = ".zettel"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"vault.default_path": "ZETTEL_VAULT",
	"id.match_rule":      "ZETTEL_MATCH_RULE",
	"id.separator":       "ZETTEL_SEPARATOR",
	"id.allow_unicode":   "ZETTEL_ALLOW_UNICODE",
	"ui.verbose":         "ZETTEL_VERBOSE",
}

// ConfigDir returns the zettel configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// GlobalConfigPath returns the path of the global config file.
func GlobalConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// VaultConfigPath returns the path of the per-vault config file.
func VaultConfigPath(vaultPath string) string {
	return filepath.Join(vaultPath, VaultConfigDirName, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions performs option-driven config loading. Sources are applied
// lowest to highest: defaults, global file, vault file, environment, then
// opts.Overrides. It returns the config and the files that were read.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("vault.default_path", defaults.Vault.DefaultPath)
	v.SetDefault("vault.exclude_dirs", defaults.Vault.ExcludeDirs)
	v.SetDefault("id.match_rule", string(defaults.ID.MatchRule))
	v.SetDefault("id.separator", defaults.ID.Separator)
	v.SetDefault("id.allow_unicode", defaults.ID.AllowUnicode)
	v.SetDefault("id.max_depth", defaults.ID.MaxDepth)
	v.SetDefault("note.extension", string(defaults.Note.Extension))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("list.format", string(defaults.List.Format))

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var sources []string

	// An explicit --config file replaces the global file lookup.
	globalPath := opts.ConfigFilePath
	if globalPath != "" {
		if !fileExists(globalPath) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(globalPath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'zettel config path' to see where zettel looks for configuration").
				Wrap(fmt.Errorf("config file not found: %s", globalPath)).
				BuildError()
		}
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, nil, err
		}
		globalPath = filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	}
	if fileExists(globalPath) {
		if err := loadTOMLIntoViper(v, globalPath); err != nil {
			return nil, nil, configFileError(globalPath, err)
		}
		sources = append(sources, globalPath)
	}

	// The vault location can come from the global file, ZETTEL_VAULT or
	// --vault, so it is only known once those are layered.
	vaultPath, err := resolveVaultPath(v.GetString("vault.default_path"))
	if err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("resolve vault path").
			WithResource(v.GetString("vault.default_path")).
			WithSuggestion("Check the --vault flag, ZETTEL_VAULT and vault.default_path").
			Wrap(err).
			BuildError()
	}

	vaultCfgPath := VaultConfigPath(vaultPath)
	if fileExists(vaultCfgPath) {
		if err := loadTOMLIntoViper(v, vaultCfgPath); err != nil {
			return nil, nil, configFileError(vaultCfgPath, err)
		}
		sources = append(sources, vaultCfgPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// A vault file may not move its own vault.
	cfg.Vault.DefaultPath = vaultPath

	if valid, errs := cfg.IsValid(); !valid {
		return nil, nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(strings.Join(sources, ", ")).
			WithSuggestion("id.match_rule must be one of strict, separator, fuzzy").
			WithSuggestion("id.separator must not be empty when id.match_rule is 'separator'").
			WithSuggestion("Check ZETTEL_MATCH_RULE and ZETTEL_SEPARATOR in your environment").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, sources, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// resolveVaultPath expands the configured vault path; empty means the
// current directory.
func resolveVaultPath(configured string) (string, error) {
	if strings.TrimSpace(configured) == "" {
		configured = "."
	}
	expanded, err := vault.ExpandPath(configured)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// loadTOMLIntoViper reads a TOML config file, validates it against the
// #Config schema and merges its contents into Viper.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := decodeConfigFile(data, path)
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

func configFileError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid TOML").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("Run 'zettel config init --force' to regenerate a default file").
		Wrap(err).
		BuildError()
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig writes a commented default config file to path unless
// one already exists. It reports whether a file was written.
func CreateDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateTOML(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// Save writes cfg to path as a commented TOML file, replacing any existing file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateTOML(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Dump renders the effective configuration as plain TOML.
func Dump(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// GenerateTOML generates a commented TOML representation of the configuration.
func GenerateTOML(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("# Zettel configuration file\n")
	sb.WriteString("# Lines starting with # are comments.\n\n")

	sb.WriteString("[vault]\n")
	sb.WriteString("# Vault used when --vault and ZETTEL_VAULT are not set.\n")
	if cfg.Vault.DefaultPath != "" {
		fmt.Fprintf(&sb, "default_path = %q\n", cfg.Vault.DefaultPath)
	} else {
		sb.WriteString("# default_path = \"~/notes\"\n")
	}
	sb.WriteString("# Directories (relative to the vault) that are never scanned.\n")
	fmt.Fprintf(&sb, "exclude_dirs = %s\n", tomlStringList(cfg.Vault.ExcludeDirs))

	sb.WriteString("\n[id]\n")
	sb.WriteString("# How IDs are found in filenames: \"strict\", \"separator\" or \"fuzzy\".\n")
	fmt.Fprintf(&sb, "match_rule = %q\n", cfg.ID.MatchRule)
	sb.WriteString("# Text between ID and title, used by the \"separator\" rule.\n")
	fmt.Fprintf(&sb, "separator = %q\n", cfg.ID.Separator)
	sb.WriteString("# Let the filename scan run over non-ASCII letters.\n")
	fmt.Fprintf(&sb, "allow_unicode = %v\n", cfg.ID.AllowUnicode)
	sb.WriteString("# Deepest ID that next-child may create (0 = unlimited).\n")
	fmt.Fprintf(&sb, "max_depth = %d\n", cfg.ID.MaxDepth)

	sb.WriteString("\n[note]\n")
	sb.WriteString("# Extension of note files, without the dot.\n")
	fmt.Fprintf(&sb, "extension = %q\n", cfg.Note.Extension)

	sb.WriteString("\n[ui]\n")
	fmt.Fprintf(&sb, "verbose = %v\n", cfg.UI.Verbose)
	sb.WriteString("# \"auto\", \"dark\" or \"light\".\n")
	fmt.Fprintf(&sb, "color_scheme = %q\n", cfg.UI.ColorScheme)

	sb.WriteString("\n[list]\n")
	sb.WriteString("# \"human\", \"json\" or \"yaml\".\n")
	fmt.Fprintf(&sb, "format = %q\n", cfg.List.Format)

	return sb.String()
}

func tomlStringList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, fmt.Sprintf("%q", item))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
