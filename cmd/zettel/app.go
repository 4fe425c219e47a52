// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rauletaveras/zettel/internal/config"
	"github.com/rauletaveras/zettel/internal/issue"
	"github.com/rauletaveras/zettel/internal/vault"
	"github.com/rauletaveras/zettel/pkg/luhmann"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and loads configuration,
	// the vault and the ID manager through it.
	App struct {
		Config ConfigProvider
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		flags  globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags holds the persistent root flags shared by every subcommand.
	globalFlags struct {
		verbose      bool
		configFile   string
		vaultPath    string
		matchRule    string
		separator    string
		allowUnicode bool
	}

	// session is the per-invocation state built from the resolved configuration.
	session struct {
		cfg    *config.Config
		logger *log.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// loadOptions turns the root flags into config load options. Only flags the
// user actually set become overrides, so config files and env stay visible.
func (a *App) loadOptions(cmd *cobra.Command) config.LoadOptions {
	opts := config.LoadOptions{ConfigFilePath: a.flags.configFile}

	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("vault") {
		overrides["vault.default_path"] = a.flags.vaultPath
	}
	if flags.Changed("match-rule") {
		overrides["id.match_rule"] = a.flags.matchRule
	}
	if flags.Changed("separator") {
		overrides["id.separator"] = a.flags.separator
	}
	if flags.Changed("allow-unicode") {
		overrides["id.allow_unicode"] = a.flags.allowUnicode
	}
	if flags.Changed("verbose") {
		overrides["ui.verbose"] = a.flags.verbose
	}
	if len(overrides) > 0 {
		opts.Overrides = overrides
	}

	return opts
}

// openSession loads the configuration for cmd and builds the logger.
func (a *App) openSession(cmd *cobra.Command) (*session, error) {
	return a.openSessionWith(cmd, nil)
}

// openSessionWith is openSession with extra overrides that take precedence
// over the root flags.
func (a *App) openSessionWith(cmd *cobra.Command, overrides map[string]any) (*session, error) {
	opts := a.loadOptions(cmd)
	if len(overrides) > 0 {
		if opts.Overrides == nil {
			opts.Overrides = make(map[string]any, len(overrides))
		}
		for k, v := range overrides {
			opts.Overrides[k] = v
		}
	}

	cfg, err := a.Config.Load(cmd.Context(), opts)
	if err != nil {
		return nil, configError(err)
	}

	level := log.WarnLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: "zettel",
		Level:  level,
	})
	logger.Debug("configuration loaded",
		"vault", cfg.Vault.DefaultPath,
		"match_rule", cfg.ID.MatchRule,
		"max_depth", cfg.ID.MaxDepth,
	)

	return &session{cfg: cfg, logger: logger}, nil
}

// matcher compiles the filename matcher for the session's ID settings.
func (s *session) matcher() (*luhmann.Matcher, error) {
	m, err := luhmann.NewMatcher(s.cfg.ID.MatchConfig())
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("build filename matcher").
			WithSuggestion("Check id.match_rule and id.separator with 'zettel config show'").
			WithHelpPage(issue.ConfigLoadFailedId).
			Wrap(err).
			Build()
	}
	return m, nil
}

// vault opens the configured vault. The directory is not required to exist.
func (s *session) vault() (*vault.Vault, error) {
	m, err := s.matcher()
	if err != nil {
		return nil, err
	}

	return vault.New(s.cfg.Vault.DefaultPath, vault.Options{
		Extension:   s.cfg.Note.Extension.String(),
		ExcludeDirs: s.cfg.Vault.ExcludeDirs,
		Matcher:     m,
		Logger:      s.logger,
	}), nil
}

// manager builds an ID manager backed by the vault's existence check.
func (s *session) manager(v *vault.Vault) (*luhmann.Manager, error) {
	mgr, err := luhmann.NewManager(s.cfg.ID.MatchConfig(), v, luhmann.WithMaxDepth(s.cfg.ID.MaxDepth))
	if err != nil {
		return nil, issue.WrapWithOperation(err, "create ID manager")
	}
	return mgr, nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (s *session) glamourStyle() string {
	if s == nil {
		return string(config.ColorSchemeAuto)
	}
	return string(s.cfg.UI.ColorScheme)
}

// configError attaches the configuration help page to a load failure.
func configError(err error) error {
	if ae, ok := err.(*issue.ActionableError); ok { //nolint:errorlint // only the outermost error is rewritten
		if ae.HelpPage != 0 {
			return ae
		}
		withPage := *ae
		withPage.HelpPage = issue.ConfigLoadFailedId
		return &withPage
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithHelpPage(issue.ConfigLoadFailedId).
		Wrap(err).
		Build()
}
