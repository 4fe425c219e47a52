// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rauletaveras/zettel/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the zettel command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zettel",
		Short: "A CLI for Luhmann-style Zettelkasten management",
		Long: TitleStyle.Render("zettel") + SubtitleStyle.Render(" - Luhmann-style Zettelkasten IDs") + `

Every note carries a Luhmann ID that alternates numbers and letters:
1 is a top-level note, 1a branches from it, 1a1 branches from 1a, and
1b continues the thread after 1a. zettel computes the next free ID by
looking at the notes already in your vault.

` + SubtitleStyle.Render("Examples:") + `
  zettel init ~/notes             Create a vault
  zettel id next-sibling 1a2      Next free ID after 1a2 (1a3, 1a4, ...)
  zettel id next-child 1a         First free branch under 1a (1a1, ...)
  zettel id parse "1a2 - Idea.md" Extract the ID from a filename
  zettel list --format json       List notes for scripting`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configFile, "config", "", "global config file (default is $XDG_CONFIG_HOME/zettel/config.toml)")
	flags.StringVar(&app.flags.vaultPath, "vault", "", "vault directory (overrides ZETTEL_VAULT)")
	flags.StringVar(&app.flags.matchRule, "match-rule", "", "filename match rule: strict, separator or fuzzy")
	flags.StringVar(&app.flags.separator, "separator", "", "separator between ID and title for the separator rule")
	flags.BoolVar(&app.flags.allowUnicode, "allow-unicode", false, "treat any Unicode letter as part of an ID when matching filenames")

	rootCmd.AddCommand(newIDCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newInitCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// displayError renders its cause the way formatErrorForDisplay does, so the
// single line printed by fang carries the suggestions too.
type displayError struct {
	err     error
	verbose bool
}

func (e *displayError) Error() string { return formatErrorForDisplay(e.err, e.verbose) }

func (e *displayError) Unwrap() error { return e.err }

// fail writes the help page attached to err, if any, to stderr and returns
// an ExitError with status 1 whose message is the formatted error. s may be
// nil when configuration could not be loaded.
func (a *App) fail(cmd *cobra.Command, s *session, err error) error {
	verbose := a.flags.verbose
	if s != nil {
		verbose = s.cfg.UI.Verbose
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if page := ae.Page(); page != nil {
			if rendered, renderErr := page.Render(s.glamourStyle()); renderErr == nil {
				fmt.Fprint(a.stderr, rendered)
			}
		}
	}

	cmd.SilenceUsage = true
	return &ExitError{Code: 1, Err: &displayError{err: err, verbose: verbose}}
}
