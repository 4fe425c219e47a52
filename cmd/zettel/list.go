// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rauletaveras/zettel/internal/config"
	"github.com/rauletaveras/zettel/internal/issue"
	"github.com/rauletaveras/zettel/internal/vault"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// noteRecord is the machine-readable form of a listed note.
type noteRecord struct {
	ID       string `json:"id" yaml:"id"`
	Filename string `json:"filename" yaml:"filename"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Path     string `json:"path" yaml:"path"`
}

// newListCommand creates the `zettel list` command.
func newListCommand(app *App) *cobra.Command {
	var (
		fullPaths bool
		format    string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the notes in the vault",
		Long: `List every note whose filename starts with an ID, in ID order
(1, 1a, 1a1, 1b, 2, ...). Notes in hidden and excluded directories are skipped.`,
		Example: `  zettel list
  zettel list --full-paths
  zettel list --format json | jq -r '.[].id'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, fullPaths, format)
		},
	}

	listCmd.Flags().BoolVar(&fullPaths, "full-paths", false, "show the full path of each note")
	listCmd.Flags().StringVarP(&format, "format", "f", "", "output format: human, json or yaml (default from list.format)")

	return listCmd
}

func runList(cmd *cobra.Command, app *App, fullPaths bool, format string) error {
	s, err := app.openSession(cmd)
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	listFormat := s.cfg.List.Format
	if format != "" {
		listFormat = config.ListFormat(format)
		if valid, errs := listFormat.IsValid(); !valid {
			return app.fail(cmd, s, issue.NewErrorContext().
				WithOperation("list notes").
				WithSuggestion("Use --format human, --format json or --format yaml").
				Wrap(errs[0]).
				Build())
		}
	}

	v, err := s.vault()
	if err != nil {
		return app.fail(cmd, s, err)
	}
	notes, err := v.List(cmd.Context())
	if err != nil {
		return app.fail(cmd, s, listError(v.Root(), err))
	}
	s.logger.Debug("listed notes", "vault", v.Root(), "count", len(notes))

	switch listFormat {
	case config.ListFormatJSON:
		return writeJSON(app.stdout, toRecords(notes))
	case config.ListFormatYAML:
		return writeYAML(app.stdout, toRecords(notes))
	default:
		writeHuman(app.stdout, notes, fullPaths)
		return nil
	}
}

func listError(root string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("list notes").
		WithResource(root).
		Wrap(err)
	if errors.Is(err, vault.ErrVaultNotFound) || errors.Is(err, vault.ErrNotADirectory) {
		ec.WithSuggestion("Create it with 'zettel init " + root + "'").
			WithSuggestion("Or point zettel elsewhere with --vault or ZETTEL_VAULT").
			WithHelpPage(issue.VaultNotFoundId)
	}
	return ec.Build()
}

func toRecords(notes []vault.Note) []noteRecord {
	records := make([]noteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, noteRecord{
			ID:       n.ID.String(),
			Filename: n.Filename,
			Title:    n.Title,
			Path:     n.Path,
		})
	}
	return records
}

func writeHuman(w io.Writer, notes []vault.Note, fullPaths bool) {
	for _, n := range notes {
		switch {
		case fullPaths:
			fmt.Fprintf(w, "%s (%s)\n", CmdStyle.Render(n.ID.String()), n.Path)
		case n.Title != "":
			fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render(n.ID.String()), n.Title)
		default:
			fmt.Fprintln(w, CmdStyle.Render(n.ID.String()))
		}
	}
}

func writeJSON(w io.Writer, records []noteRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode notes as JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, records []noteRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode notes as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode notes as YAML: %w", err)
	}
	return nil
}
