// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rauletaveras/zettel/internal/issue"
	"github.com/rauletaveras/zettel/pkg/luhmann"

	"github.com/spf13/cobra"
)

// ErrNoIDInFilename is returned by 'id parse' when the active match rule
// finds no ID.
var ErrNoIDInFilename = errors.New("no valid ID found in filename")

// newIDCommand creates the `zettel id` command tree.
func newIDCommand(app *App) *cobra.Command {
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Generate, parse and validate Luhmann IDs",
		Long: `Generate, parse and validate Luhmann IDs.

Each subcommand takes its input as an argument, or reads one value per
line from stdin when the argument is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	idCmd.AddCommand(&cobra.Command{
		Use:   "next-sibling [id]",
		Short: "Print the next free sibling of an ID",
		Long: `Print the first ID after the given one, at the same level, that no note
in the vault uses yet. 1a2 is followed by 1a3, 1z by 1aa.`,
		Example: `  zettel id next-sibling 1a2
  echo 1a2 | zettel id next-sibling`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNextID(cmd, app, args, "find next sibling", (*luhmann.Manager).NextAvailableSiblingContext)
		},
	})

	idCmd.AddCommand(&cobra.Command{
		Use:   "next-child [id]",
		Short: "Print the first free child of an ID",
		Long: `Print the first free ID one level below the given one. Children of a
number are letters (1 -> 1a) and children of a letter are numbers (1a -> 1a1).
If that child exists the next free one at the same level is returned.`,
		Example: `  zettel id next-child 1
  zettel id next-child 1a`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNextID(cmd, app, args, "find next child", (*luhmann.Manager).NextAvailableChildContext)
		},
	})

	idCmd.AddCommand(&cobra.Command{
		Use:   "parse [filename]",
		Short: "Extract the ID from a filename",
		Long: `Extract the ID at the start of a filename using the configured match rule
(strict, separator or fuzzy).`,
		Example: `  zettel id parse "1a2 - My note.md"
  zettel --match-rule fuzzy id parse 1a2_note.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, app, args)
		},
	})

	idCmd.AddCommand(&cobra.Command{
		Use:   "validate [id]",
		Short: "Validate an ID and show its structure",
		Example: `  zettel id validate 1a2
  zettel list --format json | jq -r '.[].id' | zettel id validate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args)
		},
	})

	return idCmd
}

// runNextID parses every input, asks next for the first free ID and prints
// one result per line.
func runNextID(cmd *cobra.Command, app *App, args []string, op string, next nextFunc) error {
	inputs, err := app.readInputs(args)
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	s, err := app.openSession(cmd)
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	v, err := s.vault()
	if err != nil {
		return app.fail(cmd, s, err)
	}
	if checkErr := v.Check(); checkErr != nil {
		s.logger.Warn("vault not available, treating every ID as free", "vault", v.Root(), "err", checkErr)
	}
	mgr, err := s.manager(v)
	if err != nil {
		return app.fail(cmd, s, err)
	}

	for _, input := range inputs {
		id, err := luhmann.Parse(input)
		if err != nil {
			return app.fail(cmd, s, idError(op, input, err))
		}

		result, err := next(mgr, cmd.Context(), id)
		if err != nil {
			return app.fail(cmd, s, idError(op, input, err))
		}
		s.logger.Debug(op, "from", id, "result", result)
		fmt.Fprintln(app.stdout, result)
	}

	return nil
}

func runParse(cmd *cobra.Command, app *App, args []string) error {
	inputs, err := app.readInputs(args)
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	s, err := app.openSession(cmd)
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	m, err := s.matcher()
	if err != nil {
		return app.fail(cmd, s, err)
	}

	for _, filename := range inputs {
		id, ok := m.Extract(filename)
		if !ok {
			s.logger.Debug("no match", "filename", filename, "patterns", strings.Join(m.Patterns(), "; "))
			return app.fail(cmd, s, issue.NewErrorContext().
				WithOperation("parse filename").
				WithResource(filename).
				WithSuggestion(fmt.Sprintf("The current match rule is %q", s.cfg.ID.MatchRule)).
				WithSuggestion("Try another rule with --match-rule strict|separator|fuzzy").
				WithHelpPage(issue.NoIDInFilenameId).
				Wrap(fmt.Errorf("%w (match rule: %s)", ErrNoIDInFilename, s.cfg.ID.MatchRule)).
				Build())
		}
		fmt.Fprintln(app.stdout, id)
	}

	return nil
}

// runValidate prints a structure report for every valid input. Invalid
// inputs are reported on stderr; the command fails if any input was invalid.
// No configuration is needed, so a broken config file does not prevent it.
func runValidate(cmd *cobra.Command, app *App, args []string) error {
	inputs, err := app.readInputs(args)
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	if len(inputs) == 1 {
		id, err := luhmann.Parse(inputs[0])
		if err != nil {
			return app.fail(cmd, nil, idError("validate ID", inputs[0], err))
		}
		fmt.Fprint(app.stdout, renderIDReport(id))
		return nil
	}

	invalid := 0
	for i, input := range inputs {
		id, err := luhmann.Parse(input)
		if err != nil {
			invalid++
			fmt.Fprintf(app.stderr, "%s %s: %v\n", ErrorStyle.Render("✗"), input, err)
			continue
		}
		if i > 0 {
			fmt.Fprintln(app.stdout)
		}
		fmt.Fprint(app.stdout, renderIDReport(id))
	}
	if invalid > 0 {
		return app.fail(cmd, nil, fmt.Errorf("%d of %d IDs are invalid", invalid, len(inputs)))
	}

	return nil
}

// nextFunc is the shape of the Manager's context-aware search methods.
type nextFunc = func(*luhmann.Manager, context.Context, luhmann.ID) (luhmann.ID, error)

// idError wraps a luhmann error with the matching help page.
func idError(op, input string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation(op).
		WithResource(input).
		Wrap(err)

	switch {
	case errors.Is(err, luhmann.ErrOverflow):
		ec.WithHelpPage(issue.IDOverflowId)
	case errors.Is(err, luhmann.ErrMaxDepthExceeded):
		ec.WithHelpPage(issue.MaxDepthExceededId)
	case errors.Is(err, luhmann.ErrEmptyID),
		errors.Is(err, luhmann.ErrInvalidFormat),
		errors.Is(err, luhmann.ErrInvalidComponent),
		errors.Is(err, luhmann.ErrParse):
		ec.WithSuggestion("IDs start with a number and alternate numbers and lowercase letters, e.g. 1a2b").
			WithHelpPage(issue.InvalidIDId)
	}

	return ec.Build()
}

// renderIDReport describes the structure of id.
func renderIDReport(id luhmann.ID) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", SuccessStyle.Render("✓ Valid ID:"), numericStyle.Render(id.String()))
	line := func(label, value string) {
		fmt.Fprintf(&b, "  %s%s\n", labelStyle.Render(label), value)
	}

	components := id.Components()
	line("Components:", fmt.Sprint(len(components)))
	line("Depth:", fmt.Sprint(id.Depth()))
	line("Root note:", fmt.Sprint(id.IsRoot()))
	if parent, ok := id.Parent(); ok {
		line("Parent:", parent.String())
	}

	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c.IsNumeric() {
			parts = append(parts, numericStyle.Render(c.String())+"(num)")
		} else {
			parts = append(parts, alphaStyle.Render(c.String())+"(alpha)")
		}
	}
	line("Structure:", strings.Join(parts, " → "))

	if sibling, err := id.NextSibling(); err == nil {
		line("Next sibling:", sibling.String())
	} else {
		line("Next sibling:", WarningStyle.Render("none ("+err.Error()+")"))
	}
	line("First child:", id.FirstChild().String())

	return b.String()
}
