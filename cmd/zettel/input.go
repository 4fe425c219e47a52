// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNoInput is returned when a command expecting piped input is run
	// interactively without an argument.
	ErrNoInput = errors.New("no input provided")
	// ErrEmptyInput is returned when piped input holds no non-blank line.
	ErrEmptyInput = errors.New("empty input provided")
)

// readInputs returns args when present, otherwise the non-blank lines of
// stdin, trimmed. This keeps every id subcommand usable in a pipeline:
//
//	zettel list --format json | jq -r '.[].id' | zettel id validate
func (a *App) readInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if f, ok := a.stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return nil, fmt.Errorf("%w: pass an argument or pipe input, e.g. 'echo 1a2 | zettel id next-sibling'", ErrNoInput)
		}
	}

	var lines []string
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	return lines, nil
}
