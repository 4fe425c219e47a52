// SPDX-License-Identifier: MPL-2.0

package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidPath is the sentinel error wrapped by PathExpansionError.
var ErrInvalidPath = errors.New("invalid vault path")

// PathExpansionError is returned when a configured path cannot be expanded,
// for example because it references an unset variable.
type PathExpansionError struct {
	Path string
	Err  error
}

// Error implements the error interface for PathExpansionError.
func (e *PathExpansionError) Error() string {
	return fmt.Sprintf("invalid vault path %q: %v", e.Path, e.Err)
}

// Unwrap returns ErrInvalidPath for errors.Is() compatibility.
func (e *PathExpansionError) Unwrap() []error { return []error{ErrInvalidPath, e.Err} }

// ExpandPath expands a leading ~ and shell-style variable references
// ($HOME/notes, ${ZK_ROOT}/main) in path using the process environment.
// Referencing an unset variable is an error. Quotes and command
// substitutions are not interpreted.
func ExpandPath(path string) (string, error) {
	return expandPath(path, os.Environ())
}

func expandPath(path string, environ []string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := homeDir(environ)
		if err != nil {
			return "", &PathExpansionError{Path: path, Err: err}
		}
		path = home + path[1:]
	}

	if !strings.ContainsRune(path, '$') {
		return filepath.Clean(path), nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(path))
	if err != nil {
		return "", &PathExpansionError{Path: path, Err: err}
	}
	cfg := &expand.Config{
		Env:     expand.ListEnviron(environ...),
		NoUnset: true,
	}
	expanded, err := expand.Document(cfg, word)
	if err != nil {
		return "", &PathExpansionError{Path: path, Err: err}
	}
	return filepath.Clean(expanded), nil
}

func homeDir(environ []string) (string, error) {
	env := expand.ListEnviron(environ...)
	if home := env.Get("HOME").String(); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}
