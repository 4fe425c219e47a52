// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
)

// maxConfigFileSize bounds config files read from disk.
const maxConfigFileSize = 1 << 20

//go:embed config_schema.cue
var configSchema string

// decodeConfigFile parses TOML data, validates it against the #Config schema
// and returns the validated settings as a nested map ready for Viper.
func decodeConfigFile(data []byte, path string) (map[string]any, error) {
	if int64(len(data)) > maxConfigFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, formatTOMLError(err, path)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema, cue.Filename("config_schema.cue"))
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.Encode(raw)
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	// Unify with the closed #Config definition so unknown keys are rejected.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err, path)
	}
	return configMap, nil
}

// formatTOMLError adds the file path and, when available, the line and column
// of a go-toml decode error.
func formatTOMLError(err error, path string) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("%s:%d:%d: %s", path, row, col, decodeErr.Error())
	}
	return fmt.Errorf("%s: %w", path, err)
}

// formatCUEError formats a CUE error with dotted field paths:
//
//	config.toml: id.match_rule: 3 errors in empty disjunction: ...
func formatCUEError(err error, path string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		fieldPath := formatPath(e.Path())
		msg := e.Error()
		if fieldPath != "" && strings.HasPrefix(msg, fieldPath) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, fieldPath), ":"))
		}
		if fieldPath != "" {
			lines = append(lines, fieldPath+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", path, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", path, strings.Join(lines, "\n  "))
}

// formatPath turns a CUE path such as ["#Config", "vault", "exclude_dirs", "0"]
// into "vault.exclude_dirs[0]". The schema definition label is dropped.
func formatPath(path []string) string {
	var sb strings.Builder
	for _, part := range path {
		if strings.HasPrefix(part, "#") {
			continue
		}
		if isIndex(part) && sb.Len() > 0 {
			sb.WriteString("[" + part + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
