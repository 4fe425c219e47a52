// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rauletaveras/zettel/pkg/luhmann"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// ListFormatHuman prints one note per line.
	ListFormatHuman ListFormat = "human"
	// ListFormatJSON prints the note list as a JSON array.
	ListFormatJSON ListFormat = "json"
	// ListFormatYAML prints the note list as a YAML sequence.
	ListFormatYAML ListFormat = "yaml"

	// DefaultMaxDepth is the default limit on generated child depth.
	DefaultMaxDepth = 10
	// DefaultNoteExtension is the extension of note files, without the dot.
	DefaultNoteExtension = "md"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidListFormat is returned when a ListFormat value is not recognized.
	ErrInvalidListFormat = errors.New("invalid list format")
	// ErrInvalidNoteExtension is returned when the note extension is empty or
	// contains a path separator or a leading dot.
	ErrInvalidNoteExtension = errors.New("invalid note extension")
	// ErrInvalidMaxDepth is returned when id.max_depth is negative.
	ErrInvalidMaxDepth = errors.New("invalid max depth")
	// ErrInvalidIDConfig is the sentinel error wrapped by InvalidIDConfigError.
	ErrInvalidIDConfig = errors.New("invalid id config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ListFormat selects the output format of `zettel list`.
	ListFormat string

	// InvalidListFormatError is returned when a ListFormat value is not recognized.
	InvalidListFormatError struct {
		Value ListFormat
	}

	// NoteExtension is a note file extension such as "md".
	NoteExtension string

	// InvalidNoteExtensionError is returned when a NoteExtension is unusable.
	InvalidNoteExtensionError struct {
		Value NoteExtension
	}

	// InvalidMaxDepthError is returned when id.max_depth is negative.
	InvalidMaxDepthError struct {
		Value int
	}

	// InvalidIDConfigError is returned when an IDConfig has invalid fields.
	// It wraps ErrInvalidIDConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidIDConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Vault locates the notes directory
		Vault VaultConfig `json:"vault" yaml:"vault" toml:"vault" mapstructure:"vault"`
		// ID configures identifier matching and generation
		ID IDConfig `json:"id" yaml:"id" toml:"id" mapstructure:"id"`
		// Note configures note files
		Note NoteConfig `json:"note" yaml:"note" toml:"note" mapstructure:"note"`
		// UI configures the user interface
		UI UIConfig `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
		// List configures `zettel list`
		List ListConfig `json:"list" yaml:"list" toml:"list" mapstructure:"list"`
	}

	// VaultConfig locates the vault.
	VaultConfig struct {
		// DefaultPath is the vault directory used when --vault is not given.
		// After loading it holds the expanded, absolute path.
		DefaultPath string `json:"default_path" yaml:"default_path" toml:"default_path" mapstructure:"default_path"`
		// ExcludeDirs lists directories, relative to the vault root, that are
		// never scanned for notes.
		ExcludeDirs []string `json:"exclude_dirs" yaml:"exclude_dirs" toml:"exclude_dirs" mapstructure:"exclude_dirs"`
	}

	// IDConfig configures how IDs are found in filenames and generated.
	IDConfig struct {
		// MatchRule is one of strict, separator or fuzzy
		MatchRule luhmann.MatchRule `json:"match_rule" yaml:"match_rule" toml:"match_rule" mapstructure:"match_rule"`
		// Separator follows the ID under the separator rule
		Separator string `json:"separator" yaml:"separator" toml:"separator" mapstructure:"separator"`
		// AllowUnicode widens the filename character class
		AllowUnicode bool `json:"allow_unicode" yaml:"allow_unicode" toml:"allow_unicode" mapstructure:"allow_unicode"`
		// MaxDepth limits generated child depth (0 = unlimited)
		MaxDepth int `json:"max_depth" yaml:"max_depth" toml:"max_depth" mapstructure:"max_depth"`
	}

	// NoteConfig configures note files.
	NoteConfig struct {
		// Extension of note files, without the leading dot
		Extension NoteExtension `json:"extension" yaml:"extension" toml:"extension" mapstructure:"extension"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and error chains
		Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
	}

	// ListConfig configures `zettel list`.
	ListConfig struct {
		// Format is the default output format
		Format ListFormat `json:"format" yaml:"format" toml:"format" mapstructure:"format"`
	}
)

// MatchConfig returns the filename matching policy for the luhmann package.
func (c IDConfig) MatchConfig() luhmann.MatchConfig {
	return luhmann.MatchConfig{
		Rule:         c.MatchRule,
		Separator:    c.Separator,
		AllowUnicode: c.AllowUnicode,
	}
}

// IsValid returns whether the IDConfig has valid fields. The match rule and
// separator are checked by luhmann.MatchConfig.IsValid.
func (c IDConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.MatchConfig().IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.MaxDepth < 0 {
		errs = append(errs, &InvalidMaxDepthError{Value: c.MaxDepth})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidIDConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidIDConfigError.
func (e *InvalidIDConfigError) Error() string {
	return fmt.Sprintf("invalid id config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidIDConfig for errors.Is() compatibility.
func (e *InvalidIDConfigError) Unwrap() error { return ErrInvalidIDConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); Verbose needs no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to ID.IsValid(), Note.Extension.IsValid(), UI.IsValid()
// and List.Format.IsValid(). Vault paths are checked when the vault is opened.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ID.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Note.Extension.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.List.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidListFormatError.
func (e *InvalidListFormatError) Error() string {
	return fmt.Sprintf("invalid list format %q (valid: human, json, yaml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidListFormatError) Unwrap() error { return ErrInvalidListFormat }

// String returns the string representation of the ListFormat.
func (f ListFormat) String() string { return string(f) }

// IsValid returns whether the ListFormat is one of the defined formats.
func (f ListFormat) IsValid() (bool, []error) {
	switch f {
	case ListFormatHuman, ListFormatJSON, ListFormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidListFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidNoteExtensionError.
func (e *InvalidNoteExtensionError) Error() string {
	return fmt.Sprintf("invalid note extension %q: must be non-empty, without a leading dot or path separator", e.Value)
}

// Unwrap returns ErrInvalidNoteExtension for errors.Is() compatibility.
func (e *InvalidNoteExtensionError) Unwrap() error { return ErrInvalidNoteExtension }

// String returns the string representation of the NoteExtension.
func (x NoteExtension) String() string { return string(x) }

// Suffix returns the extension with its leading dot (".md").
func (x NoteExtension) Suffix() string { return "." + string(x) }

// IsValid returns whether the NoteExtension can name note files.
func (x NoteExtension) IsValid() (bool, []error) {
	s := string(x)
	if strings.TrimSpace(s) == "" || strings.HasPrefix(s, ".") || strings.ContainsAny(s, `/\`) {
		return false, []error{&InvalidNoteExtensionError{Value: x}}
	}
	return true, nil
}

// Error implements the error interface for InvalidMaxDepthError.
func (e *InvalidMaxDepthError) Error() string {
	return fmt.Sprintf("invalid max depth %d: must be zero (unlimited) or positive", e.Value)
}

// Unwrap returns ErrInvalidMaxDepth for errors.Is() compatibility.
func (e *InvalidMaxDepthError) Unwrap() error { return ErrInvalidMaxDepth }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			DefaultPath: "", // current directory
			ExcludeDirs: []string{},
		},
		ID: IDConfig{
			MatchRule:    luhmann.MatchFuzzy,
			Separator:    luhmann.DefaultSeparator,
			AllowUnicode: false,
			MaxDepth:     DefaultMaxDepth,
		},
		Note: NoteConfig{
			Extension: DefaultNoteExtension,
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		List: ListConfig{
			Format: ListFormatHuman,
		},
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}
