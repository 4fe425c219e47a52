// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/rauletaveras/zettel/pkg/luhmann"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.ID.MatchRule != luhmann.MatchFuzzy {
		t.Errorf("expected default match rule to be fuzzy, got %s", cfg.ID.MatchRule)
	}
	if cfg.ID.Separator != " - " {
		t.Errorf("expected default separator to be \" - \", got %q", cfg.ID.Separator)
	}
	if cfg.ID.AllowUnicode {
		t.Error("expected AllowUnicode to be false by default")
	}
	if cfg.ID.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected default max depth %d, got %d", DefaultMaxDepth, cfg.ID.MaxDepth)
	}
	if cfg.Note.Extension != "md" {
		t.Errorf("expected default extension md, got %q", cfg.Note.Extension)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.List.Format != ListFormatHuman {
		t.Errorf("expected default list format human, got %s", cfg.List.Format)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = false: %v", errs)
	}
}

func TestIDConfig_MatchConfig(t *testing.T) {
	t.Parallel()

	c := IDConfig{MatchRule: luhmann.MatchSeparator, Separator: "__", AllowUnicode: true}
	got := c.MatchConfig()
	want := luhmann.MatchConfig{Rule: luhmann.MatchSeparator, Separator: "__", AllowUnicode: true}
	if got != want {
		t.Errorf("MatchConfig() = %+v, want %+v", got, want)
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "unknown match rule", mutate: func(c *Config) { c.ID.MatchRule = "loose" }, wantErr: luhmann.ErrInvalidMatchRule},
		{name: "empty separator", mutate: func(c *Config) {
			c.ID.MatchRule = luhmann.MatchSeparator
			c.ID.Separator = ""
		}, wantErr: luhmann.ErrEmptySeparator},
		{name: "negative depth", mutate: func(c *Config) { c.ID.MaxDepth = -1 }, wantErr: ErrInvalidMaxDepth},
		{name: "bad color scheme", mutate: func(c *Config) { c.UI.ColorScheme = "neon" }, wantErr: ErrInvalidColorScheme},
		{name: "bad list format", mutate: func(c *Config) { c.List.Format = "csv" }, wantErr: ErrInvalidListFormat},
		{name: "dotted extension", mutate: func(c *Config) { c.Note.Extension = ".md" }, wantErr: ErrInvalidNoteExtension},
		{name: "empty extension", mutate: func(c *Config) { c.Note.Extension = "" }, wantErr: ErrInvalidNoteExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			valid, errs := cfg.IsValid()
			if valid {
				t.Fatal("IsValid() = true, want false")
			}
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidConfig) {
				t.Fatalf("IsValid() errors = %v, want one InvalidConfigError", errs)
			}

			var cfgErr *InvalidConfigError
			if !errors.As(errs[0], &cfgErr) {
				t.Fatalf("error is %T, want *InvalidConfigError", errs[0])
			}
			if !containsError(cfgErr.FieldErrors, tt.wantErr) {
				t.Errorf("field errors %v do not include %v", cfgErr.FieldErrors, tt.wantErr)
			}
		})
	}
}

func TestSeparatorIgnoredOutsideSeparatorRule(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ID.MatchRule = luhmann.MatchStrict
	cfg.ID.Separator = ""
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("strict rule with empty separator should be valid: %v", errs)
	}
}

func TestNoteExtension_Suffix(t *testing.T) {
	t.Parallel()

	if got := NoteExtension("md").Suffix(); got != ".md" {
		t.Errorf("Suffix() = %q, want .md", got)
	}
}

// containsError reports whether any error in errs, or any field error nested
// in an Invalid*ConfigError, matches target.
func containsError(errs []error, target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
		var idErr *InvalidIDConfigError
		if errors.As(err, &idErr) && containsError(idErr.FieldErrors, target) {
			return true
		}
		var uiErr *InvalidUIConfigError
		if errors.As(err, &uiErr) && containsError(uiErr.FieldErrors, target) {
			return true
		}
	}
	return false
}
