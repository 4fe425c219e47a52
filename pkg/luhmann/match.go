// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"regexp"
)

const (
	// MatchStrict requires the whole filename to be the ID ("1a2").
	MatchStrict MatchRule = "strict"
	// MatchSeparator requires the ID to be followed by the configured
	// separator ("1a2 - Title.md").
	MatchSeparator MatchRule = "separator"
	// MatchFuzzy requires the ID to be followed by any non-ID character
	// ("1a2_note.md", "1a2-note.md", "1a2.md"), or to be the whole filename.
	MatchFuzzy MatchRule = "fuzzy"

	// DefaultSeparator is the separator used between ID and title.
	DefaultSeparator = " - "

	asciiClass   = `0-9a-z`
	unicodeClass = `0-9\p{L}`
)

type (
	// MatchRule selects how an ID is located in a filename.
	MatchRule string

	// MatchConfig is the filename matching policy consumed by Matcher and
	// Manager.
	MatchConfig struct {
		// Rule is one of strict, separator or fuzzy.
		Rule MatchRule
		// Separator follows the ID under the separator rule.
		Separator string
		// AllowUnicode widens the ID character class from [0-9a-z] to
		// digits plus any Unicode letter. Captures must still parse as a
		// Luhmann ID, so this only changes where the candidate run ends.
		AllowUnicode bool
	}

	// Matcher extracts IDs from filenames. Patterns are compiled once by
	// NewMatcher and tried in order; the first capture that parses wins.
	Matcher struct {
		cfg      MatchConfig
		patterns []matchPattern
	}

	matchPattern struct {
		name string
		re   *regexp.Regexp
	}
)

// String returns the string representation of the MatchRule.
func (r MatchRule) String() string { return string(r) }

// IsValid returns whether the MatchRule is one of the defined rules,
// and a list of validation errors if it is not.
func (r MatchRule) IsValid() (bool, []error) {
	switch r {
	case MatchStrict, MatchSeparator, MatchFuzzy:
		return true, nil
	default:
		return false, []error{&InvalidMatchRuleError{Value: r}}
	}
}

// DefaultMatchConfig returns the strict rule with the default separator and
// ASCII-only IDs.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Rule:         MatchStrict,
		Separator:    DefaultSeparator,
		AllowUnicode: false,
	}
}

// IsValid returns whether the MatchConfig has a known rule and, for the
// separator rule, a non-empty separator.
func (c MatchConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Rule.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Rule == MatchSeparator && c.Separator == "" {
		errs = append(errs, ErrEmptySeparator)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// NewMatcher compiles the patterns for cfg. It returns the first validation
// error when cfg is invalid.
func NewMatcher(cfg MatchConfig) (*Matcher, error) {
	if valid, errs := cfg.IsValid(); !valid {
		return nil, errs[0]
	}

	class := asciiClass
	if cfg.AllowUnicode {
		class = unicodeClass
	}
	run := `^([` + class + `]+)`

	m := &Matcher{cfg: cfg}
	switch cfg.Rule {
	case MatchStrict:
		m.add("strict", run+`$`)
	case MatchSeparator:
		m.add("separator", run+regexp.QuoteMeta(cfg.Separator))
	case MatchFuzzy:
		m.add("fuzzy-boundary", run+`[^`+class+`]`)
		// A bare ID with no extension or title is accepted too.
		m.add("fuzzy-whole", run+`$`)
	}
	return m, nil
}

// Config returns the configuration the matcher was compiled from.
func (m *Matcher) Config() MatchConfig { return m.cfg }

// Extract returns the ID at the start of filename according to the matching
// rule. The boolean is false when no pattern matches or the matched run is
// not a valid Luhmann ID; neither case is an error.
func (m *Matcher) Extract(filename string) (ID, bool) {
	for _, p := range m.patterns {
		sub := p.re.FindStringSubmatch(filename)
		if sub == nil {
			continue
		}
		if id, err := Parse(sub[1]); err == nil {
			return id, true
		}
	}
	return ID{}, false
}

func (m *Matcher) add(name, expr string) {
	m.patterns = append(m.patterns, matchPattern{name: name, re: regexp.MustCompile(expr)})
}

// Patterns returns the compiled patterns in trial order as "name: expression"
// strings, for diagnostics.
func (m *Matcher) Patterns() []string {
	out := make([]string, 0, len(m.patterns))
	for _, p := range m.patterns {
		out = append(out, p.name+": "+p.re.String())
	}
	return out
}
