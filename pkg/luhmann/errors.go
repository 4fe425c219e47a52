// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned when an ID is parsed from an empty string or
	// constructed from zero components.
	ErrEmptyID = errors.New("empty ID not allowed")
	// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
	ErrInvalidFormat = errors.New("invalid ID format")
	// ErrInvalidComponent is the sentinel error wrapped by InvalidComponentError.
	ErrInvalidComponent = errors.New("invalid ID component")
	// ErrOverflow is the sentinel error wrapped by OverflowError.
	ErrOverflow = errors.New("ID overflow")
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("ID parse error")
	// ErrInvalidMatchRule is the sentinel error wrapped by InvalidMatchRuleError.
	ErrInvalidMatchRule = errors.New("invalid match rule")
	// ErrEmptySeparator is returned when the separator rule is configured
	// without a separator string.
	ErrEmptySeparator = errors.New("separator must not be empty for the separator match rule")
	// ErrMaxDepthExceeded is the sentinel error wrapped by MaxDepthError.
	ErrMaxDepthExceeded = errors.New("maximum ID depth exceeded")
)

type (
	// InvalidFormatError is returned when a string or component sequence does
	// not follow the Luhmann grammar. Fragment holds the offending character or
	// component for diagnostics.
	InvalidFormatError struct {
		Input    string
		Fragment string
		Reason   string
	}

	// InvalidComponentError is returned when an alphabetic component is empty
	// or contains characters outside a-z.
	InvalidComponentError struct {
		Value string
	}

	// OverflowError is returned when a numeric component is already at its
	// maximum value and cannot be incremented.
	OverflowError struct {
		Component string
	}

	// ParseError is returned when a numeric run does not fit the component
	// integer range.
	ParseError struct {
		Run string
	}

	// InvalidMatchRuleError is returned when a MatchRule value is not recognized.
	InvalidMatchRuleError struct {
		Value MatchRule
	}

	// MaxDepthError is returned when generating a child would produce an ID
	// deeper than the configured maximum.
	MaxDepthError struct {
		Depth int
		Max   int
	}
)

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("invalid ID format %q: %s (at %q)", e.Input, e.Reason, e.Fragment)
	}
	return fmt.Sprintf("invalid ID format %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Error implements the error interface for InvalidComponentError.
func (e *InvalidComponentError) Error() string {
	if e.Value == "" {
		return "invalid ID component: alphabetic component must not be empty"
	}
	return fmt.Sprintf("invalid ID component %q: must contain only lowercase letters a-z", e.Value)
}

// Unwrap returns ErrInvalidComponent for errors.Is() compatibility.
func (e *InvalidComponentError) Unwrap() error { return ErrInvalidComponent }

// Error implements the error interface for OverflowError.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("ID overflow: cannot increment numeric component %s", e.Component)
}

// Unwrap returns ErrOverflow for errors.Is() compatibility.
func (e *OverflowError) Unwrap() error { return ErrOverflow }

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("ID parse error: invalid number %q", e.Run)
}

// Unwrap returns ErrParse for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrParse }

// Error implements the error interface for InvalidMatchRuleError.
func (e *InvalidMatchRuleError) Error() string {
	return fmt.Sprintf("invalid match rule %q (valid: strict, separator, fuzzy)", e.Value)
}

// Unwrap returns ErrInvalidMatchRule for errors.Is() compatibility.
func (e *InvalidMatchRuleError) Unwrap() error { return ErrInvalidMatchRule }

// Error implements the error interface for MaxDepthError.
func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("maximum ID depth exceeded: child would have depth %d (max %d)", e.Depth, e.Max)
}

// Unwrap returns ErrMaxDepthExceeded for errors.Is() compatibility.
func (e *MaxDepthError) Unwrap() error { return ErrMaxDepthExceeded }
