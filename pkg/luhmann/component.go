// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"cmp"
	"math"
	"strconv"
)

type (
	// Component is one alternation unit of an ID: either a NumericComponent
	// or an AlphaComponent. The set of implementations is sealed.
	Component interface {
		// String returns the canonical text of the component.
		String() string
		// Increment returns the next component in the same class.
		Increment() (Component, error)
		// IsNumeric reports whether the component is a NumericComponent.
		IsNumeric() bool

		component()
	}

	// NumericComponent is a numeric ID component such as 1, 42 or 123.
	NumericComponent uint32

	// AlphaComponent is an alphabetic ID component such as a, z or abc.
	// A valid value is non-empty and contains only lowercase ASCII letters;
	// use Alpha to construct one from untrusted input.
	AlphaComponent string
)

// Numeric returns a numeric component.
func Numeric(n uint32) NumericComponent { return NumericComponent(n) }

// Alpha returns an alphabetic component, failing with an
// InvalidComponentError when s is empty or not entirely a-z.
func Alpha(s string) (AlphaComponent, error) {
	c := AlphaComponent(s)
	if valid, errs := c.IsValid(); !valid {
		return "", errs[0]
	}
	return c, nil
}

// String returns the decimal representation of the component.
func (c NumericComponent) String() string { return strconv.FormatUint(uint64(c), 10) }

// Increment returns c+1, or an OverflowError when c is already the largest
// representable value. It never wraps around.
func (c NumericComponent) Increment() (Component, error) {
	if c == math.MaxUint32 {
		return nil, &OverflowError{Component: c.String()}
	}
	return c + 1, nil
}

// IsNumeric always returns true.
func (c NumericComponent) IsNumeric() bool { return true }

func (NumericComponent) component() {}

// String returns the component text.
func (c AlphaComponent) String() string { return string(c) }

// Increment returns the bijective base-26 successor of c. It never fails.
func (c AlphaComponent) Increment() (Component, error) {
	return AlphaComponent(IncrementAlpha(string(c))), nil
}

// IsNumeric always returns false.
func (c AlphaComponent) IsNumeric() bool { return false }

func (AlphaComponent) component() {}

// IsValid returns whether the AlphaComponent is non-empty and contains only
// lowercase ASCII letters, and a list of validation errors if it is not.
func (c AlphaComponent) IsValid() (bool, []error) {
	if c == "" {
		return false, []error{&InvalidComponentError{Value: ""}}
	}
	for i := 0; i < len(c); i++ {
		if !isLower(c[i]) {
			return false, []error{&InvalidComponentError{Value: string(c)}}
		}
	}
	return true, nil
}

// CompareComponents orders two components: numerics by value, alphas
// lexicographically. A numeric component sorts before an alphabetic one.
// The result is -1, 0 or +1 as with cmp.Compare.
func CompareComponents(a, b Component) int {
	switch x := a.(type) {
	case NumericComponent:
		if y, ok := b.(NumericComponent); ok {
			return cmp.Compare(x, y)
		}
		return -1
	case AlphaComponent:
		if y, ok := b.(AlphaComponent); ok {
			return cmp.Compare(x, y)
		}
		return 1
	default:
		return 0
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
