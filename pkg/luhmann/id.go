// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"fmt"
	"slices"
	"strings"
)

// ID is a complete Luhmann identifier such as "1", "1a", "1a2b" or "42c17z".
//
// An ID owns a non-empty sequence of components in which even positions
// (0-based) are numeric and odd positions are alphabetic. Every constructor
// enforces this; the zero ID has no components and is not a valid identifier.
// IDs are immutable values.
type ID struct {
	components []Component
}

// New builds an ID from components, validating the alternation invariant.
// It returns ErrEmptyID for no components, an InvalidComponentError for a
// malformed alphabetic component, and an InvalidFormatError when the classes
// do not alternate starting with a number.
func New(components ...Component) (ID, error) {
	if len(components) == 0 {
		return ID{}, ErrEmptyID
	}

	for i, c := range components {
		if c == nil {
			return ID{}, &InvalidFormatError{
				Input:  joinComponents(components),
				Reason: fmt.Sprintf("component %d is missing", i),
			}
		}
		if a, ok := c.(AlphaComponent); ok {
			if valid, errs := a.IsValid(); !valid {
				return ID{}, errs[0]
			}
		}

		wantNumeric := i%2 == 0
		if wantNumeric != c.IsNumeric() {
			want := "alphabetic"
			if wantNumeric {
				want = "numeric"
			}
			return ID{}, &InvalidFormatError{
				Input:    joinComponents(components),
				Fragment: c.String(),
				Reason:   fmt.Sprintf("component %d should be %s", i, want),
			}
		}
	}

	return ID{components: slices.Clone(components)}, nil
}

// FromNumber returns the root ID for n.
func FromNumber(n uint32) ID {
	return ID{components: []Component{Numeric(n)}}
}

// Components returns a copy of the ID's components.
func (id ID) Components() []Component { return slices.Clone(id.components) }

// Depth returns the number of components.
func (id ID) Depth() int { return len(id.components) }

// IsZero reports whether id is the zero ID (no components).
func (id ID) IsZero() bool { return len(id.components) == 0 }

// IsRoot reports whether id is a single numeric component.
func (id ID) IsRoot() bool {
	return len(id.components) == 1 && id.components[0].IsNumeric()
}

// Last returns the final component, or nil for the zero ID.
func (id ID) Last() Component {
	if len(id.components) == 0 {
		return nil
	}
	return id.components[len(id.components)-1]
}

// Parent returns the ID with the last component removed. The boolean is false
// for root IDs, which have no parent.
func (id ID) Parent() (ID, bool) {
	if len(id.components) <= 1 {
		return ID{}, false
	}
	return ID{components: slices.Clone(id.components[:len(id.components)-1])}, true
}

// Ancestors returns every proper prefix of id in root-to-parent order.
// Roots have no ancestors.
func (id ID) Ancestors() []ID {
	if len(id.components) <= 1 {
		return nil
	}
	out := make([]ID, 0, len(id.components)-1)
	for i := 1; i < len(id.components); i++ {
		out = append(out, ID{components: slices.Clone(id.components[:i])})
	}
	return out
}

// NextSibling returns id with its last component incremented (1a2 -> 1a3,
// 1z -> 1aa). It fails with an OverflowError only when the last component is
// numeric and already at its maximum.
func (id ID) NextSibling() (ID, error) {
	if len(id.components) == 0 {
		return ID{}, ErrEmptyID
	}

	last := len(id.components) - 1
	next, err := id.components[last].Increment()
	if err != nil {
		return ID{}, err
	}

	out := slices.Clone(id.components)
	out[last] = next
	return ID{components: out}, nil
}

// FirstChild appends the first component of the opposite class: an odd depth
// ends in a number and gets "a", an even depth ends in letters and gets 1.
// So 1 -> 1a and 1a -> 1a1.
func (id ID) FirstChild() ID {
	out := make([]Component, len(id.components), len(id.components)+1)
	copy(out, id.components)
	if len(id.components)%2 == 0 {
		out = append(out, Numeric(1))
	} else {
		out = append(out, AlphaComponent("a"))
	}
	return ID{components: out}
}

// IsAncestorOf reports whether id is a strict prefix of other.
func (id ID) IsAncestorOf(other ID) bool {
	if len(id.components) >= len(other.components) {
		return false
	}
	for i, c := range id.components {
		if c != other.components[i] {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether other is a strict prefix of id.
func (id ID) IsDescendantOf(other ID) bool { return other.IsAncestorOf(id) }

// IsSiblingOf reports whether id and other have the same depth and share
// every component except the last. All roots are siblings of each other,
// and an ID is its own sibling.
func (id ID) IsSiblingOf(other ID) bool {
	if len(id.components) != len(other.components) || len(id.components) == 0 {
		return false
	}
	for i := 0; i < len(id.components)-1; i++ {
		if id.components[i] != other.components[i] {
			return false
		}
	}
	return true
}

// Equal reports whether id and other have identical components.
func (id ID) Equal(other ID) bool {
	return slices.Equal(id.components, other.components)
}

// Compare orders IDs component by component; when one is a prefix of the
// other, the shorter ID sorts first. It returns -1, 0 or +1.
func (id ID) Compare(other ID) int {
	return slices.CompareFunc(id.components, other.components, CompareComponents)
}

// String returns the canonical form: component strings concatenated with no
// separators. This is also the form handed to an ExistenceChecker.
func (id ID) String() string { return joinComponents(id.components) }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	if id.IsZero() {
		return nil, ErrEmptyID
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func joinComponents(components []Component) string {
	var sb strings.Builder
	for _, c := range components {
		if c != nil {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}
