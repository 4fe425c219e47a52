// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"context"
	"errors"
	"math"
	"slices"
	"strconv"
	"testing"
)

// setChecker answers from a fixed set and records every probe.
type setChecker struct {
	ids    map[string]bool
	probes []string
}

func newSetChecker(ids ...string) *setChecker {
	c := &setChecker{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		c.ids[id] = true
	}
	return c
}

func (c *setChecker) Exists(id string) bool {
	c.probes = append(c.probes, id)
	return c.ids[id]
}

func newTestManager(t *testing.T, exists ExistenceChecker, opts ...ManagerOption) *Manager {
	t.Helper()

	m, err := NewManager(DefaultMatchConfig(), exists, opts...)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	return m
}

func TestManager_NextAvailableSibling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		current  string
		want     string
	}{
		{name: "skips taken roots", existing: []string{"1", "2", "1a", "1b", "1a1"}, current: "1", want: "3"},
		{name: "free immediately", existing: []string{"1"}, current: "1", want: "2"},
		{name: "alpha level", existing: []string{"1a", "1b", "1c"}, current: "1a", want: "1d"},
		{name: "alpha carry", existing: []string{"1y", "1z", "1aa"}, current: "1y", want: "1ab"},
		{name: "deep numeric", existing: []string{"1a1", "1a2"}, current: "1a1", want: "1a3"},
		{name: "gap is filled", existing: []string{"1", "2", "4"}, current: "1", want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, newSetChecker(tt.existing...))
			got, err := m.NextAvailableSibling(MustParse(tt.current))
			if err != nil {
				t.Fatalf("NextAvailableSibling() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("NextAvailableSibling(%q) = %q, want %q", tt.current, got, tt.want)
			}
		})
	}
}

func TestManager_NextAvailableChild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		parent   string
		want     string
	}{
		{name: "first child free", parent: "1", want: "1a"},
		{name: "alpha children taken", existing: []string{"1a", "1b"}, parent: "1", want: "1c"},
		{name: "numeric children taken", existing: []string{"1a1", "1a2", "1a3"}, parent: "1a", want: "1a4"},
		{name: "siblings of parent ignored", existing: []string{"2", "3"}, parent: "2", want: "2a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, newSetChecker(tt.existing...))
			parent := MustParse(tt.parent)
			got, err := m.NextAvailableChild(parent)
			if err != nil {
				t.Fatalf("NextAvailableChild() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("NextAvailableChild(%q) = %q, want %q", tt.parent, got, tt.want)
			}
			if !parent.IsAncestorOf(got) || got.Depth() != parent.Depth()+1 {
				t.Errorf("%q is not a direct child of %q", got, parent)
			}
		})
	}
}

func TestManager_ProbesInOrderWithoutCaching(t *testing.T) {
	t.Parallel()

	checker := newSetChecker("2", "3", "4")
	m := newTestManager(t, checker)

	got, err := m.NextAvailableSibling(FromNumber(1))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "5" {
		t.Fatalf("NextAvailableSibling(1) = %q, want 5", got)
	}
	if want := []string{"2", "3", "4", "5"}; !slices.Equal(checker.probes, want) {
		t.Errorf("probes = %v, want %v", checker.probes, want)
	}

	// A second search asks again instead of reusing earlier answers, so an
	// ID created in between is seen.
	checker.ids["5"] = true
	checker.probes = nil
	got, err = m.NextAvailableSibling(FromNumber(1))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "6" {
		t.Errorf("after creating 5, NextAvailableSibling(1) = %q, want 6", got)
	}
	if len(checker.probes) != 5 {
		t.Errorf("second search made %d probes, want 5", len(checker.probes))
	}
}

func TestManager_Overflow(t *testing.T) {
	t.Parallel()

	maxID := strconv.FormatUint(math.MaxUint32, 10)
	nearMax := strconv.FormatUint(math.MaxUint32-1, 10)

	// Everything at the root level from nearMax upward is taken.
	m := newTestManager(t, ExistsFunc(func(id string) bool {
		return id == nearMax || id == maxID
	}))
	_, err := m.NextAvailableSibling(MustParse(nearMax))
	var overflowErr *OverflowError
	if !errors.As(err, &overflowErr) {
		t.Fatalf("NextAvailableSibling() error = %v, want *OverflowError", err)
	}
	if overflowErr.Component != maxID {
		t.Errorf("OverflowError.Component = %q, want %q", overflowErr.Component, maxID)
	}

	// Nested numeric levels hit the same ceiling.
	m = newTestManager(t, ExistsFunc(func(string) bool { return true }))
	got, err := m.NextAvailableSibling(MustParse("1a" + maxID))
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("NextAvailableSibling() = %q, %v; want ErrOverflow", got, err)
	}
}

func TestManager_NextAvailableChild_StopsAtFirstGap(t *testing.T) {
	t.Parallel()

	calls := 0
	m := newTestManager(t, ExistsFunc(func(id string) bool {
		calls++
		return id == "1a1" || id == "1a3"
	}))

	got, err := m.NextAvailableChild(MustParse("1a"))
	if err != nil {
		t.Fatalf("NextAvailableChild() error: %v", err)
	}
	if got.String() != "1a2" {
		t.Errorf("NextAvailableChild(1a) = %q, want 1a2", got)
	}
	if calls != 2 {
		t.Errorf("existence checked %d times, want 2", calls)
	}
}

func TestManager_MaxDepth(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, nil, WithMaxDepth(3))
	if m.MaxDepth() != 3 {
		t.Fatalf("MaxDepth() = %d, want 3", m.MaxDepth())
	}

	if got, err := m.NextAvailableChild(MustParse("1a")); err != nil || got.String() != "1a1" {
		t.Errorf("NextAvailableChild(1a) = %q, %v; want 1a1", got, err)
	}

	_, err := m.NextAvailableChild(MustParse("1a1"))
	var depthErr *MaxDepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("NextAvailableChild(1a1) error = %v, want *MaxDepthError", err)
	}
	if depthErr.Depth != 4 || depthErr.Max != 3 {
		t.Errorf("MaxDepthError = %+v, want depth 4 max 3", depthErr)
	}

	// Siblings are unaffected by the limit.
	if _, err := m.NextAvailableSibling(MustParse("1a1")); err != nil {
		t.Errorf("NextAvailableSibling(1a1) error: %v", err)
	}

	if unlimited := newTestManager(t, nil, WithMaxDepth(-5)); unlimited.MaxDepth() != 0 {
		t.Errorf("negative depth became %d, want 0", unlimited.MaxDepth())
	}
}

func TestManager_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	probes := 0
	m := newTestManager(t, ExistsFunc(func(string) bool {
		probes++
		if probes == 3 {
			cancel()
		}
		return true
	}))

	_, err := m.NextAvailableSiblingContext(ctx, FromNumber(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if probes != 3 {
		t.Errorf("probes = %d, want 3 (no probe after cancellation)", probes)
	}

	_, err = m.NextAvailableChildContext(ctx, FromNumber(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("child search on cancelled context error = %v, want context.Canceled", err)
	}
}

func TestManager_PassThroughs(t *testing.T) {
	t.Parallel()

	m, err := NewManager(MatchConfig{Rule: MatchSeparator, Separator: " - "}, newSetChecker("1a"))
	if err != nil {
		t.Fatal(err)
	}

	if !m.IDExists(MustParse("1a")) {
		t.Error("IDExists(1a) = false, want true")
	}
	if m.IDExists(MustParse("1b")) {
		t.Error("IDExists(1b) = true, want false")
	}

	if id, err := m.ValidateID("3b4"); err != nil || id.String() != "3b4" {
		t.Errorf("ValidateID(3b4) = %q, %v", id, err)
	}
	if _, err := m.ValidateID("b4"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ValidateID(b4) error = %v, want ErrInvalidFormat", err)
	}

	if id, ok := m.ExtractFromFilename("1a2 - Title.md"); !ok || id.String() != "1a2" {
		t.Errorf("ExtractFromFilename() = %q, %v", id, ok)
	}
	if _, ok := m.ExtractFromFilename("1a2.md"); ok {
		t.Error("ExtractFromFilename(1a2.md) matched under the separator rule")
	}
	if m.Config().Separator != " - " || m.Matcher() == nil {
		t.Errorf("Config() = %+v", m.Config())
	}
}

func TestNewManager_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(MatchConfig{Rule: "nope"}, nil); !errors.Is(err, ErrInvalidMatchRule) {
		t.Errorf("NewManager() error = %v, want ErrInvalidMatchRule", err)
	}

	m := newTestManager(t, nil)
	if _, err := m.NextAvailableChild(ID{}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("NextAvailableChild(zero) error = %v, want ErrEmptyID", err)
	}
	if _, err := m.NextAvailableSibling(ID{}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("NextAvailableSibling(zero) error = %v, want ErrEmptyID", err)
	}
}
