// SPDX-License-Identifier: MPL-2.0

package luhmann

import "context"

type (
	// ExistenceChecker reports whether an ID, in canonical string form, is
	// already assigned. Implementations must answer synchronously from their
	// current view; the Manager calls Exists once per candidate and never
	// caches the answer.
	ExistenceChecker interface {
		Exists(id string) bool
	}

	// ExistsFunc adapts a plain function to ExistenceChecker.
	ExistsFunc func(id string) bool

	// ManagerOption configures a Manager at construction time.
	ManagerOption func(*Manager)

	// Manager combines the matching policy with an injected ExistenceChecker
	// to extract IDs from filenames and to find the first unused sibling or
	// child. A Manager is immutable after NewManager returns.
	Manager struct {
		matcher  *Matcher
		exists   ExistenceChecker
		maxDepth int
	}
)

// Exists calls f(id).
func (f ExistsFunc) Exists(id string) bool { return f(id) }

// WithMaxDepth limits the depth of IDs produced by NextAvailableChild.
// Zero or a negative value means unlimited.
func WithMaxDepth(depth int) ManagerOption {
	return func(m *Manager) {
		if depth < 0 {
			depth = 0
		}
		m.maxDepth = depth
	}
}

// NewManager creates a Manager for cfg. A nil exists treats every ID as
// unused.
func NewManager(cfg MatchConfig, exists ExistenceChecker, opts ...ManagerOption) (*Manager, error) {
	matcher, err := NewMatcher(cfg)
	if err != nil {
		return nil, err
	}
	if exists == nil {
		exists = ExistsFunc(func(string) bool { return false })
	}

	m := &Manager{matcher: matcher, exists: exists}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the matching configuration.
func (m *Manager) Config() MatchConfig { return m.matcher.Config() }

// Matcher returns the compiled filename matcher.
func (m *Manager) Matcher() *Matcher { return m.matcher }

// MaxDepth returns the configured child depth limit (0 = unlimited).
func (m *Manager) MaxDepth() int { return m.maxDepth }

// ExtractFromFilename returns the ID encoded in filename under the configured
// rule. See Matcher.Extract.
func (m *Manager) ExtractFromFilename(filename string) (ID, bool) {
	return m.matcher.Extract(filename)
}

// IDExists asks the ExistenceChecker about id.
func (m *Manager) IDExists(id ID) bool { return m.exists.Exists(id.String()) }

// ValidateID parses s without generating anything.
func (m *Manager) ValidateID(s string) (ID, error) { return Parse(s) }

// NextAvailableSibling returns the first sibling after current that the
// ExistenceChecker does not report as taken. It propagates an OverflowError
// if the sibling sequence runs out before a free ID is found.
func (m *Manager) NextAvailableSibling(current ID) (ID, error) {
	return m.NextAvailableSiblingContext(context.Background(), current)
}

// NextAvailableSiblingContext is NextAvailableSibling with a cancellation
// check before every existence probe.
func (m *Manager) NextAvailableSiblingContext(ctx context.Context, current ID) (ID, error) {
	candidate, err := current.NextSibling()
	if err != nil {
		return ID{}, err
	}
	return m.firstFree(ctx, candidate)
}

// NextAvailableChild returns the first child of parent that the
// ExistenceChecker does not report as taken, walking the sibling sequence at
// the child's level (1a, 1b, 1c, ...). It fails with a MaxDepthError when a
// depth limit is configured and the child would exceed it, and propagates an
// OverflowError rather than returning a colliding ID.
func (m *Manager) NextAvailableChild(parent ID) (ID, error) {
	return m.NextAvailableChildContext(context.Background(), parent)
}

// NextAvailableChildContext is NextAvailableChild with a cancellation check
// before every existence probe.
func (m *Manager) NextAvailableChildContext(ctx context.Context, parent ID) (ID, error) {
	if parent.IsZero() {
		return ID{}, ErrEmptyID
	}
	if m.maxDepth > 0 && parent.Depth()+1 > m.maxDepth {
		return ID{}, &MaxDepthError{Depth: parent.Depth() + 1, Max: m.maxDepth}
	}
	return m.firstFree(ctx, parent.FirstChild())
}

// firstFree probes candidate and its successors strictly in order and stops at
// the first gap, so the result is the smallest free ID at that level.
func (m *Manager) firstFree(ctx context.Context, candidate ID) (ID, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ID{}, err
		}
		if !m.exists.Exists(candidate.String()) {
			return candidate, nil
		}

		next, err := candidate.NextSibling()
		if err != nil {
			return ID{}, err
		}
		candidate = next
	}
}
