// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// WriteNotes creates a small note file under root for each slash-separated
// name, e.g. "1a - Title.md" or "sub/2.md".
func WriteNotes(t testing.TB, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		MustWriteFile(t, filepath.Join(root, filepath.FromSlash(name)), "# note\n")
	}
}

// NewVaultDir returns a fresh temporary vault holding the given notes.
func NewVaultDir(t testing.TB, names ...string) string {
	t.Helper()
	root := t.TempDir()
	WriteNotes(t, root, names...)
	return root
}
