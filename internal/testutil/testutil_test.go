// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUnsetEnv(t *testing.T) {
	t.Setenv("ZETTEL_TESTUTIL_A", "a")

	UnsetEnv(t, "ZETTEL_TESTUTIL_A", "ZETTEL_TESTUTIL_NEVER_SET")

	if _, ok := os.LookupEnv("ZETTEL_TESTUTIL_A"); ok {
		t.Error("ZETTEL_TESTUTIL_A is still set")
	}
}

func TestSetHomeDir(t *testing.T) {
	dir := t.TempDir()
	SetHomeDir(t, dir)

	got, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("UserHomeDir() = %q, want %q", got, dir)
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	MustWriteFile(t, path, "hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}

func TestNewVaultDir(t *testing.T) {
	t.Parallel()

	root := NewVaultDir(t, "1.md", "sub/1a - Title.md")

	for _, name := range []string{"1.md", filepath.Join("sub", "1a - Title.md")} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}
