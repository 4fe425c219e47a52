// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		InvalidIDId,
		NoIDInFilenameId,
		ConfigLoadFailedId,
		IDOverflowId,
		MaxDepthExceededId,
		VaultNotFoundId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if InvalidIDId != 1 {
		t.Errorf("InvalidIDId = %d, want 1", InvalidIDId)
	}
}

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   Id
		want string
	}{
		{InvalidIDId, "valid Luhmann ID"},
		{NoIDInFilenameId, "match rule"},
		{ConfigLoadFailedId, "zettel config path"},
		{IDOverflowId, "4294967295"},
		{MaxDepthExceededId, "max_depth"},
		{VaultNotFoundId, "ZETTEL_VAULT"},
	}

	for _, tt := range tests {
		msg := Get(tt.id).MarkdownMsg()
		if !strings.Contains(string(msg), tt.want) {
			t.Errorf("issue %d markdown should mention %q", tt.id, tt.want)
		}
	}
}

func TestIssue_DocLinksAreCloned(t *testing.T) {
	t.Parallel()

	i := &Issue{id: InvalidIDId, docLinks: []HttpLink{"https://example.com/a"}}
	links := i.DocLinks()
	links[0] = "changed"
	if i.DocLinks()[0] != "https://example.com/a" {
		t.Error("DocLinks() exposed the internal slice")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(InvalidIDId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "Luhmann ID") {
		t.Errorf("rendered page lost its heading:\n%s", out)
	}
	if !strings.Contains(out, "zettel id validate 1a2") {
		t.Errorf("rendered page lost its code block:\n%s", out)
	}
}

func TestIssue_RenderWithLinks(t *testing.T) {
	t.Parallel()

	i := &Issue{id: InvalidIDId, mdMsg: "# Title", docLinks: []HttpLink{"https://example.com/ids"}}
	out, err := i.Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "See also") || !strings.Contains(out, "https://example.com/ids") {
		t.Errorf("rendered page is missing its links:\n%s", out)
	}
}
