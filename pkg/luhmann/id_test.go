// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		components []Component
		want       string
		wantErr    error
	}{
		{name: "root", components: []Component{Numeric(1)}, want: "1"},
		{name: "alternating", components: []Component{Numeric(1), AlphaComponent("a"), Numeric(2)}, want: "1a2"},
		{name: "no components", wantErr: ErrEmptyID},
		{name: "starts alpha", components: []Component{AlphaComponent("a")}, wantErr: ErrInvalidFormat},
		{name: "two numerics", components: []Component{Numeric(1), Numeric(2)}, wantErr: ErrInvalidFormat},
		{name: "two alphas", components: []Component{Numeric(1), AlphaComponent("a"), AlphaComponent("b")}, wantErr: ErrInvalidFormat},
		{name: "empty alpha", components: []Component{Numeric(1), AlphaComponent("")}, wantErr: ErrInvalidComponent},
		{name: "uppercase alpha", components: []Component{Numeric(1), AlphaComponent("A")}, wantErr: ErrInvalidComponent},
		{name: "nil component", components: []Component{Numeric(1), nil}, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := New(tt.components...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if id.String() != tt.want {
				t.Errorf("New().String() = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	comps := []Component{Numeric(1), AlphaComponent("a")}
	id, err := New(comps...)
	if err != nil {
		t.Fatal(err)
	}
	comps[1] = AlphaComponent("z")
	if id.String() != "1a" {
		t.Errorf("ID changed after caller mutated its slice: %q", id)
	}

	out := id.Components()
	out[0] = Numeric(9)
	if id.String() != "1a" {
		t.Errorf("ID changed after Components() result was mutated: %q", id)
	}
}

func TestID_RootAndDepth(t *testing.T) {
	t.Parallel()

	if id := MustParse("1"); !id.IsRoot() || id.Depth() != 1 {
		t.Errorf("1: IsRoot=%v Depth=%d", id.IsRoot(), id.Depth())
	}
	if id := MustParse("1a"); id.IsRoot() || id.Depth() != 2 {
		t.Errorf("1a: IsRoot=%v Depth=%d", id.IsRoot(), id.Depth())
	}
	if !(ID{}).IsZero() {
		t.Error("zero ID should report IsZero")
	}
	if (ID{}).Last() != nil {
		t.Error("zero ID Last() should be nil")
	}
	if got := MustParse("1a2b").Last(); got != AlphaComponent("b") {
		t.Errorf("Last() = %v, want b", got)
	}
}

func TestID_Parent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "1", wantOK: false},
		{in: "1a", want: "1", wantOK: true},
		{in: "1a2", want: "1a", wantOK: true},
		{in: "42c17z", want: "42c17", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			parent, ok := MustParse(tt.in).Parent()
			if ok != tt.wantOK {
				t.Fatalf("Parent() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && parent.String() != tt.want {
				t.Errorf("Parent() = %q, want %q", parent, tt.want)
			}
		})
	}
}

func TestID_Ancestors(t *testing.T) {
	t.Parallel()

	got := MustParse("1a2b").Ancestors()
	var strs []string
	for _, a := range got {
		strs = append(strs, a.String())
	}
	if want := []string{"1", "1a", "1a2"}; !slices.Equal(strs, want) {
		t.Errorf("Ancestors() = %v, want %v", strs, want)
	}

	if anc := MustParse("7").Ancestors(); len(anc) != 0 {
		t.Errorf("root Ancestors() = %v, want none", anc)
	}
}

func TestID_NextSibling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1", "2"},
		{"1a2", "1a3"},
		{"1z", "1aa"},
		{"1a", "1b"},
		{"3az", "3ba"},
		{"1a9", "1a10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			id := MustParse(tt.in)
			got, err := id.NextSibling()
			if err != nil {
				t.Fatalf("NextSibling() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("NextSibling() = %q, want %q", got, tt.want)
			}
			if got.Depth() != id.Depth() {
				t.Errorf("NextSibling() changed depth %d -> %d", id.Depth(), got.Depth())
			}
			if !got.IsSiblingOf(id) {
				t.Errorf("%q is not a sibling of %q", got, id)
			}
		})
	}
}

func TestID_NextSibling_Overflow(t *testing.T) {
	t.Parallel()

	_, err := FromNumber(math.MaxUint32).NextSibling()
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("NextSibling() at max error = %v, want ErrOverflow", err)
	}

	_, err = MustParse("1a4294967295").NextSibling()
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("nested NextSibling() at max error = %v, want ErrOverflow", err)
	}

	if _, err := (ID{}).NextSibling(); !errors.Is(err, ErrEmptyID) {
		t.Errorf("zero ID NextSibling() error = %v, want ErrEmptyID", err)
	}
}

func TestID_FirstChild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1", "1a"},
		{"1a", "1a1"},
		{"1a2", "1a2a"},
		{"1a2a", "1a2a1"},
		{"1a2b", "1a2b1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			parent := MustParse(tt.in)
			child := parent.FirstChild()
			if child.String() != tt.want {
				t.Errorf("FirstChild() = %q, want %q", child, tt.want)
			}
			if !parent.IsAncestorOf(child) {
				t.Errorf("%q should be an ancestor of %q", parent, child)
			}
			if p, ok := child.Parent(); !ok || !p.Equal(parent) {
				t.Errorf("FirstChild().Parent() = %q, want %q", p, parent)
			}
			if _, err := Parse(child.String()); err != nil {
				t.Errorf("FirstChild() produced unparsable %q: %v", child, err)
			}
		})
	}
}

func TestID_Relationships(t *testing.T) {
	t.Parallel()

	root := MustParse("1")
	child := MustParse("1a")
	grandchild := MustParse("1a2")
	sibling := MustParse("2")
	cousin := MustParse("2a")

	checks := []struct {
		name string
		got  bool
		want bool
	}{
		{"root ancestor of child", root.IsAncestorOf(child), true},
		{"root ancestor of grandchild", root.IsAncestorOf(grandchild), true},
		{"child ancestor of grandchild", child.IsAncestorOf(grandchild), true},
		{"child not ancestor of root", child.IsAncestorOf(root), false},
		{"self not ancestor", root.IsAncestorOf(root), false},
		{"root not ancestor of cousin", root.IsAncestorOf(cousin), false},
		{"grandchild descendant of root", grandchild.IsDescendantOf(root), true},
		{"child descendant of root", child.IsDescendantOf(root), true},
		{"root not descendant of child", root.IsDescendantOf(child), false},
		{"roots are siblings", root.IsSiblingOf(sibling), true},
		{"roots siblings reversed", sibling.IsSiblingOf(root), true},
		{"root not sibling of child", root.IsSiblingOf(child), false},
		{"1a sibling of 1b", child.IsSiblingOf(MustParse("1b")), true},
		{"1a not sibling of 2a", child.IsSiblingOf(cousin), false},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestID_AncestorAntisymmetry(t *testing.T) {
	t.Parallel()

	ids := []string{"1", "1a", "1a2", "1a2b", "1a3", "2", "2a", "999z999z999"}
	for _, as := range ids {
		for _, bs := range ids {
			a, b := MustParse(as), MustParse(bs)
			if a.IsAncestorOf(b) && b.IsAncestorOf(a) {
				t.Errorf("%q and %q are ancestors of each other", a, b)
			}
			if a.IsAncestorOf(b) != b.IsDescendantOf(a) {
				t.Errorf("IsAncestorOf/IsDescendantOf disagree for %q, %q", a, b)
			}
		}
	}

	deep := MustParse("999z999z999")
	for _, anc := range deep.Ancestors() {
		if !deep.IsDescendantOf(anc) {
			t.Errorf("%q should descend from %q", deep, anc)
		}
	}
}

func TestID_Compare(t *testing.T) {
	t.Parallel()

	ordered := []string{"1", "1a", "1a1", "1a2", "1a10", "1b", "2", "10"}
	ids := make([]ID, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i-- {
		ids = append(ids, MustParse(ordered[i]))
	}

	slices.SortFunc(ids, ID.Compare)

	for i, id := range ids {
		if id.String() != ordered[i] {
			t.Fatalf("sorted[%d] = %q, want %q (all: %v)", i, id, ordered[i], ids)
		}
	}

	if MustParse("1a").Compare(MustParse("1a")) != 0 {
		t.Error("Compare of equal IDs should be 0")
	}
}

func TestID_TextMarshaling(t *testing.T) {
	t.Parallel()

	type note struct {
		ID ID `json:"id"`
	}

	data, err := json.Marshal(note{ID: MustParse("1a2")})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"1a2"}` {
		t.Errorf("json.Marshal = %s", data)
	}

	var n note
	if err := json.Unmarshal([]byte(`{"id":"3b4"}`), &n); err != nil {
		t.Fatal(err)
	}
	if n.ID.String() != "3b4" {
		t.Errorf("unmarshaled ID = %q", n.ID)
	}

	if err := json.Unmarshal([]byte(`{"id":"b4"}`), &n); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("unmarshal of invalid ID error = %v, want ErrInvalidFormat", err)
	}
}
