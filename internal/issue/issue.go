// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InvalidIDId Id = iota + 1
	NoIDInFilenameId
	ConfigLoadFailedId
	IDOverflowId
	MaxDepthExceededId
	VaultNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the page with a glamour style name such as "auto", "dark",
// "light" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	invalidIDIssue = &Issue{
		id: InvalidIDId,
		mdMsg: `
# That is not a valid Luhmann ID

A Luhmann ID alternates numbers and lowercase letters, always starting with
a number.

## Valid IDs
- ` + "`1`" + `, ` + "`42`" + ` top-level notes
- ` + "`1a`" + `, ` + "`42c`" + ` first branch
- ` + "`1a2`" + `, ` + "`1a2b`" + ` deeper branches
- ` + "`1z`" + ` is followed by ` + "`1aa`" + `

## Not valid
- ` + "`a1`" + ` starts with a letter
- ` + "`1A`" + ` uppercase letters
- ` + "`1-2`" + ` punctuation inside the ID

## Things you can try
~~~
$ zettel id validate 1a2
$ zettel id parse "1a2 - My note.md"
~~~`,
	}

	noIDInFilenameIssue = &Issue{
		id: NoIDInFilenameId,
		mdMsg: `
# No ID found in that filename

The current match rule decides how an ID is found at the start of a filename.

| Rule | Accepts |
|------|---------|
| strict | ` + "`1a2`" + ` (the whole name) |
| separator | ` + "`1a2 - Title.md`" + ` (ID, then the separator) |
| fuzzy | ` + "`1a2.md`" + `, ` + "`1a2_note.md`" + `, ` + "`1a2-note.md`" + ` |

## Things you can try
- Check the rule in use:
~~~
$ zettel config show
~~~
- Switch rule for one command:
~~~
$ zettel --match-rule fuzzy id parse 1a2.md
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

zettel reads, in order, the global config file, the vault's
` + "`.zettel/config.toml`" + `, and ` + "`ZETTEL_*`" + ` environment variables.

## Things you can try
- See which files are used:
~~~
$ zettel config path
~~~
- Recreate a default global file:
~~~
$ zettel config init --force
~~~
- Example:
~~~toml
[id]
match_rule = "separator"
separator = " - "
~~~`,
	}

	idOverflowIssue = &Issue{
		id: IDOverflowId,
		mdMsg: `
# This level is full

A numeric ID component has reached its largest value (4294967295), so no
further sibling can be generated at this level.

## Things you can try
- Branch instead of adding a sibling:
~~~
$ zettel id next-child <id>
~~~`,
	}

	maxDepthExceededIssue = &Issue{
		id: MaxDepthExceededId,
		mdMsg: `
# Maximum depth reached

A new child would be deeper than ` + "`id.max_depth`" + ` allows.

## Things you can try
- Add a sibling instead with ` + "`zettel id next-sibling`" + `
- Raise or disable the limit (0 = unlimited):
~~~toml
[id]
max_depth = 0
~~~`,
	}

	vaultNotFoundIssue = &Issue{
		id: VaultNotFoundId,
		mdMsg: `
# Vault directory not found

The vault is chosen by ` + "`--vault`" + `, then ` + "`ZETTEL_VAULT`" + `,
then ` + "`vault.default_path`" + `, and finally the current directory.

## Things you can try
- Create it:
~~~
$ zettel init ~/notes
~~~
- Point zettel at an existing one:
~~~
$ export ZETTEL_VAULT=~/notes
~~~`,
	}

	issues = map[Id]*Issue{
		invalidIDIssue.Id():        invalidIDIssue,
		noIDInFilenameIssue.Id():   noIDInFilenameIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		idOverflowIssue.Id():       idOverflowIssue,
		maxDepthExceededIssue.Id(): maxDepthExceededIssue,
		vaultNotFoundIssue.Id():    vaultNotFoundIssue,
	}
)

// Values returns every issue page ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
