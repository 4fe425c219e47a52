// SPDX-License-Identifier: MPL-2.0

package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rauletaveras/zettel/pkg/luhmann"

	"github.com/charmbracelet/log"
)

const (
	// SettingsDirName is the per-vault settings directory. It is never
	// scanned for notes.
	SettingsDirName = ".zettel"
	// DefaultExtension is used when Options.Extension is empty.
	DefaultExtension = "md"
)

var (
	// ErrVaultNotFound is returned when the vault directory does not exist.
	ErrVaultNotFound = errors.New("vault directory does not exist")
	// ErrNotADirectory is returned when the vault path is a file.
	ErrNotADirectory = errors.New("vault path is not a directory")
)

type (
	// Options configures a Vault.
	Options struct {
		// Extension of note files without the dot; defaults to "md".
		Extension string
		// ExcludeDirs are skipped when scanning, relative to the vault root.
		ExcludeDirs []string
		// Matcher extracts IDs from filenames when listing notes. Without
		// one, List uses the default strict matcher.
		Matcher *luhmann.Matcher
		// Logger receives debug output; nil discards it.
		Logger *log.Logger
	}

	// Vault is a notes directory. It holds no cached state: every query
	// walks the directory again, so files created between two calls are
	// always seen.
	Vault struct {
		root    string
		ext     string
		exclude map[string]bool
		matcher *luhmann.Matcher
		logger  *log.Logger
	}

	// Note is a note file whose name starts with a Luhmann ID.
	Note struct {
		ID luhmann.ID
		// Filename is the base name including the extension.
		Filename string
		// Title is the part of the filename after the ID and its separator,
		// without the extension. It may be empty.
		Title string
		// Path is the absolute file path.
		Path string
		// RelPath is Path relative to the vault root, with forward slashes.
		RelPath string
	}
)

// New returns a Vault rooted at root. It does not touch the filesystem; use
// Check to verify the directory.
func New(root string, opts Options) *Vault {
	ext := strings.TrimPrefix(opts.Extension, ".")
	if ext == "" {
		ext = DefaultExtension
	}

	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		exclude[filepath.ToSlash(filepath.Clean(dir))] = true
	}

	matcher := opts.Matcher
	if matcher == nil {
		matcher, _ = luhmann.NewMatcher(luhmann.DefaultMatchConfig())
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Vault{
		root:    root,
		ext:     ext,
		exclude: exclude,
		matcher: matcher,
		logger:  logger,
	}
}

// Root returns the vault directory.
func (v *Vault) Root() string { return v.root }

// Extension returns the note file extension without the dot.
func (v *Vault) Extension() string { return v.ext }

// Check verifies that the vault directory exists and is a directory.
func (v *Vault) Check() error {
	info, err := os.Stat(v.root)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrVaultNotFound, v.root)
	}
	if err != nil {
		return fmt.Errorf("failed to access vault: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, v.root)
	}
	return nil
}

// Exists reports whether a note file for id is present. A file matches when
// its name without extension equals id, or starts with id followed by a
// character that is neither a letter nor a digit ("1a2 - Title.md",
// "1a2_x.md", but not "1a23.md"). A missing or unreadable vault reports
// false. Exists implements luhmann.ExistenceChecker.
func (v *Vault) Exists(id string) bool {
	found := false
	err := v.walk(context.Background(), func(_, name string) bool {
		if stemMatchesID(strings.TrimSuffix(name, "."+v.ext), id) {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		v.logger.Debug("existence check failed", "id", id, "err", err)
		return false
	}
	v.logger.Debug("existence check", "id", id, "exists", found)
	return found
}

// List returns every note whose filename yields an ID under the configured
// matcher, ordered by ID and then by path. Files without an ID are skipped.
func (v *Vault) List(ctx context.Context) ([]Note, error) {
	if err := v.Check(); err != nil {
		return nil, err
	}

	var notes []Note
	err := v.walk(ctx, func(path, name string) bool {
		// Match against the stem so the strict rule can see "1a2" in "1a2.md".
		stem := strings.TrimSuffix(name, "."+v.ext)
		id, ok := v.matcher.Extract(stem)
		if !ok {
			v.logger.Debug("skipping file without ID", "file", name)
			return true
		}

		rel, relErr := filepath.Rel(v.root, path)
		if relErr != nil {
			rel = name
		}
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}

		notes = append(notes, Note{
			ID:       id,
			Title:    titleFromStem(stem, id.String()),
			Filename: name,
			Path:     abs,
			RelPath:  filepath.ToSlash(rel),
		})
		return true
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(notes, func(a, b Note) int {
		if c := a.ID.Compare(b.ID); c != 0 {
			return c
		}
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return notes, nil
}

// Find returns the notes whose ID equals id.
func (v *Vault) Find(ctx context.Context, id luhmann.ID) ([]Note, error) {
	notes, err := v.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Note
	for _, n := range notes {
		if n.ID.Equal(id) {
			out = append(out, n)
		}
	}
	return out, nil
}

// walk calls visit for every note file under the root, skipping hidden and
// excluded directories. visit returns false to stop early. A missing root
// yields no files and no error.
func (v *Vault) walk(ctx context.Context, visit func(path, name string) bool) error {
	stop := errors.New("stop")

	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == v.root {
				return err
			}
			v.logger.Debug("skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path == v.root {
				return nil
			}
			if v.skipDir(path, d.Name()) {
				v.logger.Debug("skipping directory", "dir", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), "."+v.ext) {
			return nil
		}
		if !visit(path, d.Name()) {
			return stop
		}
		return nil
	})

	switch {
	case err == nil, errors.Is(err, stop):
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (v *Vault) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	rel, err := filepath.Rel(v.root, path)
	if err != nil {
		return false
	}
	return v.exclude[filepath.ToSlash(rel)]
}

// Init creates the vault directory and its settings directory. It is not an
// error for either to exist already. It returns the settings directory path.
func Init(root string) (string, error) {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}
	settings := filepath.Join(root, SettingsDirName)
	if err := os.MkdirAll(settings, 0o755); err != nil {
		return "", fmt.Errorf("failed to create vault: %w", err)
	}
	return settings, nil
}

func stemMatchesID(stem, id string) bool {
	if !strings.HasPrefix(stem, id) {
		return false
	}
	if len(stem) == len(id) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(stem[len(id):])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// titleFromStem drops the ID and any separator characters that follow it.
func titleFromStem(stem, id string) string {
	rest := strings.TrimPrefix(stem, id)
	return strings.TrimSpace(strings.TrimLeftFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}
