package snapshot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"assay/internal/vcs"
)

// ContentSource provides artifact content and the file tree for one
// repository snapshot. Read reports a missing artifact as (nil, nil):
// absence is a first-class signal, never an error requiring abort.
type ContentSource interface {
	// Read returns the content of the file at path, or (nil, nil)
	// when the path does not exist.
	Read(path string) ([]byte, error)
	// List returns every entry of the snapshot tree.
	List() ([]TreeEntry, error)
}

// FilesystemSource serves a snapshot from a directory root.
type FilesystemSource struct {
	root    string
	exclude func(string) bool
}

// FSOption configures a FilesystemSource.
type FSOption func(*FilesystemSource)

// WithExclude skips paths for which fn returns true during listing.
func WithExclude(fn func(string) bool) FSOption {
	return func(s *FilesystemSource) {
		s.exclude = fn
	}
}

// NewFilesystem creates a source rooted at dir.
func NewFilesystem(dir string, opts ...FSOption) *FilesystemSource {
	s := &FilesystemSource{root: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read implements ContentSource.
func (s *FilesystemSource) Read(path string) ([]byte, error) {
	if strings.Contains(path, "..") {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List implements ContentSource. The .git directory is always
// skipped; additional exclusions come from WithExclude.
func (s *FilesystemSource) List() ([]TreeEntry, error) {
	var entries []TreeEntry
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(s.root, path)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || (s.exclude != nil && s.exclude(rel)) {
				return filepath.SkipDir
			}
			entries = append(entries, TreeEntry{Path: rel, Type: EntryDir})
			return nil
		}
		if s.exclude != nil && s.exclude(rel) {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		entries = append(entries, TreeEntry{Path: rel, Type: EntryFile, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TreeSource serves a snapshot from a git tree.
// It is safe for concurrent use by multiple goroutines.
type TreeSource struct {
	tree vcs.Tree
	mu   sync.Mutex
}

// NewTree creates a source that reads from a git tree.
func NewTree(tree vcs.Tree) *TreeSource {
	return &TreeSource{tree: tree}
}

// Read implements ContentSource.
func (t *TreeSource) Read(path string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := t.tree.File(path)
	if errors.Is(err, vcs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List implements ContentSource.
func (t *TreeSource) List() ([]TreeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	vcsEntries, err := t.tree.Entries()
	if err != nil {
		return nil, err
	}
	entries := make([]TreeEntry, 0, len(vcsEntries))
	for _, e := range vcsEntries {
		typ := EntryFile
		if e.IsDir {
			typ = EntryDir
		}
		entries = append(entries, TreeEntry{Path: e.Path, Type: typ, Size: e.Size})
	}
	return entries, nil
}
