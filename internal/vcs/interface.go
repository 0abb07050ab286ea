// Package vcs provides version control system abstractions.
package vcs

import "github.com/go-git/go-git/v5/plumbing"

// Repository provides access to git repository operations.
type Repository interface {
	// Head returns a reference to the HEAD commit.
	Head() (Reference, error)
	// ResolveRevision resolves a revision expression (branch, tag,
	// abbreviated hash) to a commit hash.
	ResolveRevision(rev string) (plumbing.Hash, error)
	// CommitObject returns the commit with the given hash.
	CommitObject(hash plumbing.Hash) (Commit, error)
}

// Reference represents a git reference (branch, tag, HEAD).
type Reference interface {
	Hash() plumbing.Hash
}

// Commit represents a git commit.
type Commit interface {
	// Hash returns the commit hash.
	Hash() plumbing.Hash
	// Tree returns the tree object for this commit.
	Tree() (Tree, error)
}

// TreeEntry represents a file or directory in a git tree.
type TreeEntry struct {
	Path  string
	Size  int64
	IsDir bool
}

// Tree represents a git tree object.
type Tree interface {
	// Entries returns all entries in the tree, recursively.
	Entries() ([]TreeEntry, error)
	// File returns the content of the file at path. A missing path
	// yields ErrNotExist.
	File(path string) ([]byte, error)
}

// Opener opens git repositories.
type Opener interface {
	// PlainOpen opens an existing git repository.
	PlainOpen(path string) (Repository, error)
	// PlainOpenWithDetect opens a git repository, detecting .git in
	// parent directories.
	PlainOpenWithDetect(path string) (Repository, error)
}
