// Package snapshot models the immutable repository snapshot the
// analysis pipeline consumes: a set of fetched artifacts plus the file
// tree they came from.
package snapshot

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind classifies an artifact.
type Kind string

// String implements fmt.Stringer for toon serialization.
func (k Kind) String() string {
	return string(k)
}

const (
	KindManifest  Kind = "manifest"
	KindReadme    Kind = "readme"
	KindConfig    Kind = "config"
	KindSource    Kind = "source"
	KindTreeEntry Kind = "tree-entry"
)

// Artifact is one named raw input. Content is nil when the artifact is
// absent; absence is a valid, expected state, not an error.
type Artifact struct {
	Path    string
	Content []byte
	Kind    Kind
}

// EntryType distinguishes files from directories in the tree.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// TreeEntry is one entry of the repository file tree.
type TreeEntry struct {
	Path string    `json:"path" toon:"path"`
	Type EntryType `json:"type" toon:"type"`
	Size int64     `json:"size" toon:"size"`
}

// Snapshot is the read-only artifact set and tree shared by all
// analyzers. It is never mutated after construction, so concurrent
// readers need no locking.
type Snapshot struct {
	artifacts map[string]*Artifact
	tree      []TreeEntry
	digest    uint64
}

// New builds a snapshot from fetched artifacts and the file tree. The
// tree is sorted by path and the content digest computed once here.
func New(artifacts []Artifact, tree []TreeEntry) *Snapshot {
	s := &Snapshot{
		artifacts: make(map[string]*Artifact, len(artifacts)),
		tree:      make([]TreeEntry, len(tree)),
	}
	copy(s.tree, tree)
	sort.Slice(s.tree, func(i, j int) bool { return s.tree[i].Path < s.tree[j].Path })

	for i := range artifacts {
		a := artifacts[i]
		s.artifacts[a.Path] = &a
	}
	s.digest = s.computeDigest()
	return s
}

// computeDigest hashes sorted artifact paths and contents plus the
// tree shape. Equal snapshots always hash equal, which anchors the
// determinism guarantee on results.
func (s *Snapshot) computeDigest() uint64 {
	h := xxhash.New()
	for _, path := range s.sortedArtifactPaths() {
		a := s.artifacts[path]
		_, _ = h.WriteString(a.Path)
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(a.Content)
		_, _ = h.Write([]byte{0})
	}
	for _, e := range s.tree {
		_, _ = h.WriteString(e.Path)
		_, _ = h.WriteString(string(e.Type))
	}
	return h.Sum64()
}

func (s *Snapshot) sortedArtifactPaths() []string {
	paths := make([]string, 0, len(s.artifacts))
	for p := range s.artifacts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Artifact returns the content at path, or nil when absent.
func (s *Snapshot) Artifact(path string) []byte {
	if a, ok := s.artifacts[path]; ok {
		return a.Content
	}
	return nil
}

// Has reports whether an artifact with content exists at path.
func (s *Snapshot) Has(path string) bool {
	a, ok := s.artifacts[path]
	return ok && a.Content != nil
}

// Artifacts returns all artifacts sorted by path. Callers must not
// modify the returned values.
func (s *Snapshot) Artifacts() []*Artifact {
	out := make([]*Artifact, 0, len(s.artifacts))
	for _, path := range s.sortedArtifactPaths() {
		out = append(out, s.artifacts[path])
	}
	return out
}

// ArtifactsOfKind returns all artifacts of one kind sorted by path.
func (s *Snapshot) ArtifactsOfKind(kind Kind) []*Artifact {
	var out []*Artifact
	for _, a := range s.Artifacts() {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Tree returns the full tree sorted by path. Callers must not modify
// the returned slice.
func (s *Snapshot) Tree() []TreeEntry {
	return s.tree
}

// Files returns the file entries of the tree.
func (s *Snapshot) Files() []TreeEntry {
	var files []TreeEntry
	for _, e := range s.tree {
		if e.Type == EntryFile {
			files = append(files, e)
		}
	}
	return files
}

// TopLevel returns entries directly under the repository root.
func (s *Snapshot) TopLevel() []TreeEntry {
	var top []TreeEntry
	for _, e := range s.tree {
		if !strings.Contains(e.Path, "/") {
			top = append(top, e)
		}
	}
	return top
}

// HasDir reports whether a directory named name exists anywhere in the
// tree, either as an explicit dir entry or implied by a file path.
func (s *Snapshot) HasDir(name string) bool {
	for _, e := range s.tree {
		segs := strings.Split(e.Path, "/")
		if e.Type == EntryFile {
			// The final segment of a file path is the filename.
			segs = segs[:len(segs)-1]
		}
		for _, seg := range segs {
			if seg == name {
				return true
			}
		}
	}
	return false
}

// Digest returns the content digest computed at construction.
func (s *Snapshot) Digest() uint64 {
	return s.digest
}

// Empty reports whether the snapshot carries neither artifacts nor
// tree entries.
func (s *Snapshot) Empty() bool {
	return len(s.artifacts) == 0 && len(s.tree) == 0
}
