package snapshot

import (
	"context"
	"fmt"
	"path"
	"strings"

	"assay/pkg/manifest"
)

const (
	defaultMaxFileSize = 512 * 1024
	defaultSourceLimit = 200
)

// readmeNames are the root-level README filenames, in priority order.
var readmeNames = []string{"README.md", "README.rst", "README.txt", "README", "readme.md"}

// IsReadmeName reports whether base is a recognized README filename.
func IsReadmeName(base string) bool {
	for _, n := range readmeNames {
		if base == n {
			return true
		}
	}
	return false
}

// ReadmeNames returns the recognized README filenames in priority order.
func ReadmeNames() []string {
	return readmeNames
}

var sourceExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".mjs": true, ".cjs": true,
	".py": true, ".rb": true, ".php": true, ".go": true, ".rs": true,
	".java": true, ".kt": true, ".cs": true, ".swift": true,
	".c": true, ".h": true, ".cpp": true, ".cc": true,
	".vue": true, ".svelte": true, ".html": true, ".css": true, ".scss": true,
	".sql": true, ".sh": true,
}

type loadOptions struct {
	ignore      func(string) bool
	maxFileSize int64
	sourceLimit int
	progress    func(current, total int, path string)
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithIgnore drops tree entries for which fn returns true before any
// content is fetched.
func WithIgnore(fn func(string) bool) LoadOption {
	return func(o *loadOptions) {
		o.ignore = fn
	}
}

// WithMaxFileSize caps the size of source files fetched for scanning.
func WithMaxFileSize(n int64) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.maxFileSize = n
		}
	}
}

// WithSourceLimit caps how many source files are fetched for scanning.
func WithSourceLimit(n int) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.sourceLimit = n
		}
	}
}

// WithProgress reports each fetched artifact.
func WithProgress(fn func(current, total int, path string)) LoadOption {
	return func(o *loadOptions) {
		o.progress = fn
	}
}

// Load walks the source tree, fetches the recognized artifacts and
// classifies them. A missing artifact stays absent; a fetch error
// aborts the load so the caller can surface it as a fetch-phase
// failure.
func Load(ctx context.Context, src ContentSource, opts ...LoadOption) (*Snapshot, error) {
	o := loadOptions{maxFileSize: defaultMaxFileSize, sourceLimit: defaultSourceLimit}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := src.List()
	if err != nil {
		return nil, fmt.Errorf("list tree: %w", err)
	}

	tree := make([]TreeEntry, 0, len(entries))
	for _, e := range entries {
		if o.ignore != nil && o.ignore(e.Path) {
			continue
		}
		tree = append(tree, e)
	}

	plan := planFetches(tree, o)
	artifacts := make([]Artifact, 0, len(plan))
	for i, p := range plan {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		content, rerr := src.Read(p.Path)
		if rerr != nil {
			return nil, fmt.Errorf("fetch %s: %w", p.Path, rerr)
		}
		artifacts = append(artifacts, Artifact{Path: p.Path, Content: content, Kind: p.Kind})
		if o.progress != nil {
			o.progress(i+1, len(plan), p.Path)
		}
	}
	return New(artifacts, tree), nil
}

type fetchPlan struct {
	Path string
	Kind Kind
}

func planFetches(tree []TreeEntry, o loadOptions) []fetchPlan {
	var plan []fetchPlan
	sourceCount := 0
	for _, e := range tree {
		if e.Type != EntryFile {
			continue
		}
		base := path.Base(e.Path)
		depth := strings.Count(e.Path, "/")
		switch {
		case depth == 0 && IsReadmeName(base):
			plan = append(plan, fetchPlan{e.Path, KindReadme})
		case depth == 0 && manifest.IsRootManifest(base):
			plan = append(plan, fetchPlan{e.Path, KindManifest})
		case manifest.IsWorkflowPath(e.Path):
			plan = append(plan, fetchPlan{e.Path, KindConfig})
		case sourceExts[path.Ext(e.Path)] && e.Size <= o.maxFileSize && sourceCount < o.sourceLimit:
			plan = append(plan, fetchPlan{e.Path, KindSource})
			sourceCount++
		}
	}
	return plan
}
