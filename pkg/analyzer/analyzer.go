// Package analyzer defines the contract shared by all category
// analyzers in the pipeline.
package analyzer

import (
	"context"

	"assay/pkg/snapshot"
)

// SnapshotAnalyzer is the interface every category analyzer implements.
// Analyze never returns a nil report: when the required artifacts are
// absent or malformed the analyzer returns its documented degraded
// default instead.
type SnapshotAnalyzer[T any] interface {
	// Analyze inspects the snapshot and produces the category
	// sub-report. The context is used for cancellation only; analyzers
	// perform no I/O.
	Analyze(ctx context.Context, snap *snapshot.Snapshot) (T, error)

	// Close releases any resources held by the analyzer.
	Close()
}
