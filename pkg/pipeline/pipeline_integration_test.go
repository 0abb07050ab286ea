//go:build integration

package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assay/pkg/pipeline"
	"assay/pkg/snapshot"
)

func TestAnalyzeProject_Integration(t *testing.T) {
	src := snapshot.NewFilesystem("testdata/project")
	snap, err := snapshot.Load(context.Background(), src)
	require.NoError(t, err)
	require.False(t, snap.Empty())

	o := pipeline.New()
	defer o.Close()

	result, err := o.Run(context.Background(), snap)
	require.NoError(t, err)
	require.NotNil(t, result)

	names := make(map[string]bool)
	for _, item := range result.TechStack.Items {
		names[item.Name] = true
	}
	assert.True(t, names["React"], "expected React in the detected stack")
	assert.True(t, names["Next.js"], "expected Next.js in the detected stack")
	assert.True(t, names["Jest"], "expected Jest in the detected stack")

	assert.Equal(t, result.Dependencies.Total,
		result.Dependencies.Production+result.Dependencies.Development+result.Dependencies.Optional)
	assert.Empty(t, result.Dependencies.MissingScripts)

	assert.True(t, result.Readme.Present)
	assert.True(t, result.Readme.Sections["installation"], "installation section should be detected")

	assert.True(t, result.Structure.HasSourceDir)
	assert.True(t, result.Structure.HasTestDir)

	// orders.js assigns innerHTML, so the security scan must not be clean.
	assert.NotEmpty(t, result.Security.Findings)

	assert.GreaterOrEqual(t, result.Score.Overall.Value, 0)
	assert.LessOrEqual(t, result.Score.Overall.Value, 100)
	assert.NotEmpty(t, result.Score.Grade)

	assert.Equal(t, 1.0, result.Metadata.SignalCoverage)
}
