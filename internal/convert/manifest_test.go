// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wiki2norg/pkg/types"
)

func TestRunWritesManifest(t *testing.T) {
	src, dst := setupWiki(t)
	manifestPath := filepath.Join(t.TempDir(), "reports", "manifest.yaml")

	c, err := New(types.ConversionConfig{SourceDir: src, DestDir: dst, ManifestPath: manifestPath}, nil)
	require.NoError(t, err)
	result, err := c.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	m, err := ReadManifest(manifestPath)
	require.NoError(t, err)

	_, err = uuid.Parse(m.RunID)
	assert.NoError(t, err, "run id should be a UUID")
	assert.Equal(t, c.Config().SourceDir, m.SourceDir)
	assert.Equal(t, c.Config().DestDir, m.DestDir)
	assert.Equal(t, ".wiki", m.SourceExt)
	assert.Equal(t, ".norg", m.DestExt)
	assert.Equal(t, ManifestSummary{Converted: 3, Skipped: 1, Total: 4}, m.Summary)
	assert.Equal(t, result.Files, m.Files)
}

func TestManifestRecordsFailures(t *testing.T) {
	m := NewManifest(types.ConversionConfig{SourceExt: ".wiki", DestExt: ".norg"}, BatchResult{
		Failed: 1,
		Files: []types.FileResult{
			{Source: "bad.wiki", Status: types.ConversionFailed, Error: "decode bad.wiki: encoding: not valid UTF-8"},
		},
	})
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, WriteManifest(path, m))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Summary.Failed)
	require.Len(t, got.Files, 1)
	assert.Equal(t, types.ConversionFailed, got.Files[0].Status)
	assert.Empty(t, got.Files[0].Dest)
}

func TestReadManifestMissing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}
