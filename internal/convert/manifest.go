// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wiki2norg/pkg/types"
)

// Manifest is the on-disk report of a conversion run: which source file
// produced which destination file and with what outcome.
type Manifest struct {
	RunID     string             `yaml:"run_id"`
	SourceDir string             `yaml:"source_dir"`
	DestDir   string             `yaml:"dest_dir"`
	SourceExt string             `yaml:"source_ext"`
	DestExt   string             `yaml:"dest_ext"`
	Summary   ManifestSummary    `yaml:"summary"`
	Files     []types.FileResult `yaml:"files"`
}

// ManifestSummary stores the per-status counts.
type ManifestSummary struct {
	Converted int `yaml:"converted"`
	Copied    int `yaml:"copied"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
	Total     int `yaml:"total"`
}

// NewManifest builds a Manifest for a finished run.
func NewManifest(cfg types.ConversionConfig, result BatchResult) Manifest {
	return Manifest{
		RunID:     uuid.NewString(),
		SourceDir: cfg.SourceDir,
		DestDir:   cfg.DestDir,
		SourceExt: cfg.SourceExt,
		DestExt:   cfg.DestExt,
		Summary: ManifestSummary{
			Converted: result.Converted,
			Copied:    result.Copied,
			Skipped:   result.Skipped,
			Failed:    result.Failed,
			Total:     result.Total(),
		},
		Files: result.Files,
	}
}

// WriteManifest saves m as YAML at path, creating its directory.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest previously written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
