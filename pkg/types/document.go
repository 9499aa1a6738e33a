// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates what happened to one file under the source root.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionCopied  ConversionStatus = "copied"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// FileResult records the outcome for a single source file. Paths are
// relative to the source and destination roots.
type FileResult struct {
	// Source is the path relative to the source root (e.g. "a/b/note.wiki").
	Source string `json:"source" yaml:"source"`

	// Dest is the mirrored path relative to the destination root. Empty when skipped.
	Dest string `json:"dest,omitempty" yaml:"dest,omitempty"`

	// Status is the per-file outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error describes the failure when Status is ConversionFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
