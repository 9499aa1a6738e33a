// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OtherFilesPolicy decides what happens to files under the source root that
// do not carry the source extension.
type OtherFilesPolicy string

const (
	// OtherFilesSkip leaves non-wiki files out of the destination tree.
	OtherFilesSkip OtherFilesPolicy = "skip"
	// OtherFilesCopy copies non-wiki files verbatim to the mirrored path.
	OtherFilesCopy OtherFilesPolicy = "copy"
)

// Defaults applied by ConversionConfig.WithDefaults.
const (
	DefaultSourceExt   = ".wiki"
	DefaultDestExt     = ".norg"
	DefaultIndentWidth = 2
)

// ConversionConfig holds settings for a wiki-to-norg conversion run.
type ConversionConfig struct {
	// SourceDir is the root of the VimWiki tree to read.
	SourceDir string `json:"source_dir" yaml:"source_dir" validate:"required"`

	// DestDir is the root of the Neorg tree to write. Created if absent.
	DestDir string `json:"dest_dir" yaml:"dest_dir" validate:"required"`

	// SourceExt is the extension of files to convert (default ".wiki").
	SourceExt string `json:"source_ext" yaml:"source_ext" validate:"required,startswith=.,excludes=/"`

	// DestExt replaces SourceExt on converted files (default ".norg").
	DestExt string `json:"dest_ext" yaml:"dest_ext" validate:"required,startswith=.,excludes=/,nefield=SourceExt"`

	// OtherFiles selects the policy for non-matching files: skip or copy.
	OtherFiles OtherFilesPolicy `json:"other_files" yaml:"other_files" validate:"oneof=skip copy"`

	// IncludeHidden traverses dot-files and dot-directories (e.g. ".git").
	IncludeHidden bool `json:"include_hidden" yaml:"include_hidden"`

	// NormalizeLinkTargets replaces spaces with underscores in wiki link targets.
	NormalizeLinkTargets bool `json:"normalize_link_targets" yaml:"normalize_link_targets"`

	// IndentWidth is the number of columns that make one list nesting level (default 2).
	IndentWidth int `json:"indent_width" yaml:"indent_width" validate:"min=1,max=8"`

	// DocumentMeta prepends an @document.meta block carrying the page title.
	DocumentMeta bool `json:"document_meta" yaml:"document_meta"`

	// ManifestPath, when set, receives a YAML report of the run.
	ManifestPath string `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
}

// WithDefaults returns a copy of c with zero-valued fields set to their defaults.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	if c.SourceExt == "" {
		c.SourceExt = DefaultSourceExt
	}
	if c.DestExt == "" {
		c.DestExt = DefaultDestExt
	}
	if c.OtherFiles == "" {
		c.OtherFiles = OtherFilesSkip
	}
	if c.IndentWidth == 0 {
		c.IndentWidth = DefaultIndentWidth
	}
	return c
}
