// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wiki2norg/internal/convert"
	"github.com/pdiddy/wiki2norg/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source-dir] [dest-dir]",
	Short: "Convert VimWiki files to Neorg, mirroring the directory tree",
	Long: `Convert walks source-dir, rewrites every .wiki file as Neorg and writes it
to the same relative path under dest-dir with a .norg extension. dest-dir is
created if it does not exist. Other files are skipped unless --other-files=copy.

Both directories may instead come from convert.source_dir and convert.dest_dir
in the config file. The command fails when the source directory cannot be
read or when any file fails to convert.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("source-ext", types.DefaultSourceExt, "extension of files to convert")
	f.String("dest-ext", types.DefaultDestExt, "extension of converted files")
	f.String("other-files", string(types.OtherFilesSkip), "policy for files without the source extension: skip or copy")
	f.Bool("include-hidden", false, "also convert dot-files and dot-directories")
	f.Bool("normalize-links", false, "replace spaces with underscores in wiki link targets")
	f.Int("indent-width", types.DefaultIndentWidth, "columns per list nesting level")
	f.Bool("document-meta", false, "prepend an @document.meta block with the page title")
	f.String("manifest", "", "write a YAML report of the run to this path")

	bindFlags := map[string]string{
		"convert.source_ext":             "source-ext",
		"convert.dest_ext":               "dest-ext",
		"convert.other_files":            "other-files",
		"convert.include_hidden":         "include-hidden",
		"convert.normalize_link_targets": "normalize-links",
		"convert.indent_width":           "indent-width",
		"convert.document_meta":          "document-meta",
		"convert.manifest_path":          "manifest",
	}
	for key, flag := range bindFlags {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(args)
	if cfg.SourceDir == "" || cfg.DestDir == "" {
		return fmt.Errorf("provide a source and a destination directory")
	}

	c, err := convert.New(cfg, logger)
	if err != nil {
		return err
	}

	result, err := c.Run(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// conversionConfig merges positional arguments over config file, environment
// and flag values.
func conversionConfig(args []string) types.ConversionConfig {
	cfg := types.ConversionConfig{
		SourceDir:            viper.GetString("convert.source_dir"),
		DestDir:              viper.GetString("convert.dest_dir"),
		SourceExt:            viper.GetString("convert.source_ext"),
		DestExt:              viper.GetString("convert.dest_ext"),
		OtherFiles:           types.OtherFilesPolicy(viper.GetString("convert.other_files")),
		IncludeHidden:        viper.GetBool("convert.include_hidden"),
		NormalizeLinkTargets: viper.GetBool("convert.normalize_link_targets"),
		IndentWidth:          viper.GetInt("convert.indent_width"),
		DocumentMeta:         viper.GetBool("convert.document_meta"),
		ManifestPath:         viper.GetString("convert.manifest_path"),
	}
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if len(args) > 1 {
		cfg.DestDir = args[1]
	}
	cfg.SourceDir = expandHome(cfg.SourceDir)
	cfg.DestDir = expandHome(cfg.DestDir)
	cfg.ManifestPath = expandHome(cfg.ManifestPath)
	return cfg
}
