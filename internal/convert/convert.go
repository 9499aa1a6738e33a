// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert mirrors a VimWiki directory tree into a Neorg tree.
// Every file carrying the source extension is rewritten by the markup
// package and written under the destination root with the destination
// extension. Failures are isolated per file; only an unreadable source root
// aborts a run.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pdiddy/wiki2norg/internal/markup"
	"github.com/pdiddy/wiki2norg/pkg/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Copied    int
	Skipped   int
	Failed    int

	// Files lists every visited file in walk order.
	Files []types.FileResult
}

// Total returns the number of files visited.
func (r BatchResult) Total() int {
	return r.Converted + r.Copied + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) record(fr types.FileResult) {
	switch fr.Status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionCopied:
		r.Copied++
	case types.ConversionSkipped:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, fr)
}

// Converter walks a source tree and writes the converted tree.
type Converter struct {
	cfg types.ConversionConfig
	tr  *markup.Transformer
	log *zap.Logger
}

// New validates cfg, after applying defaults, and returns a Converter. A nil
// logger discards log output.
func New(cfg types.ConversionConfig, log *zap.Logger) (*Converter, error) {
	cfg = cfg.WithDefaults()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid conversion config: %w", err)
	}

	src, err := resolveRoot(cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source root: %w", err)
	}
	dst, err := resolveRoot(cfg.DestDir)
	if err != nil {
		return nil, fmt.Errorf("resolving destination root: %w", err)
	}
	if src == dst {
		return nil, fmt.Errorf("invalid conversion config: source and destination roots are both %s", src)
	}
	cfg.SourceDir, cfg.DestDir = src, dst

	if log == nil {
		log = zap.NewNop()
	}

	return &Converter{
		cfg: cfg,
		tr: markup.NewTransformer(markup.Options{
			IndentWidth:          cfg.IndentWidth,
			NormalizeLinkTargets: cfg.NormalizeLinkTargets,
			SourceExt:            cfg.SourceExt,
		}),
		log: log,
	}, nil
}

// Convert converts every .wiki file under sourceRoot into a .norg file under
// destRoot using the default configuration.
func Convert(ctx context.Context, sourceRoot, destRoot string, w io.Writer) (BatchResult, error) {
	c, err := New(types.ConversionConfig{SourceDir: sourceRoot, DestDir: destRoot}, nil)
	if err != nil {
		return BatchResult{}, err
	}
	return c.Run(ctx, w)
}

// Config returns the effective configuration.
func (c *Converter) Config() types.ConversionConfig {
	return c.cfg
}

// Run walks the source root in lexical order, converting, copying or
// skipping each file, and prints one status line per file to w followed by
// a summary. Per-file failures are recorded in the result and do not stop
// the walk. The returned error is non-nil only when the source root cannot
// be read, the destination root cannot be created, the context is done or
// the manifest cannot be written.
func (c *Converter) Run(ctx context.Context, w io.Writer) (BatchResult, error) {
	src, dst := c.cfg.SourceDir, c.cfg.DestDir

	info, err := os.Stat(src)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}
	if !info.IsDir() {
		return BatchResult{}, fmt.Errorf("%w: %s is not a directory", ErrSourceRoot, src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating destination root %s: %w", dst, err)
	}
	// dst may not have existed when New resolved it.
	if resolved, err := filepath.EvalSymlinks(dst); err == nil {
		dst = resolved
	}

	c.log.Info("conversion started", zap.String("source", src), zap.String("dest", dst))

	var result BatchResult
	walkErr := filepath.WalkDir(src, c.visit(ctx, w, &result, dst))

	fmt.Fprintf(w, "\nConversion summary: %d converted, %d copied, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Copied, result.Skipped, result.Failed, result.Total())
	c.log.Info("conversion finished",
		zap.Int("converted", result.Converted),
		zap.Int("copied", result.Copied),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	if walkErr != nil {
		return result, walkErr
	}

	if c.cfg.ManifestPath != "" {
		if err := WriteManifest(c.cfg.ManifestPath, NewManifest(c.cfg, result)); err != nil {
			return result, err
		}
		c.log.Debug("manifest written", zap.String("path", c.cfg.ManifestPath))
	}

	return result, nil
}

// visit returns the walk callback for one run. Errors reading a
// subdirectory are recorded against it and the directory is skipped; an
// error on the root itself aborts the walk.
func (c *Converter) visit(ctx context.Context, w io.Writer, result *BatchResult, dst string) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == c.cfg.SourceDir {
				return fmt.Errorf("%w: %w", ErrSourceRoot, err)
			}
			rel := filepath.ToSlash(c.rel(path))
			fe := &FileError{Op: "read directory", Kind: KindIO, Path: rel, Err: err}
			c.report(w, result, types.FileResult{Source: rel, Status: types.ConversionFailed, Error: fe.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == c.cfg.SourceDir {
			return nil
		}

		if d.IsDir() {
			if !c.cfg.IncludeHidden && isHidden(d.Name()) {
				c.log.Debug("ignoring hidden directory", zap.String("path", c.rel(path)))
				return filepath.SkipDir
			}
			if path == dst {
				c.log.Debug("not descending into destination root", zap.String("path", c.rel(path)))
				return filepath.SkipDir
			}
			return nil
		}

		if !c.cfg.IncludeHidden && isHidden(d.Name()) {
			c.log.Debug("ignoring hidden file", zap.String("path", c.rel(path)))
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				c.log.Debug("ignoring symlinked directory", zap.String("path", c.rel(path)))
				return nil
			}
		} else if !d.Type().IsRegular() {
			c.log.Debug("ignoring special file", zap.String("path", c.rel(path)))
			return nil
		}

		c.report(w, result, c.processFile(c.rel(path)))
		return nil
	}
}

// processFile handles one regular file given its path relative to the
// source root.
func (c *Converter) processFile(rel string) types.FileResult {
	srcPath := filepath.Join(c.cfg.SourceDir, rel)

	if !hasExt(rel, c.cfg.SourceExt) {
		if c.cfg.OtherFiles != types.OtherFilesCopy {
			return types.FileResult{Source: filepath.ToSlash(rel), Status: types.ConversionSkipped}
		}
		fr := types.FileResult{Source: filepath.ToSlash(rel), Dest: filepath.ToSlash(rel), Status: types.ConversionCopied}
		if err := copyFile(srcPath, filepath.Join(c.cfg.DestDir, rel), rel); err != nil {
			fr.Status = types.ConversionFailed
			fr.Error = err.Error()
		}
		return fr
	}

	destRel := MapPath(rel, c.cfg.SourceExt, c.cfg.DestExt)
	fr := types.FileResult{Source: filepath.ToSlash(rel), Dest: filepath.ToSlash(destRel), Status: types.ConversionDone}
	if err := c.convertFile(srcPath, filepath.Join(c.cfg.DestDir, destRel), rel); err != nil {
		fr.Status = types.ConversionFailed
		fr.Error = err.Error()
	}
	return fr
}

// ConvertFile converts the single VimWiki file at src and writes the Neorg
// result to dst, creating parent directories. Failures are *FileError.
func (c *Converter) ConvertFile(src, dst string) error {
	return c.convertFile(src, dst, src)
}

func (c *Converter) convertFile(src, dst, rel string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return &FileError{Op: "read", Kind: KindIO, Path: rel, Err: err}
	}
	if !utf8.Valid(data) {
		return &FileError{Op: "decode", Kind: KindEncoding, Path: rel, Err: errors.New("not valid UTF-8")}
	}

	out := c.tr.Transform(string(data))
	if c.cfg.DocumentMeta {
		out = markup.DocumentMeta(pageTitle(src, c.cfg.SourceExt)) + out
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &FileError{Op: "create directory for", Kind: KindIO, Path: rel, Err: err}
	}
	if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
		return &FileError{Op: "write", Kind: KindIO, Path: rel, Err: err}
	}
	return nil
}

func (c *Converter) report(w io.Writer, result *BatchResult, fr types.FileResult) {
	result.record(fr)
	switch fr.Status {
	case types.ConversionDone:
		fmt.Fprintf(w, "converted: %s -> %s\n", fr.Source, fr.Dest)
		c.log.Info("converted", zap.String("source", fr.Source), zap.String("dest", fr.Dest))
	case types.ConversionCopied:
		fmt.Fprintf(w, "copied:    %s\n", fr.Source)
		c.log.Info("copied", zap.String("source", fr.Source))
	case types.ConversionSkipped:
		fmt.Fprintf(w, "skipped:   %s\n", fr.Source)
		c.log.Debug("skipped", zap.String("source", fr.Source))
	case types.ConversionFailed:
		fmt.Fprintf(w, "failed:    %s (%s)\n", fr.Source, fr.Error)
		c.log.Warn("failed", zap.String("source", fr.Source), zap.String("error", fr.Error))
	}
}

// resolveRoot returns the absolute form of path with symlinks resolved, so a
// symlinked root is walked like the directory it points to. A path that does
// not exist yet keeps its absolute form.
func resolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func (c *Converter) rel(path string) string {
	rel, err := filepath.Rel(c.cfg.SourceDir, path)
	if err != nil {
		return path
	}
	return rel
}

// MapPath returns the destination path, relative to the destination root,
// for a source path relative to the source root: the directory part is kept
// and a trailing srcExt (matched case-insensitively) is replaced by destExt.
// Paths without srcExt are returned unchanged.
func MapPath(rel, srcExt, destExt string) string {
	if !hasExt(rel, srcExt) {
		return rel
	}
	return rel[:len(rel)-len(srcExt)] + destExt
}

func hasExt(name, ext string) bool {
	base := filepath.Base(name)
	return len(base) > len(ext) && strings.EqualFold(base[len(base)-len(ext):], ext)
}

func pageTitle(path, ext string) string {
	base := filepath.Base(path)
	if hasExt(base, ext) {
		return base[:len(base)-len(ext)]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func copyFile(src, dst, rel string) error {
	in, err := os.Open(src)
	if err != nil {
		return &FileError{Op: "read", Kind: KindIO, Path: rel, Err: err}
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &FileError{Op: "create directory for", Kind: KindIO, Path: rel, Err: err}
	}
	out, err := os.Create(dst)
	if err != nil {
		return &FileError{Op: "write", Kind: KindIO, Path: rel, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &FileError{Op: "copy", Kind: KindIO, Path: rel, Err: err}
	}
	if err := out.Close(); err != nil {
		return &FileError{Op: "write", Kind: KindIO, Path: rel, Err: err}
	}
	return nil
}
