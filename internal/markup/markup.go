// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup rewrites VimWiki text into Neorg text line by line.
// Headings, list items, transclusions and links are recognized by a fixed,
// ordered set of rules; fenced code blocks suspend every rule except the
// delimiter rewrite.
package markup

import (
	"strings"

	"github.com/pdiddy/wiki2norg/pkg/types"
)

const bom = "\uFEFF"

// Options tunes the transform.
type Options struct {
	// IndentWidth is the number of columns per list nesting level.
	IndentWidth int

	// NormalizeLinkTargets replaces spaces with underscores in wiki page targets.
	NormalizeLinkTargets bool

	// SourceExt is stripped from wiki link targets that carry it (e.g. ".wiki").
	SourceExt string
}

// Rule is a stateless pattern-to-replacement mapping. Apply returns the
// rewritten line and whether the pattern matched.
type Rule struct {
	Name  string
	Apply func(line string) (string, bool)
}

// Transformer applies the structural and inline rules to documents.
type Transformer struct {
	opts       Options
	structural []Rule
	inline     []Rule
}

// NewTransformer builds a Transformer. Zero-valued options fall back to the
// package defaults.
func NewTransformer(opts Options) *Transformer {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = types.DefaultIndentWidth
	}
	if opts.SourceExt == "" {
		opts.SourceExt = types.DefaultSourceExt
	}
	t := &Transformer{opts: opts}
	t.structural = []Rule{
		{Name: "heading", Apply: rewriteHeading},
		{Name: "list", Apply: t.rewriteListItem},
		{Name: "transclusion", Apply: rewriteTransclusion},
	}
	t.inline = []Rule{
		{Name: "link", Apply: t.rewriteLinks},
	}
	return t
}

// Rules returns the rule names in the order they are tried.
func (t *Transformer) Rules() []string {
	names := []string{"code"}
	for _, r := range t.structural {
		names = append(names, r.Name)
	}
	for _, r := range t.inline {
		names = append(names, r.Name)
	}
	return names
}

// TransformLine rewrites a single line that is known to be outside a code
// block. At most one structural rule applies; inline rules then run over the
// result. Lines that match nothing are returned unchanged.
func (t *Transformer) TransformLine(line string) string {
	for _, r := range t.structural {
		if out, ok := r.Apply(line); ok {
			line = out
			break
		}
	}
	for _, r := range t.inline {
		if out, ok := r.Apply(line); ok {
			line = out
		}
	}
	return line
}

// TransformDocument rewrites an ordered sequence of lines. Whether the scan
// is inside a code block is carried from line to line; lines inside a block
// are emitted verbatim. A block left open at the end is closed.
func (t *Transformer) TransformDocument(lines []string) []string {
	out := make([]string, 0, len(lines))
	var open *fence

	for _, line := range lines {
		if open != nil {
			if open.closedBy(line) {
				out = append(out, leadingSpace(line)+"@end")
				open = nil
				continue
			}
			out = append(out, line)
			continue
		}

		if f, ok := openFence(line); ok {
			out = append(out, f.header(leadingSpace(line)))
			open = &f
			continue
		}

		out = append(out, t.TransformLine(line))
	}

	if open != nil {
		out = append(out, "@end")
	}
	return out
}

// Transform converts a whole document. A leading byte-order mark is dropped,
// CRLF line endings and the presence of a final newline are preserved.
func (t *Transformer) Transform(content string) string {
	content = strings.TrimPrefix(content, bom)
	if content == "" {
		return ""
	}

	trailingNewline := strings.HasSuffix(content, "\n")
	body := strings.TrimSuffix(content, "\n")

	lines := strings.Split(body, "\n")
	crlf := make([]bool, len(lines))
	for i, l := range lines {
		if strings.HasSuffix(l, "\r") {
			crlf[i] = true
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}

	converted := t.TransformDocument(lines)

	var b strings.Builder
	b.Grow(len(content) + len(content)/8)
	for i, l := range converted {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
		if i < len(crlf) && crlf[i] {
			b.WriteByte('\r')
		}
	}
	if trailingNewline {
		b.WriteByte('\n')
	}
	return b.String()
}

// DocumentMeta renders a Neorg metadata block carrying the page title.
func DocumentMeta(title string) string {
	var b strings.Builder
	b.WriteString("@document.meta\n")
	b.WriteString("title: " + title + "\n")
	b.WriteString("@end\n\n")
	return b.String()
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
