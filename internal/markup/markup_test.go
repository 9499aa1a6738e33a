// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer() *Transformer {
	return NewTransformer(Options{})
}

// --- headings ---

func TestHeadingDepthPreserved(t *testing.T) {
	tr := newTestTransformer()
	for k := 1; k <= maxHeadingDepth; k++ {
		marker := strings.Repeat("=", k)
		line := marker + " Title " + marker
		want := strings.Repeat("*", k) + " Title"
		assert.Equal(t, want, tr.TransformLine(line), "depth %d", k)
	}
}

func TestHeadings(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"no inner spaces", "==Title==", "** Title"},
		{"centered", "   = Centered =  ", "* Centered"},
		{"text with equals", "= a = b =", "* a = b"},
		{"unequal markers", "== Title =", "== Title ="},
		{"too deep", "======= Deep =======", "======= Deep ======="},
		{"empty text", "====", "===="},
		{"not at line start", "x = Title =", "x = Title ="},
		{"link in heading", "= See [[Other Page]] =", "* See {:Other Page:}"},
	}
	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.TransformLine(tt.line))
		})
	}
}

// --- links ---

func TestLinks(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bare page", "[[target]]", "{:target:}"},
		{"page with description", "[[target|Display Text]]", "{:target:}[Display Text]"},
		{"empty description", "[[target|]]", "{:target:}"},
		{"spaces kept", "[[My Page]]", "{:My Page:}"},
		{"source extension stripped", "[[notes.wiki]]", "{:notes:}"},
		{"subdirectory", "[[projects/alpha|Alpha]]", "{:projects/alpha:}[Alpha]"},
		{"root relative", "[[/index]]", "{:$/index:}"},
		{"anchor", "[[page#Section One]]", "{:page:# Section One}"},
		{"anchor only", "[[#Tasks|tasks]]", "{# Tasks}[tasks]"},
		{"url", "[[https://example.com/a?b=c|Example]]", "{https://example.com/a?b=c}[Example]"},
		{"mailto", "[[mailto:me@example.com]]", "{mailto:me@example.com}"},
		{"file scheme", "[[file:///tmp/report.pdf|Report]]", "{/ /tmp/report.pdf}[Report]"},
		{"local scheme", "[[local:docs/a.pdf]]", "{/ docs/a.pdf}"},
		{"diary", "[[diary:2024-03-01]]", "{:diary/2024-03-01:}"},
		{"directory", "[[projects/]]", "{/ projects/}"},
		{"several on a line", "see [[a]] and [[b|B]].", "see {:a:} and {:b:}[B]."},
		{"malformed left alone", "[[unclosed", "[[unclosed"},
		{"empty target left alone", "[[|text]]", "[[|text]]"},
		{"single brackets untouched", "[not a link]", "[not a link]"},
		{"inline code untouched", "Use `[[x]]` inline", "Use `[[x]]` inline"},
		{"link beside inline code", "`[[x]]` or [[y]]", "`[[x]]` or {:y:}"},
		{"unmatched backtick", "a ` [[x]]", "a ` {:x:}"},
	}
	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.TransformLine(tt.line))
		})
	}
}

func TestLinkRoundTripKeepsTargetAndText(t *testing.T) {
	out := newTestTransformer().TransformLine("[[target|Display Text]]")
	assert.Contains(t, out, "target")
	assert.Contains(t, out, "Display Text")
}

func TestNormalizeLinkTargets(t *testing.T) {
	tr := NewTransformer(Options{NormalizeLinkTargets: true})
	assert.Equal(t, "{:My_Page:}[My Page]", tr.TransformLine("[[My Page|My Page]]"))
	assert.Equal(t, "{https://a.b/c d}", tr.TransformLine("[[https://a.b/c d]]"))
}

// --- lists ---

func TestListItems(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"star bullet", "* item", "- item"},
		{"dash bullet", "- item", "- item"},
		{"nested by two spaces", "  * child", "-- child"},
		{"nested by tab", "\t\t- grandchild", "--- grandchild"},
		{"hash ordered", "# first", "~ first"},
		{"numbered", "1. first", "~ first"},
		{"numbered paren", "  2) second", "~~ second"},
		{"three digit number", "100. hundredth", "~ hundredth"},
		{"year is prose", "2024. was a good year", "2024. was a good year"},
		{"open task", "* [ ] buy milk", "- ( ) buy milk"},
		{"done task", "- [X] ship it", "- (x) ship it"},
		{"partial task", "* [o] halfway", "- (-) halfway"},
		{"rejected task", "* [-] dropped", "- (_) dropped"},
		{"bold is not a list", "*bold* text", "*bold* text"},
		{"rule is not a list", "----", "----"},
		{"link in item", "* [[page|Page]]", "- {:page:}[Page]"},
	}
	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.TransformLine(tt.line))
		})
	}
}

func TestListIndentWidth(t *testing.T) {
	tr := NewTransformer(Options{IndentWidth: 4})
	assert.Equal(t, "- a", tr.TransformLine("  * a"))
	assert.Equal(t, "-- a", tr.TransformLine("    * a"))
	assert.Equal(t, "-- a", tr.TransformLine("\t* a"))
}

// --- transclusion ---

func TestTransclusion(t *testing.T) {
	tr := newTestTransformer()
	assert.Equal(t, ".image images/cat.png", tr.TransformLine("{{images/cat.png}}"))
	assert.Equal(t, ".image cat.png", tr.TransformLine("  {{file:cat.png|a cat}}"))
	assert.Equal(t, "text {{inline.png}} text", tr.TransformLine("text {{inline.png}} text"))
}

// --- code blocks ---

func TestCodeBlockOpacity(t *testing.T) {
	in := []string{
		"= Title =",
		"{{{",
		"= fake header =",
		"* not a list",
		"[[not|a link]]",
		"}}}",
		"[[real]]",
	}
	want := []string{
		"* Title",
		"@code",
		"= fake header =",
		"* not a list",
		"[[not|a link]]",
		"@end",
		"{:real:}",
	}
	assert.Equal(t, want, newTestTransformer().TransformDocument(in))
}

func TestPlainDashLinesAreNotFences(t *testing.T) {
	in := []string{
		"= Title =",
		"---",
		"code with = fake header = inside",
		"---",
	}
	want := []string{
		"* Title",
		"---",
		"code with = fake header = inside",
		"---",
	}
	assert.Equal(t, want, newTestTransformer().TransformDocument(in))
}

func TestFenceLanguages(t *testing.T) {
	tests := []struct {
		name  string
		open  string
		close string
		want  string
	}{
		{"braces bare", "{{{", "}}}", "@code"},
		{"braces token", "{{{python", "}}}", "@code python"},
		{"braces brush", `{{{class="brush: go"`, "}}}", "@code go"},
		{"braces type", "{{{type=sh", "}}}", "@code sh"},
		{"backticks", "```lua", "```", "@code lua"},
		{"backticks bare", "```", "```", "@code"},
		{"indented", "  {{{c", "  }}}", "  @code c"},
	}
	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tr.TransformDocument([]string{tt.open, "x = 1", tt.close})
			require.Len(t, out, 3)
			assert.Equal(t, tt.want, out[0])
			assert.Equal(t, "x = 1", out[1])
			assert.Equal(t, "@end", strings.TrimSpace(out[2]))
		})
	}
}

func TestFenceKindMustMatch(t *testing.T) {
	in := []string{"{{{", "```", "= still code =", "}}}"}
	want := []string{"@code", "```", "= still code =", "@end"}
	assert.Equal(t, want, newTestTransformer().TransformDocument(in))
}

func TestInlinePreformattedIsNotFence(t *testing.T) {
	out := newTestTransformer().TransformDocument([]string{"{{{inline}}}", "= Title ="})
	assert.Equal(t, []string{"{{{inline}}}", "* Title"}, out)
}

func TestUnclosedBlockIsClosed(t *testing.T) {
	out := newTestTransformer().TransformDocument([]string{"```", "= x ="})
	assert.Equal(t, []string{"@code", "= x =", "@end"}, out)
}

// --- whole documents ---

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"keeps final newline", "= A =\n", "* A\n"},
		{"no final newline", "= A =", "* A"},
		{"crlf", "= A =\r\n[[b]]\r\n", "* A\r\n{:b:}\r\n"},
		{"bom dropped", "\uFEFF= A =\n", "* A\n"},
		{"blank lines kept", "a\n\n\nb\n", "a\n\n\nb\n"},
		{"unclosed block", "{{{\nx\n", "@code\nx\n@end\n"},
	}
	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Transform(tt.in))
		})
	}
}

func TestTransformDeterministic(t *testing.T) {
	doc := "= Index =\n* [[a|A]]\n  * [ ] todo\n{{{sh\n[[x]]\n}}}\n"
	tr := newTestTransformer()
	first := tr.Transform(doc)
	second := NewTransformer(Options{}).Transform(doc)
	assert.Equal(t, first, second)
}

func TestRulesOrder(t *testing.T) {
	assert.Equal(t, []string{"code", "heading", "list", "transclusion", "link"}, newTestTransformer().Rules())
}

func TestDocumentMeta(t *testing.T) {
	assert.Equal(t, "@document.meta\ntitle: index\n@end\n\n", DocumentMeta("index"))
}
