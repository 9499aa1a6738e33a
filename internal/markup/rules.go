// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
)

// maxHeadingDepth is the deepest heading level either dialect supports.
const maxHeadingDepth = 6

var (
	headingPattern      = regexp.MustCompile(`^\s*(=+)\s*(.*?)\s*(=+)\s*$`)
	listPattern         = regexp.MustCompile(`^([ \t]*)([*#-]|\d{1,3}[.)])[ \t]+(.*)$`)
	checkboxPattern     = regexp.MustCompile(`^\[([ .oOX-])\](?:[ \t]+|$)`)
	transclusionPattern = regexp.MustCompile(`^\s*\{\{([^{}|]+)(?:\|[^{}]*)?\}\}\s*$`)
)

// checkboxStates maps VimWiki todo markers to Neorg task states.
var checkboxStates = map[string]string{
	" ": "( )",
	".": "(-)",
	"o": "(-)",
	"O": "(-)",
	"X": "(x)",
	"-": "(_)",
}

// rewriteHeading turns "== Title ==" into "** Title". The opening and
// closing markers must have the same length.
func rewriteHeading(line string) (string, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	depth := len(m[1])
	if depth != len(m[3]) || depth > maxHeadingDepth || m[2] == "" {
		return line, false
	}
	return strings.Repeat("*", depth) + " " + m[2], true
}

// rewriteListItem turns bulleted and numbered items into Neorg list items,
// deriving nesting from indentation. Numbered markers have at most three
// digits so a year opening a sentence stays prose.
func (t *Transformer) rewriteListItem(line string) (string, bool) {
	m := listPattern.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}

	depth := indentColumns(m[1], t.opts.IndentWidth)/t.opts.IndentWidth + 1

	marker := "-"
	if m[2] != "*" && m[2] != "-" {
		marker = "~"
	}

	text := m[3]
	if cb := checkboxPattern.FindStringSubmatch(text); cb != nil {
		rest := text[len(cb[0]):]
		text = checkboxStates[cb[1]]
		if rest != "" {
			text += " " + rest
		}
	}

	out := strings.Repeat(marker, depth)
	if text != "" {
		out += " " + text
	}
	return out, true
}

// rewriteTransclusion turns a line holding only "{{image.png}}" into an
// .image tag.
func rewriteTransclusion(line string) (string, bool) {
	m := transclusionPattern.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	target := strings.TrimSpace(m[1])
	if target == "" {
		return line, false
	}
	return ".image " + strings.TrimPrefix(target, "file:"), true
}

func indentColumns(indent string, tabWidth int) int {
	cols := 0
	for _, r := range indent {
		if r == '\t' {
			cols += tabWidth
		} else {
			cols++
		}
	}
	return cols
}
