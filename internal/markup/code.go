// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
)

type fenceKind int

const (
	fenceBraces fenceKind = iota
	fenceBackticks
)

// fence is an open code block.
type fence struct {
	kind fenceKind
	lang string
}

var (
	brushAttr = regexp.MustCompile(`class\s*=\s*"\s*brush\s*:\s*([\w+#.-]+)`)
	typeAttr  = regexp.MustCompile(`type\s*=\s*"?([\w+#.-]+)`)
	langToken = regexp.MustCompile(`^[\w+#.-]+$`)
)

// openFence reports whether line opens a code block and, if so, which kind
// and language.
func openFence(line string) (fence, bool) {
	s := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(s, "{{{"):
		rest := strings.TrimSpace(s[3:])
		// A one-line {{{...}}} is inline preformatted text, not a block.
		if strings.HasSuffix(rest, "}}}") {
			return fence{}, false
		}
		return fence{kind: fenceBraces, lang: fenceLang(rest)}, true
	case strings.HasPrefix(s, "```"):
		rest := strings.TrimSpace(strings.TrimLeft(s, "`"))
		if strings.Contains(rest, "`") {
			return fence{}, false
		}
		return fence{kind: fenceBackticks, lang: fenceLang(rest)}, true
	}
	return fence{}, false
}

// closedBy reports whether line closes the block. Only the delimiter of the
// kind that opened it counts.
func (f fence) closedBy(line string) bool {
	s := strings.TrimSpace(line)
	switch f.kind {
	case fenceBraces:
		return s == "}}}"
	case fenceBackticks:
		return len(s) >= 3 && strings.Trim(s, "`") == ""
	}
	return false
}

func (f fence) header(indent string) string {
	if f.lang == "" {
		return indent + "@code"
	}
	return indent + "@code " + f.lang
}

// fenceLang extracts a language from the text following a fence opener:
// a bare token ("python"), class="brush: python" or type=python.
func fenceLang(rest string) string {
	if rest == "" {
		return ""
	}
	if m := brushAttr.FindStringSubmatch(rest); m != nil {
		return m[1]
	}
	if m := typeAttr.FindStringSubmatch(rest); m != nil {
		return m[1]
	}
	if tok := strings.Fields(rest)[0]; langToken.MatchString(tok) {
		return tok
	}
	return ""
}
