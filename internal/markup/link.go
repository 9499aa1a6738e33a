// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
)

var (
	linkPattern = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)
	urlScheme   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
)

// rewriteLinks replaces every [[target]] and [[target|Display Text]] on the
// line with the Neorg equivalent. Text between backticks is inline code and
// is left alone; an unmatched backtick does not start a code span.
func (t *Transformer) rewriteLinks(line string) (string, bool) {
	if !strings.Contains(line, "[[") {
		return line, false
	}
	parts := strings.Split(line, "`")
	matched := false
	for i, part := range parts {
		if i%2 == 1 && i != len(parts)-1 {
			continue
		}
		out, ok := t.replaceLinks(part)
		parts[i] = out
		matched = matched || ok
	}
	return strings.Join(parts, "`"), matched
}

func (t *Transformer) replaceLinks(text string) (string, bool) {
	matched := false
	out := linkPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := linkPattern.FindStringSubmatch(s)
		target := strings.TrimSpace(m[1])
		if strings.Trim(target, "#") == "" {
			return s
		}
		matched = true
		return t.linkLocation(target) + linkDescription(m[2])
	})
	return out, matched
}

// linkLocation renders the {...} part of a Neorg link.
func (t *Transformer) linkLocation(target string) string {
	switch {
	case strings.HasPrefix(target, "file:"):
		return "{/ " + strings.TrimPrefix(strings.TrimPrefix(target, "file:"), "//") + "}"
	case strings.HasPrefix(target, "local:"):
		return "{/ " + strings.TrimPrefix(strings.TrimPrefix(target, "local:"), "//") + "}"
	case urlScheme.MatchString(target), strings.HasPrefix(target, "mailto:"):
		return "{" + target + "}"
	case strings.HasPrefix(target, "diary:"):
		return t.wikiLocation("diary/" + strings.TrimPrefix(target, "diary:"))
	}
	return t.wikiLocation(target)
}

// wikiLocation renders a link to another page of the wiki, optionally
// pointing at a heading inside it.
func (t *Transformer) wikiLocation(target string) string {
	page, anchor, _ := strings.Cut(target, "#")
	page = strings.TrimSpace(page)
	anchor = strings.TrimSpace(anchor)

	if strings.HasSuffix(page, "/") {
		return "{/ " + page + "}"
	}

	page = strings.TrimSuffix(page, t.opts.SourceExt)
	if t.opts.NormalizeLinkTargets {
		page = strings.ReplaceAll(page, " ", "_")
	}
	if strings.HasPrefix(page, "/") {
		page = "$" + page
	}

	switch {
	case page == "" && anchor == "":
		return "{}"
	case page == "":
		return "{# " + anchor + "}"
	case anchor == "":
		return "{:" + page + ":}"
	}
	return "{:" + page + ":# " + anchor + "}"
}

// linkDescription renders the optional [...] part. Empty descriptions are
// treated as absent.
func linkDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	return "[" + desc + "]"
}
