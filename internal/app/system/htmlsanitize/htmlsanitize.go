// Package htmlsanitize cleans user-supplied HTML before it is stored.
//
// Resource descriptions, learning objectives, prerequisites, and notes
// accept rich text from the portal editor, so Sanitize allows common
// formatting while stripping scripts, event handlers, and dangerous URLs.
// Single-line fields like titles go through StripTags instead.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = buildRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// buildRichPolicy starts from the UGC policy and adds the table and
// formatting elements the portal editor emits.
func buildRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("style").OnElements("table", "tr", "th", "td")
	p.AllowElements("u", "s", "mark")
	p.AllowImages()
	return p
}

// Sanitize returns s with disallowed HTML removed. Safe formatting (lists,
// tables, headings, links, images) is preserved.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richPolicy.Sanitize(s)
}

// StripTags removes all HTML, returning plain text. Used for fields that
// must never contain markup.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags. A bare < or > does
// not count as a tag.
func IsPlainText(s string) bool {
	lt := strings.IndexByte(s, '<')
	if lt < 0 {
		return true
	}
	return strings.IndexByte(s[lt:], '>') < 0
}
