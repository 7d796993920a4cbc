// Package sanitizer turns html email bodies into plain text.
package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once

	// blockEnd matches tags that end a visual line in html.
	blockEnd = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|table|blockquote|pre)\s*>`)
	// dropped matches elements whose content is never text.
	dropped = regexp.MustCompile(`(?is)<(head|style|script)[^>]*>.*?</(head|style|script)\s*>`)
	// blankRun collapses three or more line breaks.
	blankRun = regexp.MustCompile(`\n{3,}`)
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripTags reduces an html document to readable plain text.
// Block-level elements become line breaks, head/style/script content is
// dropped and entities are decoded.
func StripTags(s string) string {
	initPolicies()

	s = dropped.ReplaceAllString(s, "")
	s = blockEnd.ReplaceAllString(s, "$0\n")
	s = html.UnescapeString(strictPolicy.Sanitize(s))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(s)
}
