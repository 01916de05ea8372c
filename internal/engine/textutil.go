package engine

import (
	"html"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgentChrome is the fixed desktop User-Agent for Innertube web calls.
const UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// CleanCueText normalises caption text: entities decoded, tags removed,
// line breaks and runs of whitespace collapsed to one space.
func CleanCueText(s string) string {
	s = CleanHTML(html.UnescapeString(s))
	return strings.Join(strings.Fields(s), " ")
}

// Preview caps s at limit runes for log lines.
func Preview(s string, limit int) string {
	return strutil.TruncateWith(s, limit, "...")
}
