package validation

import (
	"regexp"
	"strings"
)

// MaxTextLength bounds free-text fields after sanitizing
const MaxTextLength = 2000

var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	javascriptPattern  = regexp.MustCompile(`(?i)javascript:`)
)

// SanitizeText trims text, strips script blocks and javascript: URLs,
// and truncates to MaxTextLength characters. This is a denylist and does
// not make text safe to render as HTML; escape on output.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)
	text = scriptBlockPattern.ReplaceAllString(text, "")
	text = javascriptPattern.ReplaceAllString(text, "")

	runes := []rune(text)
	if len(runes) > MaxTextLength {
		text = string(runes[:MaxTextLength])
	}
	return text
}
