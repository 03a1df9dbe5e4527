package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// SanitizeID converts a human label into a lowercase dash-separated
// identifier safe for catalog keys and directory names. Letters and digits
// are kept, runs of anything else collapse into a single dash. Returns
// "unknown" when nothing survives.
func SanitizeID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	out := b.String()
	if out == "" {
		return "unknown"
	}
	return out
}

// TitleFromFilename suggests a display title from an audio file name:
// the extension is dropped, separators become spaces, and words are
// title-cased.
func TitleFromFilename(name string) string {
	base := name
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	words := strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	return titleCaser.String(strings.Join(words, " "))
}
