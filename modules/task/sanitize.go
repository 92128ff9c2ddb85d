package task

import (
	"strings"
)

// maxTextLen caps free-text fields after sanitization.
const maxTextLen = 1000

// SanitizeString strips angle brackets, trims surrounding whitespace and
// caps the result at 1000 characters. "<script>hi</script>" becomes
// "scripthi/script".
func SanitizeString(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = strings.TrimSpace(s)
	if len(s) > maxTextLen {
		s = s[:maxTextLen]
	}
	return s
}

// SanitizeTags sanitizes each tag and drops the ones that end up empty.
// Order and duplicates are preserved.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if clean := SanitizeString(tag); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
