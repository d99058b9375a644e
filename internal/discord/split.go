package discord

import (
	"strings"
	"unicode/utf8"
)

// splitMessage cuts s into chunks of at most maxLen bytes, preferring to
// break after the last newline in each window and never inside a rune.
func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		end := maxLen
		if end >= len(s) {
			chunks = append(chunks, s)
			break
		}
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
			end = idx + 1
		}
		if end == 0 {
			end = maxLen
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}
