package services

import (
	"regexp"
	"strings"
)

// ASCII control characters except newline and tab. Newlines are collapsed
// separately after truncation.
var controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")

var repeatedWhitespace = regexp.MustCompile(`\s+`)

const maxPromptFieldLength = 1000

// SanitizeForPrompt neutralizes text before it is embedded in a generation
// prompt: control characters are stripped, length is bounded, and newlines
// are flattened so embedded multi-line instructions cannot survive.
func SanitizeForPrompt(text string) string {
	sanitized := controlChars.ReplaceAllString(text, "")

	if runes := []rune(sanitized); len(runes) > maxPromptFieldLength {
		sanitized = string(runes[:maxPromptFieldLength])
	}
	sanitized = strings.TrimSpace(sanitized)

	sanitized = strings.ReplaceAll(sanitized, "\n", " ")
	sanitized = strings.ReplaceAll(sanitized, "\r", "")
	sanitized = repeatedWhitespace.ReplaceAllString(sanitized, " ")

	return sanitized
}
