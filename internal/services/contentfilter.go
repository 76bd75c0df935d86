package services

import (
	"regexp"
	"strings"

	"flashdeck-backend/internal/models"
)

// Curated vocabulary of inappropriate terms checked on deck metadata before
// a prompt is built and on every generated card before persistence.
var inappropriateWords = []string{
	// Common profanity
	"fuck", "shit", "damn", "hell", "ass", "bitch", "bastard",
	// Slurs and hate speech
	"nigger", "nigga", "kike", "spic", "chink", "gook", "wetback",
	// Other offensive terms
	"retard", "retarded", "faggot", "dyke", "tranny",
}

// Obfuscated spellings such as "f_u_c_k" or "s-h-i-t" that the word list
// cannot catch. Anchored on word boundaries so "class" stays clean.
var obfuscationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bf[*\-_]{0,2}u[*\-_]{0,2}c[*\-_]{0,2}k\b`),
	regexp.MustCompile(`(?i)\bs[*\-_]{0,2}h[*\-_]{0,2}i[*\-_]{0,2}t\b`),
	regexp.MustCompile(`(?i)\bd[*\-_]{0,2}a[*\-_]{0,2}m[*\-_]{0,2}n\b`),
	regexp.MustCompile(`(?i)\ba[*\-_]{0,2}s[*\-_]{0,2}s\b`),
	regexp.MustCompile(`(?i)\bb[*\-_]{0,2}i[*\-_]{0,2}t[*\-_]{0,2}c[*\-_]{0,2}h\b`),
}

var wordPatterns = buildWordPatterns()

func buildWordPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(inappropriateWords))
	for _, word := range inappropriateWords {
		// Word boundaries avoid false positives like "ass" inside "class"
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return patterns
}

// ContainsInappropriateContent reports whether text trips the vocabulary
// list or an obfuscation pattern. Empty input is always clean.
func ContainsInappropriateContent(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return false
	}

	for _, pattern := range wordPatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}

	for _, pattern := range obfuscationPatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}

	return false
}

// FilterInappropriateCards returns the cards whose front and back are both
// clean, preserving order. Rejected cards are dropped, never modified.
func FilterInappropriateCards(cards []models.GeneratedCard) []models.GeneratedCard {
	filtered := make([]models.GeneratedCard, 0, len(cards))
	for _, card := range cards {
		if ContainsInappropriateContent(card.Front) || ContainsInappropriateContent(card.Back) {
			continue
		}
		filtered = append(filtered, card)
	}
	return filtered
}
