package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Languages recognized when classifying a deck as translation-style.
var languagePattern = regexp.MustCompile(`\b(spanish|french|german|italian|portuguese|japanese|chinese|mandarin|korean|russian|arabic|hindi|dutch|swedish|norwegian|danish|polish|turkish|greek|hebrew|vietnamese)\b`)

// isTranslationDeck classifies a deck from its lowercased metadata. A deck
// is translation-style if the description asks for translation with a
// direction or a named language, or the title is about learning a language
// that the description names.
func isTranslationDeck(name, description string) bool {
	title := strings.ToLower(name)
	desc := strings.ToLower(description)

	mentionsTranslation := strings.Contains(desc, "translation") || strings.Contains(desc, "translate")
	mentionsDirection := strings.Contains(desc, "to ") || strings.Contains(desc, "from ")
	descNamesLanguage := languagePattern.MatchString(desc)

	if mentionsTranslation && (mentionsDirection || descNamesLanguage) {
		return true
	}

	titleIsLearning := strings.Contains(title, "learning") || strings.Contains(title, "learn")
	return titleIsLearning && descNamesLanguage
}

// BuildPrompt renders the generation prompt for a deck. Both inputs must
// already be sanitized; the classification runs on lowercased copies while
// the original-case text is what gets embedded.
func BuildPrompt(sanitizedName, sanitizedDescription string, cardCount int) string {
	if isTranslationDeck(sanitizedName, sanitizedDescription) {
		return buildTranslationPrompt(sanitizedName, sanitizedDescription, cardCount)
	}
	return buildGeneralPrompt(sanitizedName, sanitizedDescription, cardCount)
}

func buildTranslationPrompt(name, description string, cardCount int) string {
	var b strings.Builder

	b.WriteString("You are an expert language-learning flashcard creator. Create direct translation flashcards for the deck below.\n\n")

	b.WriteString(fmt.Sprintf("Deck Title: %s\n", name))
	b.WriteString(fmt.Sprintf("Deck Description: %s\n\n", description))

	b.WriteString(fmt.Sprintf("Create exactly %d flashcards.\n\n", cardCount))

	b.WriteString(`Rules:
- Front = a single word or short phrase in the source language
- Back = its direct translation in the target language, nothing else
- Do NOT phrase the front as a question (wrong: "How do you say dog?", right: "Dog")
- Do NOT add explanations, grammar notes, or commentary to the back (wrong: "Perro - a common domestic animal", right: "Perro")
- Cover practical, high-frequency vocabulary appropriate to the deck description

`)

	b.WriteString(`CRITICAL: Return ONLY a raw JSON object of this exact shape:
{"cards":[{"front":"Dog","back":"Perro"},{"front":"Thank you","back":"Gracias"}]}
No markdown fences, no preamble, no prose before or after the JSON.
`)

	return b.String()
}

func buildGeneralPrompt(name, description string, cardCount int) string {
	var b strings.Builder

	b.WriteString("You are an expert flashcard creator. Create high-quality study flashcards for the deck below.\n\n")

	b.WriteString(fmt.Sprintf("Deck Title: %s\n", name))
	b.WriteString(fmt.Sprintf("Deck Description: %s\n\n", description))

	b.WriteString(fmt.Sprintf("Create exactly %d flashcards.\n\n", cardCount))

	b.WriteString(`Rules:
- Match the style to the deck's subject: vocabulary decks get term/definition pairs, language decks get word/translation pairs, conceptual decks get question/answer pairs
- Front must be concise (a term, word, or short question)
- Back must be a concise, self-contained answer
- No two cards may cover the same fact

Examples of good cards:
{"front":"Mitochondria","back":"Organelle that produces the cell's energy (ATP)"}
{"front":"Bonjour","back":"Hello"}
{"front":"What year did World War II end?","back":"1945"}

`)

	b.WriteString(`CRITICAL: Return ONLY a raw JSON object of this exact shape:
{"cards":[{"front":"...","back":"..."}]}
No markdown fences, no preamble, no prose before or after the JSON.
`)

	return b.String()
}
