package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"flashdeck-backend/internal/models"
)

// The generation model has no structured-output mode, so its replies range
// from clean JSON to fenced, comma-mangled fragments. ParseCards runs a
// cascade of recovery strategies ordered from strict to permissive; the
// first one that yields any cards wins. Structurally-sound parses are
// preferred because the final positional regex pairing can misalign fronts
// and backs when their counts differ.

var (
	ErrNoCardArray  = errors.New("no card array found in model response")
	ErrNoValidCards = errors.New("no valid cards found in model response")
)

var (
	codeFence       = regexp.MustCompile("```[a-zA-Z]*")
	trailingComma   = regexp.MustCompile(`,\s*([}\]])`)
	missingComma    = regexp.MustCompile(`}\s*{`)
	lineComment     = regexp.MustCompile(`(?m)^\s*//[^\n]*`)
	blockComment    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cardObject      = regexp.MustCompile(`\{[^{}]*"front"\s*:\s*"(?:[^"\\]|\\.)*"[^{}]*"back"\s*:\s*"(?:[^"\\]|\\.)*"[^{}]*\}`)
	frontValue      = regexp.MustCompile(`"front"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	backValue       = regexp.MustCompile(`"back"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	jsonStringEscapes = strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t", `\\`, `\`)
)

// ParseCards recovers a list of front/back pairs from raw model output.
// It fails only when every strategy is exhausted.
func ParseCards(raw string) ([]models.GeneratedCard, error) {
	arraySpan, arrayFound := extractArraySpan(raw)

	cards := tryFullObject(raw)
	if len(cards) == 0 && arrayFound {
		cards = tryArrayParse(arraySpan)
	}
	if len(cards) == 0 && arrayFound {
		cards = tryObjectExtraction(arraySpan)
	}
	if len(cards) == 0 {
		cards = tryGlobalPairing(raw)
	}

	var valid []models.GeneratedCard
	for _, c := range cards {
		if c.Front != "" && c.Back != "" {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		if !arrayFound && len(cards) == 0 {
			return nil, ErrNoCardArray
		}
		return nil, ErrNoValidCards
	}
	return valid, nil
}

// repairJSON fixes the malformations the model most often produces:
// comments, trailing commas, and missing commas between adjacent objects.
func repairJSON(text string) string {
	text = blockComment.ReplaceAllString(text, "")
	text = lineComment.ReplaceAllString(text, "")
	text = trailingComma.ReplaceAllString(text, "$1")
	text = missingComma.ReplaceAllString(text, "},{")
	return text
}

// tryFullObject strips fences and surrounding prose, repairs the text, and
// attempts a strict parse of a {"cards":[...]} object.
func tryFullObject(raw string) []models.GeneratedCard {
	text := codeFence.ReplaceAllString(raw, "")

	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start < 0 || end <= start {
		return nil
	}
	text = repairJSON(text[start : end+1])

	var payload struct {
		Cards []models.GeneratedCard `json:"cards"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil
	}
	return payload.Cards
}

// extractArraySpan locates the outermost [...] span in the raw text.
func extractArraySpan(raw string) (string, bool) {
	text := codeFence.ReplaceAllString(raw, "")
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// tryArrayParse repairs the array span and attempts a strict array parse.
func tryArrayParse(span string) []models.GeneratedCard {
	var cards []models.GeneratedCard
	if err := json.Unmarshal([]byte(repairJSON(span)), &cards); err != nil {
		return nil
	}
	return cards
}

// tryObjectExtraction scans the span for brace-delimited objects carrying
// both keys, parsing each in isolation so one mangled object cannot sink
// its siblings. Objects that still fail to parse fall back to direct
// regex capture of the two values.
func tryObjectExtraction(span string) []models.GeneratedCard {
	var cards []models.GeneratedCard
	for _, match := range cardObject.FindAllString(span, -1) {
		candidate := trailingComma.ReplaceAllString(match, "$1")

		var card models.GeneratedCard
		if err := json.Unmarshal([]byte(candidate), &card); err == nil {
			cards = append(cards, card)
			continue
		}

		front := frontValue.FindStringSubmatch(candidate)
		back := backValue.FindStringSubmatch(candidate)
		if front != nil && back != nil {
			cards = append(cards, models.GeneratedCard{
				Front: jsonStringEscapes.Replace(front[1]),
				Back:  jsonStringEscapes.Replace(back[1]),
			})
		}
	}
	return cards
}

// tryGlobalPairing is the last resort: collect every front and back value
// anywhere in the raw text, in document order, and pair them positionally
// up to the shorter list.
func tryGlobalPairing(raw string) []models.GeneratedCard {
	fronts := frontValue.FindAllStringSubmatch(raw, -1)
	backs := backValue.FindAllStringSubmatch(raw, -1)

	n := len(fronts)
	if len(backs) < n {
		n = len(backs)
	}

	var cards []models.GeneratedCard
	for i := 0; i < n; i++ {
		cards = append(cards, models.GeneratedCard{
			Front: jsonStringEscapes.Replace(fronts[i][1]),
			Back:  jsonStringEscapes.Replace(backs[i][1]),
		})
	}
	return cards
}
