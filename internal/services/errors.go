package services

import "net/http"

// PipelineError is a terminal, user-visible failure of the generation
// pipeline. Message is always safe to return to the caller; internal
// diagnostics stay in the server log.
type PipelineError struct {
	Code    string
	Message string
	Status  int
}

func (e *PipelineError) Error() string {
	return e.Message
}

var (
	ErrUnauthenticated = &PipelineError{
		Code:    "UNAUTHENTICATED",
		Message: "You must be signed in to generate flashcards.",
		Status:  http.StatusUnauthorized,
	}
	ErrNotEntitled = &PipelineError{
		Code:    "NOT_ENTITLED",
		Message: "AI flashcard generation is not available on your plan.",
		Status:  http.StatusForbidden,
	}
	ErrDeckNotFound = &PipelineError{
		Code:    "DECK_NOT_FOUND",
		Message: "Deck not found.",
		Status:  http.StatusNotFound,
	}
	ErrIncompleteMetadata = &PipelineError{
		Code:    "INCOMPLETE_METADATA",
		Message: "Deck must have both a title and description to generate cards with AI.",
		Status:  http.StatusBadRequest,
	}
	ErrContentRejected = &PipelineError{
		Code:    "CONTENT_REJECTED",
		Message: "Deck title or description contains inappropriate content.",
		Status:  http.StatusBadRequest,
	}
	ErrQuotaExceeded = &PipelineError{
		Code:    "QUOTA_EXCEEDED",
		Message: "You have reached your daily AI generation limit. Try again tomorrow.",
		Status:  http.StatusTooManyRequests,
	}
	ErrModelUnavailable = &PipelineError{
		Code:    "MODEL_UNAVAILABLE",
		Message: "The AI service is currently unavailable. Please try again later.",
		Status:  http.StatusBadGateway,
	}
	ErrUnparsableResponse = &PipelineError{
		Code:    "UNPARSABLE_RESPONSE",
		Message: "The AI returned an unusable response. Please try again.",
		Status:  http.StatusBadGateway,
	}
	ErrSchemaInvalid = &PipelineError{
		Code:    "SCHEMA_INVALID",
		Message: "The AI returned cards in an unexpected format. Please try again.",
		Status:  http.StatusBadGateway,
	}
	ErrAllOutputRejected = &PipelineError{
		Code:    "ALL_OUTPUT_REJECTED",
		Message: "All generated cards were rejected by the content filter. Please try again.",
		Status:  http.StatusBadGateway,
	}
)
