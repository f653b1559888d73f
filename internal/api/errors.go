package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/vocab-drill/internal/api/shared"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/phrazzld/vocab-drill/internal/service"
	"github.com/phrazzld/vocab-drill/internal/service/auth"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// errInvalidPathParam is returned for a missing or malformed path UUID.
var errInvalidPathParam = errors.New("invalid path parameter")

// MapErrorToStatusCode maps an error to the HTTP status code reported to the
// client.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, service.ErrNoActiveQuiz):
		return http.StatusNotFound

	case errors.Is(err, service.ErrQuizInProgress),
		errors.Is(err, quiz.ErrInvalidState),
		errors.Is(err, quiz.ErrBusy),
		errors.Is(err, quiz.ErrGradingInProgress):
		return http.StatusConflict

	case errors.Is(err, quiz.ErrNoWords),
		errors.Is(err, generation.ErrNoWords):
		return http.StatusUnprocessableEntity

	case errors.Is(err, quiz.ErrEmptyAnswer),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, errInvalidPathParam),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that leaks no
// internal detail.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this deck"
	case errors.Is(err, service.ErrDeckNotFound), errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, service.ErrNoActiveQuiz):
		return "No active quiz"
	case errors.Is(err, service.ErrQuizInProgress):
		return "A quiz is already in progress; finish or reset it first"
	case errors.Is(err, quiz.ErrGradingInProgress):
		return "Your previous answer is still being graded"
	case errors.Is(err, quiz.ErrBusy):
		return "The quiz is busy; try again shortly"
	case errors.Is(err, quiz.ErrInvalidState):
		return "That action is not available right now"
	case errors.Is(err, quiz.ErrNoWords), errors.Is(err, generation.ErrNoWords):
		return "The deck has no words to quiz"
	case errors.Is(err, quiz.ErrEmptyAnswer):
		return "Answer cannot be empty"
	case errors.Is(err, domain.ErrInvalidDirection):
		return "Invalid direction"
	case errors.Is(err, errInvalidPathParam):
		return "Invalid ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, generation.ErrGenerationFailed):
		return "Could not generate quiz sentences. Please try again."
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. A non-empty message
// replaces the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}

// SanitizeValidationError turns a validator error into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}
