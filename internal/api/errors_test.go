package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/phrazzld/vocab-drill/internal/service"
	"github.com/phrazzld/vocab-drill/internal/service/auth"
	"github.com/phrazzld/vocab-drill/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{service.ErrNotOwned, http.StatusForbidden},
		{store.ErrDeckNotFound, http.StatusNotFound},
		{service.ErrNoActiveQuiz, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", quiz.ErrInvalidState), http.StatusConflict},
		{quiz.ErrNoWords, http.StatusUnprocessableEntity},
		{quiz.ErrEmptyAnswer, http.StatusBadRequest},
		{fmt.Errorf("%w: %q", domain.ErrInvalidDirection, "x"), http.StatusBadRequest},
		{fmt.Errorf("%w: upstream", generation.ErrGenerationFailed), http.StatusBadGateway},
		{&service.ServiceError{Operation: "start_quiz", Err: store.ErrPersistenceFailed}, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_HidesDetails(t *testing.T) {
	err := &service.ServiceError{
		Operation: "start_quiz",
		Message:   "failed to list deck words",
		Err:       errors.New("pq: relation \"words\" does not exist"),
	}
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(err))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	type payload struct {
		Direction string `validate:"required,oneof=source_to_target target_to_source"`
	}
	err := validator.New().Struct(payload{Direction: "up"})
	assert.Equal(t, "Invalid direction: invalid value", SanitizeValidationError(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
