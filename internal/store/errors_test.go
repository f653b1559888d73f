package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		notFound     bool
		duplicate    bool
		updateFailed bool
	}{
		{name: "nil error", err: nil},
		{name: "generic error", err: errors.New("boom")},
		{name: "deck not found", err: ErrDeckNotFound, notFound: true},
		{name: "wrapped session not found", err: fmt.Errorf("complete: %w", ErrSessionNotFound), notFound: true},
		{name: "already completed", err: ErrSessionAlreadyCompleted, updateFailed: true},
		{name: "duplicate", err: fmt.Errorf("insert: %w", ErrDuplicate), duplicate: true},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("deck", "get", "lookup failed", ErrDeckNotFound),
			notFound: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.notFound, IsNotFoundError(tc.err))
			assert.Equal(t, tc.duplicate, IsDuplicateError(tc.err))
			assert.Equal(t, tc.updateFailed, errors.Is(tc.err, ErrUpdateFailed))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("quiz_session", "create", "insert failed", cause)
	assert.Equal(t, "create operation on quiz_session failed: insert failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("deck", "get", "missing", nil)
	assert.Equal(t, "get operation on deck failed: missing", bare.Error())
}
