package gemini

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"
)

// isTransient reports whether err is worth retrying. Context cancellation is
// never transient.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Code >= http.StatusInternalServerError
	}

	// Anything else is a transport-level failure.
	return true
}
