package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed wraps every failure of a sentence-generation batch.
	ErrGenerationFailed = errors.New("failed to generate sentences")

	// ErrUpstreamUnavailable is returned when the generative-language service
	// could not be reached or reported a failure.
	ErrUpstreamUnavailable = errors.New("generative-language service unavailable")

	// ErrUpstreamMalformed is returned when the service response contains no
	// parsable JSON payload.
	ErrUpstreamMalformed = errors.New("malformed response from generative-language service")

	// ErrValidationFailed is returned when a parsed payload does not match the
	// request, such as the wrong number of sentences or an out-of-range index.
	ErrValidationFailed = errors.New("generated content failed validation")

	// ErrContentBlocked is returned when the service refuses to answer due to
	// its safety filters.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error calling generative-language service")

	// ErrInvalidConfig is returned when a generator or client configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrNoWords is returned when a batch is requested for an empty word list.
	ErrNoWords = errors.New("no words to generate sentences for")
)
