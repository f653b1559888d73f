// Package gemini implements generation.TextModel on top of Google's Gemini API.
//
// This package is an infrastructure adapter: it knows how to authenticate,
// shape requests and read replies from the google.golang.org/genai client, and
// nothing about sentences or grading.
//
// Key behaviors:
//
// 1. Retries:
//   - Transient failures (transport errors, HTTP 429 and 5xx) are retried with
//     exponential backoff and jitter up to LLMConfig.MaxRetries times
//   - Safety blocks and empty replies are returned immediately
//
// 2. Rate limiting:
//   - Outgoing calls pass through a golang.org/x/time/rate token bucket sized
//     from LLMConfig.RequestsPerMinute
//
// 3. Error classification:
//   - Failures wrap generation.ErrUpstreamUnavailable or
//     generation.ErrContentBlocked so callers never see genai types
package gemini
