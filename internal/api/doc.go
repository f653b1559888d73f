// Package api adapts HTTP requests to the quiz service. Handlers decode and
// validate JSON payloads, call the service and map its errors to status codes
// with sanitized messages.
package api
