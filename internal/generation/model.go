package generation

import "context"

// TextModel is the boundary to the generative-language service. Given a prompt
// and an output budget it returns the raw text of the model's reply.
//
// Implementations report transport and service failures as errors wrapping
// ErrUpstreamUnavailable (or ErrContentBlocked) so callers can classify them.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// TextModelFunc adapts an ordinary function to the TextModel interface.
type TextModelFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

// GenerateText calls f(ctx, prompt, maxTokens).
func (f TextModelFunc) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}
