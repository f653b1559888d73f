package generation

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextModel is a testify mock for TextModel.
type MockTextModel struct {
	mock.Mock
}

func (m *MockTextModel) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

type countingObserver struct {
	reasons []string
}

func (o *countingObserver) GradingFallback(reason string) {
	o.reasons = append(o.reasons, reason)
}
