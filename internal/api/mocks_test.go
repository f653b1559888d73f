package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/stretchr/testify/mock"
)

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) StartQuiz(ctx context.Context, userID, deckID uuid.UUID, opts quiz.StartOptions) (quiz.View, error) {
	args := m.Called(ctx, userID, deckID, opts)
	return args.Get(0).(quiz.View), args.Error(1)
}

func (m *MockQuizService) CurrentQuiz(ctx context.Context, userID uuid.UUID) (quiz.View, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(quiz.View), args.Error(1)
}

func (m *MockQuizService) SubmitAnswer(ctx context.Context, userID uuid.UUID, answer string) (quiz.View, error) {
	args := m.Called(ctx, userID, answer)
	return args.Get(0).(quiz.View), args.Error(1)
}

func (m *MockQuizService) NextQuestion(ctx context.Context, userID uuid.UUID) (quiz.View, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(quiz.View), args.Error(1)
}

func (m *MockQuizService) ResetQuiz(ctx context.Context, userID uuid.UUID) (quiz.View, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(quiz.View), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req generation.SentenceRequest) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}

type MockGrader struct {
	mock.Mock
}

func (m *MockGrader) Grade(ctx context.Context, req generation.GradeRequest) domain.GradeOutcome {
	return m.Called(ctx, req).Get(0).(domain.GradeOutcome)
}
