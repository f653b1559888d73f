package quiz

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/events"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctrl      *Controller
	store     *MockSessionStore
	generator *echoGenerator
	grader    *scriptedGrader
	emitter   *recordingEmitter
	deck      *domain.Deck
	words     []domain.Word
}

func newFixture(t *testing.T, wordCount int, persistRetries int) *fixture {
	t.Helper()

	deck := &domain.Deck{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Name:           "Quranic Arabic",
		SourceLanguage: "Arabic",
		TargetLanguage: "English",
	}
	words := makeWords(wordCount)
	for i := range words {
		words[i].DeckID = deck.ID
	}

	f := &fixture{
		store:     &MockSessionStore{},
		generator: &echoGenerator{},
		grader:    &scriptedGrader{},
		emitter:   &recordingEmitter{},
		deck:      deck,
		words:     words,
	}

	ctrl, err := NewController(deck.UserID, deck, words, Dependencies{
		Generator: f.generator,
		Grader:    f.grader,
		Store:     f.store,
		Emitter:   f.emitter,
		Settings: Settings{
			PersistRetries: persistRetries,
			PersistBackoff: time.Millisecond,
			Rand:           rand.New(rand.NewSource(1)),
		},
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	return f
}

func outcome(score float64) domain.GradeOutcome {
	return domain.NewGradeOutcome(score, "feedback", "")
}

func TestController_FullSessionPersistsTotals(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 1)
	ctx := context.Background()

	// Questions 1, 3 and 5 are answered correctly.
	f.grader.outcomes = []domain.GradeOutcome{outcome(90), outcome(20), outcome(70), outcome(69), outcome(100)}

	var created *domain.QuizSession
	f.store.On("CreateSession", mock.Anything, mock.AnythingOfType("*domain.QuizSession")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.QuizSession) }).
		Return(nil).Once()
	f.store.On("RecordAnswer", mock.Anything, mock.AnythingOfType("*domain.AnswerRecord")).Return(nil).Times(5)
	f.store.On("CompleteSession", mock.Anything, mock.AnythingOfType("uuid.UUID"), 3, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 5}))

	require.NotNil(t, created)
	assert.Equal(t, 5, created.TotalQuestions)
	assert.Equal(t, 0, created.CorrectAnswers)
	assert.Nil(t, created.CompletedAt, "new sessions are stored incomplete")

	for i := 0; i < 5; i++ {
		view := f.ctrl.View()
		require.Equal(t, StateActive, view.State)
		require.Equal(t, i, view.QuestionIndex)
		require.NotNil(t, view.Question)
		assert.Empty(t, view.Question.Translation, "reference translation is hidden until answered")

		_, err := f.ctrl.SubmitAnswer(ctx, "my answer")
		require.NoError(t, err)

		view = f.ctrl.View()
		assert.Equal(t, StateAnswered, view.State)
		assert.NotEmpty(t, view.Question.Translation)
		require.NoError(t, f.ctrl.Advance(ctx))
	}

	view := f.ctrl.View()
	assert.Equal(t, StateComplete, view.State)
	require.NotNil(t, view.Summary)
	assert.Equal(t, Summary{Correct: 3, Total: 5, Percentage: 60, MeanScore: 70}, *view.Summary)

	f.store.AssertExpectations(t)
	f.store.AssertCalled(t, "CompleteSession", mock.Anything, created.ID, 3, mock.AnythingOfType("time.Time"))

	history := f.ctrl.History()
	require.Len(t, history, 5)
	for _, a := range history {
		assert.Equal(t, created.ID, a.SessionID)
	}

	assert.Equal(t, []string{
		events.SessionStarted,
		events.AnswerGraded, events.AnswerGraded, events.AnswerGraded, events.AnswerGraded, events.AnswerGraded,
		events.SessionCompleted,
	}, f.emitter.types())
}

func TestController_QuestionCountIsClamped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		wordCount int
		requested int
		want      int
	}{
		{name: "deck smaller than request", wordCount: 3, requested: 10, want: 3},
		{name: "request above maximum", wordCount: 30, requested: 50, want: MaxQuestionCount},
		{name: "default count", wordCount: 30, requested: 0, want: DefaultQuestionCount},
		{name: "negative request", wordCount: 30, requested: -4, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tc.wordCount, 0)
			f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil)

			require.NoError(t, f.ctrl.Start(context.Background(), StartOptions{
				Direction:     domain.DirectionTargetToSource,
				QuestionCount: tc.requested,
			}))
			assert.Equal(t, tc.want, f.ctrl.View().TotalQuestions)
		})
	}
}

func TestController_GenerationFailureDoesNotPersist(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, 1)
	f.generator.err = errors.Join(generation.ErrGenerationFailed, generation.ErrValidationFailed)

	err := f.ctrl.Start(context.Background(), StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 3})

	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	view := f.ctrl.View()
	assert.Equal(t, StateConfiguring, view.State)
	assert.NotEmpty(t, view.LastError)
	assert.Equal(t, uuid.Nil, view.SessionID)
	f.store.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	assert.Equal(t, []string{events.GenerationFailed}, f.emitter.types())

	// The learner can try again from configuring.
	f.generator.err = nil
	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, f.ctrl.Start(context.Background(), StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 3}))
	assert.Equal(t, StateActive, f.ctrl.View().State)
	assert.Empty(t, f.ctrl.View().LastError)
}

func TestController_PersistenceFailureDoesNotBlockQuiz(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 1)
	ctx := context.Background()

	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Twice()

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 2}))

	for i := 0; i < 2; i++ {
		_, err := f.ctrl.SubmitAnswer(ctx, "answer")
		require.NoError(t, err)
		require.NoError(t, f.ctrl.Advance(ctx))
	}

	assert.Equal(t, StateComplete, f.ctrl.View().State)
	f.store.AssertNumberOfCalls(t, "CreateSession", 2)
	// Later writes for a session that was never stored are skipped.
	f.store.AssertNotCalled(t, "RecordAnswer", mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, f.emitter.types(), events.PersistenceFailed)
}

func TestController_AnswerWriteRetried(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 1)
	ctx := context.Background()

	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil).Once()
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 2}))
	_, err := f.ctrl.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)

	f.store.AssertNumberOfCalls(t, "RecordAnswer", 2)
	assert.NotContains(t, f.emitter.types(), events.PersistenceFailed)
}

func TestController_CompletionRetryFindsSessionCompleted(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 1)
	ctx := context.Background()

	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil).Once()
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(nil)
	f.store.On("CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset by peer")).Once()
	f.store.On("CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(store.ErrSessionAlreadyCompleted).Once()

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 1}))
	_, err := f.ctrl.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)
	require.NoError(t, f.ctrl.Advance(ctx))

	assert.Equal(t, StateComplete, f.ctrl.View().State)
	f.store.AssertNumberOfCalls(t, "CompleteSession", 2)
	assert.Equal(t, []string{events.SessionStarted, events.AnswerGraded, events.SessionCompleted}, f.emitter.types())
}

func TestController_CompletionAlreadyCompletedOnFirstAttemptFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 1)
	ctx := context.Background()

	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil).Once()
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(nil)
	f.store.On("CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(store.ErrSessionAlreadyCompleted).Once()

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 1}))
	_, err := f.ctrl.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)
	require.NoError(t, f.ctrl.Advance(ctx))

	f.store.AssertNumberOfCalls(t, "CompleteSession", 1)
	assert.Contains(t, f.emitter.types(), events.PersistenceFailed)
}

func TestController_ResubmissionGuard(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 0)
	ctx := context.Background()
	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil)
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 2}))

	f.grader.gate = make(chan struct{})
	f.grader.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.SubmitAnswer(ctx, "first")
		done <- err
	}()

	<-f.grader.entered
	assert.Equal(t, StateGrading, f.ctrl.View().State)

	_, err := f.ctrl.SubmitAnswer(ctx, "second")
	assert.ErrorIs(t, err, ErrGradingInProgress)
	assert.ErrorIs(t, f.ctrl.Reset(), ErrBusy)
	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrInvalidState)

	close(f.grader.gate)
	require.NoError(t, <-done)

	assert.Len(t, f.ctrl.History(), 1)
	assert.Equal(t, "first", f.ctrl.History()[0].UserAnswer)
	f.store.AssertNumberOfCalls(t, "RecordAnswer", 1)

	// Answered questions accept no further submissions.
	_, err = f.ctrl.SubmitAnswer(ctx, "third")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestController_InvalidTransitions(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 0)
	ctx := context.Background()
	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil)

	_, err := f.ctrl.SubmitAnswer(ctx, "too early")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrInvalidState)
	assert.ErrorIs(t, f.ctrl.Start(ctx, StartOptions{Direction: "sideways"}), domain.ErrInvalidDirection)

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 2}))
	assert.ErrorIs(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget}), ErrInvalidState)

	_, err = f.ctrl.SubmitAnswer(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Equal(t, StateActive, f.ctrl.View().State)
	assert.Empty(t, f.ctrl.History())
}

func TestController_ResetStartsFreshSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 4, 0)
	ctx := context.Background()

	var sessions []uuid.UUID
	f.store.On("CreateSession", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sessions = append(sessions, args.Get(1).(*domain.QuizSession).ID)
		}).Return(nil)
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionSourceToTarget, QuestionCount: 3}))
	_, err := f.ctrl.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)

	require.NoError(t, f.ctrl.Reset())
	view := f.ctrl.View()
	assert.Equal(t, StateConfiguring, view.State)
	assert.Nil(t, view.Question)
	assert.Zero(t, view.CorrectSoFar)
	assert.Empty(t, f.ctrl.History())

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionTargetToSource, QuestionCount: 2}))
	require.Len(t, sessions, 2)
	assert.NotEqual(t, sessions[0], sessions[1])
	assert.Equal(t, domain.DirectionTargetToSource, f.ctrl.View().Direction)
	f.store.AssertNotCalled(t, "CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestController_GradeRequestFollowsDirection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 3, 0)
	ctx := context.Background()
	f.store.On("CreateSession", mock.Anything, mock.Anything).Return(nil)
	f.store.On("RecordAnswer", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.ctrl.Start(ctx, StartOptions{Direction: domain.DirectionTargetToSource, QuestionCount: 1}))
	view := f.ctrl.View()
	assert.Equal(t, "English", view.SentenceLanguage)
	assert.Equal(t, "Arabic", view.AnswerLanguage)
	assert.False(t, view.RightToLeft)

	_, err := f.ctrl.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)

	require.Len(t, f.grader.requests, 1)
	req := f.grader.requests[0]
	assert.Equal(t, "English", req.SentenceLanguage)
	assert.Equal(t, "Arabic", req.AnswerLanguage)
	assert.Equal(t, view.Question.Sentence, req.Sentence)
	assert.Equal(t, "answer", req.UserAnswer)
}

func TestNewController_Validation(t *testing.T) {
	t.Parallel()

	deck := &domain.Deck{ID: uuid.New(), UserID: uuid.New()}
	deps := Dependencies{Generator: &echoGenerator{}, Grader: &scriptedGrader{}, Store: &MockSessionStore{}}

	_, err := NewController(deck.UserID, deck, nil, deps)
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = NewController(uuid.Nil, deck, makeWords(2), deps)
	assert.Error(t, err)

	_, err = NewController(deck.UserID, deck, makeWords(2), Dependencies{})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	history := []domain.AnswerRecord{
		{IsCorrect: true, Score: 100},
		{IsCorrect: false, Score: 33},
		{IsCorrect: true, Score: 71},
	}
	assert.Equal(t, Summary{Correct: 2, Total: 3, Percentage: 67, MeanScore: 68}, Summarize(history, 3))
	assert.Equal(t, Summary{Total: 0}, Summarize(nil, 0))
}
