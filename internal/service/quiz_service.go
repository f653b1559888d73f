package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// QuizService runs sentence-translation quizzes. Each learner has at most one
// quiz at a time.
type QuizService interface {
	// StartQuiz opens a quiz over one of the learner's decks. It fails with
	// ErrQuizInProgress while another quiz is unfinished.
	StartQuiz(ctx context.Context, userID, deckID uuid.UUID, opts quiz.StartOptions) (quiz.View, error)

	// CurrentQuiz returns the learner's quiz.
	CurrentQuiz(ctx context.Context, userID uuid.UUID) (quiz.View, error)

	// SubmitAnswer grades an answer to the current question.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, answer string) (quiz.View, error)

	// NextQuestion moves past the answered question, completing the quiz
	// after the last one.
	NextQuestion(ctx context.Context, userID uuid.UUID) (quiz.View, error)

	// ResetQuiz abandons the current quiz so a new one can be started.
	ResetQuiz(ctx context.Context, userID uuid.UUID) (quiz.View, error)
}

type quizServiceImpl struct {
	decks  store.DeckStore
	deps   quiz.Dependencies
	logger *slog.Logger

	mu          sync.Mutex
	controllers map[uuid.UUID]*quiz.Controller
}

var _ QuizService = (*quizServiceImpl)(nil)

// NewQuizService creates a QuizService. deps is the template for every
// controller the service creates.
func NewQuizService(decks store.DeckStore, deps quiz.Dependencies, log *slog.Logger) (QuizService, error) {
	if decks == nil {
		return nil, fmt.Errorf("deck store cannot be nil")
	}
	if deps.Generator == nil || deps.Grader == nil || deps.Store == nil {
		return nil, fmt.Errorf("generator, grader and session store are required")
	}
	if log == nil {
		log = slog.Default()
	}
	if deps.Logger == nil {
		deps.Logger = log
	}
	return &quizServiceImpl{
		decks:       decks,
		deps:        deps,
		logger:      log.With(slog.String("component", "quiz_service")),
		controllers: make(map[uuid.UUID]*quiz.Controller),
	}, nil
}

func inProgress(state quiz.State) bool {
	switch state {
	case quiz.StateGenerating, quiz.StateActive, quiz.StateGrading, quiz.StateAnswered:
		return true
	}
	return false
}

// StartQuiz implements QuizService.
func (s *quizServiceImpl) StartQuiz(
	ctx context.Context,
	userID, deckID uuid.UUID,
	opts quiz.StartOptions,
) (quiz.View, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.hasQuizInProgress(userID) {
		return quiz.View{}, ErrQuizInProgress
	}

	deck, err := s.decks.GetDeck(ctx, deckID)
	if err != nil {
		return quiz.View{}, NewServiceError("start_quiz", "failed to load deck", err)
	}
	if !deck.OwnedBy(userID) {
		log.WarnContext(ctx, "learner requested a deck they do not own",
			slog.String("user_id", userID.String()),
			slog.String("deck_id", deckID.String()))
		return quiz.View{}, ErrNotOwned
	}

	words, err := s.decks.ListWords(ctx, deckID)
	if err != nil {
		return quiz.View{}, NewServiceError("start_quiz", "failed to list deck words", err)
	}
	if len(words) == 0 {
		return quiz.View{}, quiz.ErrNoWords
	}

	ctrl, err := quiz.NewController(userID, deck, words, s.deps)
	if err != nil {
		return quiz.View{}, NewServiceError("start_quiz", "failed to create quiz controller", err)
	}

	s.mu.Lock()
	if existing, ok := s.controllers[userID]; ok && inProgress(existing.View().State) {
		s.mu.Unlock()
		return quiz.View{}, ErrQuizInProgress
	}
	s.controllers[userID] = ctrl
	s.mu.Unlock()

	if err := ctrl.Start(ctx, opts); err != nil {
		return ctrl.View(), err
	}
	return ctrl.View(), nil
}

func (s *quizServiceImpl) hasQuizInProgress(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.controllers[userID]
	return ok && inProgress(ctrl.View().State)
}

func (s *quizServiceImpl) controller(userID uuid.UUID) (*quiz.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.controllers[userID]
	if !ok {
		return nil, ErrNoActiveQuiz
	}
	return ctrl, nil
}

// CurrentQuiz implements QuizService.
func (s *quizServiceImpl) CurrentQuiz(_ context.Context, userID uuid.UUID) (quiz.View, error) {
	ctrl, err := s.controller(userID)
	if err != nil {
		return quiz.View{}, err
	}
	return ctrl.View(), nil
}

// SubmitAnswer implements QuizService.
func (s *quizServiceImpl) SubmitAnswer(ctx context.Context, userID uuid.UUID, answer string) (quiz.View, error) {
	ctrl, err := s.controller(userID)
	if err != nil {
		return quiz.View{}, err
	}
	if _, err := ctrl.SubmitAnswer(ctx, answer); err != nil {
		return ctrl.View(), err
	}
	return ctrl.View(), nil
}

// NextQuestion implements QuizService.
func (s *quizServiceImpl) NextQuestion(ctx context.Context, userID uuid.UUID) (quiz.View, error) {
	ctrl, err := s.controller(userID)
	if err != nil {
		return quiz.View{}, err
	}
	if err := ctrl.Advance(ctx); err != nil {
		return ctrl.View(), err
	}
	return ctrl.View(), nil
}

// ResetQuiz implements QuizService.
func (s *quizServiceImpl) ResetQuiz(ctx context.Context, userID uuid.UUID) (quiz.View, error) {
	ctrl, err := s.controller(userID)
	if err != nil {
		return quiz.View{}, err
	}
	if err := ctrl.Reset(); err != nil {
		return ctrl.View(), err
	}
	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "quiz reset",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", ctrl.DeckID().String()))
	return ctrl.View(), nil
}
