package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/events"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/redact"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// Defaults applied to zero-valued Settings.
const (
	DefaultQuestionCount  = 5
	MaxQuestionCount      = 20
	DefaultPersistBackoff = 200 * time.Millisecond
)

// QuestionCountOptions are the counts offered to learners.
var QuestionCountOptions = []int{3, 5, 10, 15, MaxQuestionCount}

// SentenceGenerator produces one question per selected word.
type SentenceGenerator interface {
	Generate(ctx context.Context, req generation.SentenceRequest) ([]domain.GeneratedQuestion, error)
}

// Grader grades one answer. It always yields an outcome.
type Grader interface {
	Grade(ctx context.Context, req generation.GradeRequest) domain.GradeOutcome
}

// Settings tune a controller. Zero values select the defaults.
type Settings struct {
	DefaultQuestionCount int
	MaxQuestionCount     int

	// PersistRetries is the number of extra attempts per persistence write.
	PersistRetries int
	PersistBackoff time.Duration

	// Rand drives word selection; nil seeds from the clock.
	Rand *rand.Rand
}

// Dependencies are the collaborators of a controller. Emitter and Logger may
// be nil.
type Dependencies struct {
	Generator SentenceGenerator
	Grader    Grader
	Store     store.SessionStore
	Emitter   events.EventEmitter
	Logger    *slog.Logger
	Settings  Settings
}

// StartOptions configure a new session.
type StartOptions struct {
	Direction domain.Direction

	// QuestionCount is clamped to [1, min(deck size, MaxQuestionCount)].
	// Zero selects the default count.
	QuestionCount int
}

// Controller drives one learner's quiz over one deck. It is safe for
// concurrent use; external calls happen outside the lock while the state
// records that they are in flight.
type Controller struct {
	userID uuid.UUID
	deck   domain.Deck
	words  []domain.Word

	generator SentenceGenerator
	grader    Grader
	store     store.SessionStore
	emitter   events.EventEmitter
	logger    *slog.Logger
	settings  Settings
	selector  *Selector
	now       func() time.Time

	mu               sync.Mutex
	state            State
	busy             bool
	direction        domain.Direction
	session          *domain.QuizSession
	sessionPersisted bool
	questions        []domain.GeneratedQuestion
	index            int
	history          []domain.AnswerRecord
	lastOutcome      *domain.GradeOutcome
	summary          *Summary
	lastErr          error
}

// NewController creates a controller in the configuring state for userID
// quizzing over deck's words.
func NewController(userID uuid.UUID, deck *domain.Deck, words []domain.Word, deps Dependencies) (*Controller, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if deck == nil {
		return nil, fmt.Errorf("deck cannot be nil")
	}
	if deps.Generator == nil || deps.Grader == nil || deps.Store == nil {
		return nil, fmt.Errorf("generator, grader and store are required")
	}
	if len(dedupe(words)) == 0 {
		return nil, ErrNoWords
	}

	settings := deps.Settings
	if settings.MaxQuestionCount <= 0 {
		settings.MaxQuestionCount = MaxQuestionCount
	}
	if settings.DefaultQuestionCount <= 0 {
		settings.DefaultQuestionCount = DefaultQuestionCount
	}
	if settings.PersistRetries < 0 {
		settings.PersistRetries = 0
	}
	if settings.PersistBackoff <= 0 {
		settings.PersistBackoff = DefaultPersistBackoff
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		userID:    userID,
		deck:      *deck,
		words:     append([]domain.Word(nil), words...),
		generator: deps.Generator,
		grader:    deps.Grader,
		store:     deps.Store,
		emitter:   deps.Emitter,
		logger: log.With(
			slog.String("component", "quiz_controller"),
			slog.String("user_id", userID.String()),
			slog.String("deck_id", deck.ID.String())),
		settings: settings,
		selector: NewSelector(settings.Rand),
		now:      func() time.Time { return time.Now().UTC() },
		state:    StateConfiguring,
	}, nil
}

// DeckID returns the ID of the deck this controller quizzes over.
func (c *Controller) DeckID() uuid.UUID {
	return c.deck.ID
}

// clampCount resolves a requested question count.
func (c *Controller) clampCount(requested int) int {
	n := requested
	if n == 0 {
		n = c.settings.DefaultQuestionCount
	}
	if n < 1 {
		n = 1
	}
	if n > c.settings.MaxQuestionCount {
		n = c.settings.MaxQuestionCount
	}
	return n
}

// Start selects words, generates the questions and opens a new session.
// On generation failure the controller returns to configuring and nothing is
// persisted.
func (c *Controller) Start(ctx context.Context, opts StartOptions) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if !opts.Direction.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDirection, opts.Direction)
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.state != StateConfiguring {
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidState, c.state)
	}
	selected, err := c.selector.Select(c.words, c.clampCount(opts.QuestionCount))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = StateGenerating
	c.busy = true
	c.lastErr = nil
	c.mu.Unlock()

	log.InfoContext(ctx, "generating quiz questions",
		slog.Int("question_count", len(selected)),
		slog.String("direction", string(opts.Direction)))

	questions, err := c.generator.Generate(ctx, generation.SentenceRequest{
		Words:          selected,
		SourceLanguage: c.deck.SourceLanguage,
		TargetLanguage: c.deck.TargetLanguage,
		Direction:      opts.Direction,
	})
	if err == nil && len(questions) == 0 {
		err = fmt.Errorf("%w: no questions generated", generation.ErrGenerationFailed)
	}
	if err != nil {
		c.mu.Lock()
		c.state = StateConfiguring
		c.busy = false
		c.lastErr = err
		c.mu.Unlock()

		log.WarnContext(ctx, "quiz generation failed", slog.Any("error", err))
		c.emit(ctx, events.GenerationFailed, uuid.Nil, events.GenerationFailedPayload{Reason: err.Error()})
		return err
	}

	session, err := domain.NewQuizSession(c.userID, c.deck.ID, opts.Direction, len(questions))
	if err != nil {
		c.mu.Lock()
		c.state = StateConfiguring
		c.busy = false
		c.lastErr = err
		c.mu.Unlock()
		return fmt.Errorf("failed to create quiz session: %w", err)
	}

	persisted := c.persist(ctx, "create_session", session.ID, func(ctx context.Context) error {
		return c.store.CreateSession(ctx, session)
	})

	c.mu.Lock()
	c.direction = opts.Direction
	c.session = session
	c.sessionPersisted = persisted
	c.questions = questions
	c.index = 0
	c.history = nil
	c.lastOutcome = nil
	c.summary = nil
	c.state = StateActive
	c.busy = false
	c.mu.Unlock()

	log.InfoContext(ctx, "quiz session started",
		slog.String("session_id", session.ID.String()),
		slog.Int("total_questions", len(questions)),
		slog.Bool("persisted", persisted))
	c.emit(ctx, events.SessionStarted, session.ID, nil)
	return nil
}

// SubmitAnswer grades answer for the current question. Only one answer per
// question is accepted; a submission while grading is rejected without
// creating a record.
func (c *Controller) SubmitAnswer(ctx context.Context, answer string) (domain.GradeOutcome, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	c.mu.Lock()
	if c.state == StateGrading {
		c.mu.Unlock()
		return domain.GradeOutcome{}, ErrGradingInProgress
	}
	if c.state != StateActive {
		c.mu.Unlock()
		return domain.GradeOutcome{}, fmt.Errorf("%w: cannot answer in %s", ErrInvalidState, c.state)
	}
	if strings.TrimSpace(answer) == "" {
		c.mu.Unlock()
		return domain.GradeOutcome{}, ErrEmptyAnswer
	}
	c.state = StateGrading
	c.busy = true
	index := c.index
	question := c.questions[index]
	session := c.session
	persisted := c.sessionPersisted
	direction := c.direction
	c.mu.Unlock()

	outcome := c.grader.Grade(ctx, generation.GradeRequest{
		Sentence:           question.Sentence,
		CorrectTranslation: question.Translation,
		UserAnswer:         answer,
		SentenceLanguage:   direction.SentenceLanguage(&c.deck),
		AnswerLanguage:     direction.AnswerLanguage(&c.deck),
	})

	record := domain.NewAnswerRecord(session.ID, question.WordID, answer, outcome)
	if persisted {
		c.persist(ctx, "record_answer", session.ID, func(ctx context.Context) error {
			return c.store.RecordAnswer(ctx, record)
		})
	}

	c.mu.Lock()
	c.history = append(c.history, *record)
	c.lastOutcome = &outcome
	c.state = StateAnswered
	c.busy = false
	c.mu.Unlock()

	log.InfoContext(ctx, "answer graded",
		slog.String("session_id", session.ID.String()),
		slog.Int("question_index", index),
		slog.Int("score", outcome.Score),
		slog.Bool("is_correct", outcome.IsCorrect),
		slog.Bool("fallback", outcome.Fallback))
	c.emit(ctx, events.AnswerGraded, session.ID, events.AnswerGradedPayload{
		QuestionIndex: index,
		Score:         outcome.Score,
		IsCorrect:     outcome.IsCorrect,
		Fallback:      outcome.Fallback,
	})
	return outcome, nil
}

// Advance moves past an answered question. After the last question the
// session is finalized, persisted and summarized.
func (c *Controller) Advance(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	c.mu.Lock()
	if c.state != StateAnswered {
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot advance from %s", ErrInvalidState, c.state)
	}
	if c.index+1 < len(c.questions) {
		c.index++
		c.lastOutcome = nil
		c.state = StateActive
		c.mu.Unlock()
		return nil
	}

	summary := Summarize(c.history, len(c.questions))
	session := c.session
	persisted := c.sessionPersisted
	if err := session.Complete(summary.Correct, c.now()); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to complete quiz session: %w", err)
	}
	completedAt := *session.CompletedAt
	c.summary = &summary
	c.state = StateComplete
	c.busy = true
	c.mu.Unlock()

	if persisted {
		c.persist(ctx, "complete_session", session.ID, func(ctx context.Context) error {
			return c.store.CompleteSession(ctx, session.ID, summary.Correct, completedAt)
		})
	}

	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()

	log.InfoContext(ctx, "quiz session completed",
		slog.String("session_id", session.ID.String()),
		slog.Int("correct", summary.Correct),
		slog.Int("total", summary.Total),
		slog.Int("percentage", summary.Percentage))
	c.emit(ctx, events.SessionCompleted, session.ID, events.SessionCompletedPayload{
		CorrectAnswers: summary.Correct,
		TotalQuestions: summary.Total,
		Percentage:     summary.Percentage,
	})
	return nil
}

// Reset discards the current session and returns to configuring. The next
// Start opens a fresh session; an unfinished session stays incomplete.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}
	c.state = StateConfiguring
	c.direction = ""
	c.session = nil
	c.sessionPersisted = false
	c.questions = nil
	c.index = 0
	c.history = nil
	c.lastOutcome = nil
	c.summary = nil
	c.lastErr = nil
	return nil
}

// View returns a snapshot of the controller.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:          c.state,
		DeckID:         c.deck.ID,
		Direction:      c.direction,
		QuestionIndex:  c.index,
		TotalQuestions: len(c.questions),
	}
	if c.session != nil {
		v.SessionID = c.session.ID
	}
	if c.direction != "" {
		v.SentenceLanguage = c.direction.SentenceLanguage(&c.deck)
		v.AnswerLanguage = c.direction.AnswerLanguage(&c.deck)
		v.RightToLeft = domain.IsRightToLeft(v.SentenceLanguage)
	}
	for _, a := range c.history {
		if a.IsCorrect {
			v.CorrectSoFar++
		}
	}

	switch c.state {
	case StateActive, StateGrading, StateAnswered:
		q := c.questions[c.index]
		qv := &QuestionView{WordID: q.WordID, OriginalWord: q.OriginalWord, Sentence: q.Sentence}
		if c.state == StateAnswered {
			qv.Translation = q.Translation
		}
		v.Question = qv
	}
	if c.lastOutcome != nil {
		outcome := *c.lastOutcome
		v.LastOutcome = &outcome
	}
	if c.summary != nil {
		summary := *c.summary
		v.Summary = &summary
	}
	if c.lastErr != nil {
		v.LastError = redact.Error(c.lastErr)
	}
	return v
}

// History returns a copy of the graded answers so far, in question order.
func (c *Controller) History() []domain.AnswerRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.AnswerRecord(nil), c.history...)
}

// persist runs write with retries. Failures are logged and emitted but never
// returned: losing a write must not block the learner.
func (c *Controller) persist(ctx context.Context, operation string, sessionID uuid.UUID, write func(context.Context) error) bool {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var err error
	for attempt := 0; attempt <= c.settings.PersistRetries; attempt++ {
		if attempt > 0 {
			if waitErr := wait(ctx, c.settings.PersistBackoff*time.Duration(attempt)); waitErr != nil {
				err = errors.Join(err, waitErr)
				break
			}
		}
		if err = write(ctx); err == nil {
			return true
		}
		// A retry that finds the session completed means an earlier attempt
		// reached the database even though its reply was lost.
		if attempt > 0 && errors.Is(err, store.ErrSessionAlreadyCompleted) {
			log.InfoContext(ctx, "persistence write already applied by an earlier attempt",
				slog.String("operation", operation),
				slog.String("session_id", sessionID.String()))
			return true
		}
		if errors.Is(err, store.ErrSessionAlreadyCompleted) || errors.Is(err, store.ErrInvalidEntity) {
			break
		}
		log.WarnContext(ctx, "persistence write failed",
			slog.String("operation", operation),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))
	}

	log.ErrorContext(ctx, "giving up on persistence write",
		slog.String("operation", operation),
		slog.String("session_id", sessionID.String()),
		slog.Any("error", err))
	c.emit(ctx, events.PersistenceFailed, sessionID, events.PersistenceFailedPayload{
		Operation: operation,
		Error:     err.Error(),
	})
	return false
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) emit(ctx context.Context, eventType string, sessionID uuid.UUID, payload any) {
	if c.emitter == nil {
		return
	}
	event, err := events.NewSessionEvent(eventType, sessionID, c.userID, payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to build session event", slog.String("type", eventType), slog.Any("error", err))
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.WarnContext(ctx, "session event handler failed", slog.String("type", eventType), slog.Any("error", err))
	}
}
