package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/vocab-drill/internal/api/shared"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/phrazzld/vocab-drill/internal/service"
)

// QuizHandler serves the learner's quiz session.
type QuizHandler struct {
	quizService service.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(quizService service.QuizService, logger *slog.Logger) *QuizHandler {
	if quizService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quizService cannot be nil for QuizHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// StartQuiz handles POST /api/decks/{deckID}/quiz.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req StartQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	direction, err := domain.ParseDirection(req.Direction)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.quizService.StartQuiz(r.Context(), userID, deckID, quiz.StartOptions{
		Direction:     direction,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.DebugContext(r.Context(), "quiz started",
		slog.String("deck_id", deckID.String()),
		slog.String("session_id", view.SessionID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetQuiz handles GET /api/quiz.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	view, err := h.quizService.CurrentQuiz(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitAnswer handles POST /api/quiz/answers.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	view, err := h.quizService.SubmitAnswer(r.Context(), userID, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// NextQuestion handles POST /api/quiz/next.
func (h *QuizHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	view, err := h.quizService.NextQuestion(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// ResetQuiz handles POST /api/quiz/reset.
func (h *QuizHandler) ResetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	view, err := h.quizService.ResetQuiz(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
