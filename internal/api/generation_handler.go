package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/vocab-drill/internal/api/shared"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/quiz"
)

// GenerationHandler exposes sentence generation and grading without a
// session, for clients that keep their own quiz state.
type GenerationHandler struct {
	generator quiz.SentenceGenerator
	grader    quiz.Grader
	logger    *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generator quiz.SentenceGenerator, grader quiz.Grader, logger *slog.Logger) *GenerationHandler {
	if generator == nil || grader == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator and grader cannot be nil for GenerationHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		generator: generator,
		grader:    grader,
		logger:    logger.With(slog.String("component", "generation_handler")),
	}
}

// GenerateSentences handles POST /api/sentences.
func (h *GenerationHandler) GenerateSentences(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateSentencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Count != 0 && req.Count != len(req.Words) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid count: must equal the number of words")
		return
	}
	direction, err := domain.ParseDirection(req.Direction)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	words := make([]domain.Word, len(req.Words))
	for i, in := range req.Words {
		words[i] = domain.Word{
			ID:         in.ID,
			WordType:   in.WordType,
			SourceTerm: in.SourceTerm,
			TargetTerm: in.TargetTerm,
		}
	}

	questions, err := h.generator.Generate(r.Context(), generation.SentenceRequest{
		Words:          words,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Direction:      direction,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.DebugContext(r.Context(), "sentences generated", slog.Int("count", len(questions)))
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateSentencesResponse{Sentences: questions})
}

// GradeAnswer handles POST /api/grade. Grading always yields an outcome.
func (h *GenerationHandler) GradeAnswer(w http.ResponseWriter, r *http.Request) {
	var req GradeAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outcome := h.grader.Grade(r.Context(), generation.GradeRequest{
		Sentence:           req.Sentence,
		CorrectTranslation: req.CorrectTranslation,
		UserAnswer:         req.UserAnswer,
		SentenceLanguage:   req.SourceLanguage,
		AnswerLanguage:     req.TargetLanguage,
	})
	shared.RespondWithJSON(w, r, http.StatusOK, outcome)
}
