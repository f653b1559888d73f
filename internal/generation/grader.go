package generation

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
)

// DefaultGradingMaxTokens is the output budget used when none is configured.
const DefaultGradingMaxTokens = 512

// Feedback used by the deterministic comparator.
const (
	FallbackCorrectFeedback   = "Correct!"
	FallbackIncorrectFeedback = "Not quite right."
)

// GradeRequest is one answer to grade. SentenceLanguage is the language the
// question was shown in and AnswerLanguage the language of both translations.
type GradeRequest struct {
	Sentence           string `json:"sentence"`
	CorrectTranslation string `json:"correctTranslation"`
	UserAnswer         string `json:"userAnswer"`
	SentenceLanguage   string `json:"sourceLanguage"`
	AnswerLanguage     string `json:"targetLanguage"`
}

// gradeReply is the JSON object the grading prompt asks for.
type gradeReply struct {
	IsCorrect           *bool    `json:"isCorrect"`
	Score               *float64 `json:"score"`
	Feedback            string   `json:"feedback"`
	SuggestedCorrection string   `json:"suggestedCorrection"`
}

// FallbackObserver is notified whenever grading falls back to the
// deterministic comparator.
type FallbackObserver interface {
	GradingFallback(reason string)
}

// AnswerGrader grades free-text translations with a lenient service-backed
// judgment and a deterministic fallback. Grade never fails.
type AnswerGrader struct {
	model     TextModel
	maxTokens int
	logger    *slog.Logger
	observer  FallbackObserver
}

// GraderOption configures an AnswerGrader.
type GraderOption func(*AnswerGrader)

// WithFallbackObserver registers o to be told about fallback grades.
func WithFallbackObserver(o FallbackObserver) GraderOption {
	return func(g *AnswerGrader) { g.observer = o }
}

// NewAnswerGrader creates an AnswerGrader. A nil model is allowed and makes
// every grade a fallback grade.
func NewAnswerGrader(model TextModel, maxTokens int, logger *slog.Logger, opts ...GraderOption) *AnswerGrader {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultGradingMaxTokens
	}
	g := &AnswerGrader{
		model:     model,
		maxTokens: maxTokens,
		logger:    logger.With(slog.String("component", "answer_grader")),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Grade returns a normalized outcome for req. Any failure of the service call
// or of parsing its reply yields FallbackGrade instead.
func (g *AnswerGrader) Grade(ctx context.Context, req GradeRequest) domain.GradeOutcome {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if g.model == nil {
		return g.fallback(ctx, log, req, "no model configured")
	}

	prompt, err := renderPrompt("grading.tmpl", gradingPromptData{
		Sentence:           req.Sentence,
		CorrectTranslation: req.CorrectTranslation,
		UserAnswer:         req.UserAnswer,
		SentenceLanguage:   req.SentenceLanguage,
		AnswerLanguage:     req.AnswerLanguage,
		PassingScore:       domain.PassingScore,
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to build grading prompt", slog.Any("error", err))
		return g.fallback(ctx, log, req, "prompt")
	}

	text, err := g.model.GenerateText(ctx, prompt, g.maxTokens)
	if err != nil {
		log.WarnContext(ctx, "grading call failed", slog.Any("error", err))
		return g.fallback(ctx, log, req, "upstream")
	}

	reply, ok := parseGradeReply(text)
	if !ok {
		log.WarnContext(ctx, "unparsable grading response", slog.Int("response_length", len(text)))
		return g.fallback(ctx, log, req, "malformed")
	}

	outcome := domain.NewGradeOutcome(*reply.Score, strings.TrimSpace(reply.Feedback),
		strings.TrimSpace(reply.SuggestedCorrection))
	if reply.IsCorrect != nil && *reply.IsCorrect != outcome.IsCorrect {
		log.DebugContext(ctx, "service correctness disagrees with score; using score",
			slog.Bool("service_is_correct", *reply.IsCorrect),
			slog.Int("score", outcome.Score))
	}
	return outcome
}

func (g *AnswerGrader) fallback(ctx context.Context, log *slog.Logger, req GradeRequest, reason string) domain.GradeOutcome {
	if g.observer != nil {
		g.observer.GradingFallback(reason)
	}
	outcome := FallbackGrade(req.UserAnswer, req.CorrectTranslation)
	log.InfoContext(ctx, "graded with fallback comparator",
		slog.String("reason", reason),
		slog.Bool("is_correct", outcome.IsCorrect))
	return outcome
}

// parseGradeReply extracts the first JSON object from text. A reply without a
// numeric score is malformed.
func parseGradeReply(text string) (gradeReply, bool) {
	raw, ok := ExtractJSONObject(text)
	if !ok {
		return gradeReply{}, false
	}
	var reply gradeReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return gradeReply{}, false
	}
	if reply.Score == nil {
		return gradeReply{}, false
	}
	return reply, true
}

// FallbackGrade compares userAnswer with correctTranslation after trimming
// surrounding whitespace and folding case. It is pure and cannot fail.
func FallbackGrade(userAnswer, correctTranslation string) domain.GradeOutcome {
	if strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correctTranslation)) {
		return domain.GradeOutcome{
			IsCorrect: true,
			Score:     domain.MaxScore,
			Feedback:  FallbackCorrectFeedback,
			Fallback:  true,
		}
	}
	return domain.GradeOutcome{
		IsCorrect:           false,
		Score:               domain.MinScore,
		Feedback:            FallbackIncorrectFeedback,
		SuggestedCorrection: correctTranslation,
		Fallback:            true,
	}
}
