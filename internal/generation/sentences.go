package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
)

// DefaultGenerationMaxTokens is the output budget used when none is configured.
const DefaultGenerationMaxTokens = 2048

// SentenceRequest describes one generation batch. Words are the selected words
// in question order.
type SentenceRequest struct {
	Words          []domain.Word
	SourceLanguage string
	TargetLanguage string
	Direction      domain.Direction
}

// sentenceLanguage and answerLanguage resolve the request's languages through
// its direction.
func (r SentenceRequest) sentenceLanguage() string {
	return r.Direction.SentenceLanguage(r.deck())
}

func (r SentenceRequest) answerLanguage() string {
	return r.Direction.AnswerLanguage(r.deck())
}

func (r SentenceRequest) deck() *domain.Deck {
	return &domain.Deck{SourceLanguage: r.SourceLanguage, TargetLanguage: r.TargetLanguage}
}

// generatedItem is one element of the JSON array the model must return.
// Pointers distinguish absent fields from zero values.
type generatedItem struct {
	WordIndex   *int   `json:"wordIndex"`
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// SentenceGenerator produces one practice sentence per selected word.
type SentenceGenerator struct {
	model     TextModel
	maxTokens int
	logger    *slog.Logger
}

// NewSentenceGenerator creates a SentenceGenerator backed by model.
// A non-positive maxTokens selects DefaultGenerationMaxTokens.
func NewSentenceGenerator(model TextModel, maxTokens int, logger *slog.Logger) (*SentenceGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: text model cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultGenerationMaxTokens
	}
	return &SentenceGenerator{
		model:     model,
		maxTokens: maxTokens,
		logger:    logger.With(slog.String("component", "sentence_generator")),
	}, nil
}

// Generate requests one sentence per word in a single call and returns the
// questions in the order the service listed them. The whole batch is rejected
// if any element cannot be matched to exactly one requested word.
func (g *SentenceGenerator) Generate(ctx context.Context, req SentenceRequest) ([]domain.GeneratedQuestion, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if len(req.Words) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, ErrNoWords)
	}
	if !req.Direction.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, domain.ErrInvalidDirection)
	}

	prompt, err := g.buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	log.DebugContext(ctx, "requesting sentences",
		slog.Int("word_count", len(req.Words)),
		slog.String("direction", string(req.Direction)),
		slog.Int("prompt_length", len(prompt)))

	text, err := g.model.GenerateText(ctx, prompt, g.maxTokens)
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) && !errors.Is(err, ErrContentBlocked) {
			err = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}
		log.ErrorContext(ctx, "sentence generation call failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	questions, err := parseSentences(text, req)
	if err != nil {
		log.WarnContext(ctx, "rejected generated sentences",
			slog.Any("error", err),
			slog.Int("response_length", len(text)))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	log.InfoContext(ctx, "generated sentences", slog.Int("count", len(questions)))
	return questions, nil
}

func (g *SentenceGenerator) buildPrompt(req SentenceRequest) (string, error) {
	sentenceLanguage := req.sentenceLanguage()

	words := make([]sentencePromptWord, len(req.Words))
	for i, w := range req.Words {
		words[i] = sentencePromptWord{
			Term:     req.Direction.DisplayedTerm(w),
			WordType: w.WordType,
		}
	}

	return renderPrompt("sentences.tmpl", sentencePromptData{
		Words:            words,
		SentenceLanguage: sentenceLanguage,
		AnswerLanguage:   req.answerLanguage(),
		Diacritics:       domain.RequiresDiacritics(sentenceLanguage),
		Arabic:           domain.IsArabic(sentenceLanguage),
	})
}

// parseSentences extracts and validates the generated batch.
func parseSentences(text string, req SentenceRequest) ([]domain.GeneratedQuestion, error) {
	raw, ok := ExtractJSONArray(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array in response", ErrUpstreamMalformed)
	}

	var items []generatedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}

	if len(items) != len(req.Words) {
		return nil, fmt.Errorf("%w: expected %d sentences, got %d",
			ErrValidationFailed, len(req.Words), len(items))
	}

	seen := make(map[int]bool, len(items))
	questions := make([]domain.GeneratedQuestion, 0, len(items))
	for i, item := range items {
		if item.WordIndex == nil {
			return nil, fmt.Errorf("%w: item %d has no wordIndex", ErrValidationFailed, i)
		}
		idx := *item.WordIndex
		if idx < 0 || idx >= len(req.Words) {
			return nil, fmt.Errorf("%w: item %d has out-of-range wordIndex %d", ErrValidationFailed, i, idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: wordIndex %d used more than once", ErrValidationFailed, idx)
		}
		seen[idx] = true

		sentence := strings.TrimSpace(item.Sentence)
		translation := strings.TrimSpace(item.Translation)
		if sentence == "" || translation == "" {
			return nil, fmt.Errorf("%w: item %d has an empty sentence or translation", ErrValidationFailed, i)
		}

		word := req.Words[idx]
		questions = append(questions, domain.GeneratedQuestion{
			WordID:       word.ID,
			OriginalWord: req.Direction.DisplayedTerm(word),
			Sentence:     sentence,
			Translation:  translation,
		})
	}

	return questions, nil
}
