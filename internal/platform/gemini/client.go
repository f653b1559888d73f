package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/vocab-drill/internal/config"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Default retry settings used when the configuration carries invalid values.
const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// CallObserver receives the latency and outcome of every attempt made against
// the API. Outcomes are "success", "blocked", "empty", "transient" and "error".
type CallObserver interface {
	ObserveLLMCall(duration time.Duration, outcome string)
}

// generateFunc performs a single API request.
type generateFunc func(ctx context.Context, prompt string, maxTokens int) (*genai.GenerateContentResponse, error)

// Client implements generation.TextModel using the Gemini API.
type Client struct {
	logger   *slog.Logger
	config   config.LLMConfig
	call     generateFunc
	limiter  *rate.Limiter
	observer CallObserver

	// sleep waits between retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error

	mu  sync.Mutex
	rng *rand.Rand
}

var _ generation.TextModel = (*Client)(nil)

// NewClient creates a Client for cfg. The observer may be nil.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, observer CallObserver) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	temperature := cfg.Temperature
	call := func(ctx context.Context, prompt string, maxTokens int) (*genai.GenerateContentResponse, error) {
		return api.Models.GenerateContent(ctx, cfg.ModelName, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: int32(maxTokens),
		})
	}

	return newClient(logger, cfg, call, observer), nil
}

func newClient(log *slog.Logger, cfg config.LLMConfig, call generateFunc, observer CallObserver) *Client {
	if log == nil {
		log = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &Client{
		logger:   log.With(slog.String("component", "gemini_client"), slog.String("model", cfg.ModelName)),
		config:   cfg,
		call:     call,
		limiter:  limiter,
		observer: observer,
		sleep:    sleepContext,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// GenerateText sends prompt to the model and returns the concatenated text of
// the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", generation.ErrInvalidConfig)
	}

	maxRetries := c.config.MaxRetries
	if maxRetries < 0 {
		log.WarnContext(ctx, "invalid max retries value, using default", slog.Int("max_retries", defaultMaxRetries))
		maxRetries = defaultMaxRetries
	}
	baseDelay := c.config.RetryDelaySeconds
	if baseDelay < 1 {
		baseDelay = defaultRetryDelaySeconds
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(baseDelay, attempt-1)
			log.InfoContext(ctx, "retrying Gemini API call after delay",
				slog.Int("attempt", attempt+1),
				slog.Duration("delay", delay))
			if err := c.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("%w: %v", generation.ErrUpstreamUnavailable, err)
			}
		}

		text, err := c.attempt(ctx, prompt, maxTokens)
		if err == nil {
			log.DebugContext(ctx, "Gemini API call successful", slog.Int("attempt", attempt+1))
			return text, nil
		}
		lastErr = err

		if !errors.Is(err, generation.ErrTransientFailure) {
			log.WarnContext(ctx, "permanent Gemini API error, not retrying", slog.Any("error", err))
			return "", err
		}
		log.WarnContext(ctx, "transient Gemini API error",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1),
			slog.Any("error", err))
	}

	return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %w",
		generation.ErrUpstreamUnavailable, maxRetries, lastErr)
}

// attempt makes one rate-limited request and classifies its result.
func (c *Client) attempt(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limiter: %v", generation.ErrUpstreamUnavailable, err)
		}
	}

	callCtx := ctx
	if timeout := c.config.RequestTimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.call(callCtx, prompt, maxTokens)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		// Only the per-request timeout expired.
		err = fmt.Errorf("request timed out: %s", err.Error())
	}
	text, outcome, err := readResponse(resp, err)
	if c.observer != nil {
		c.observer.ObserveLLMCall(time.Since(start), outcome)
	}
	return text, err
}

// readResponse converts a raw API result into text or a classified error.
func readResponse(resp *genai.GenerateContentResponse, err error) (string, string, error) {
	if err != nil {
		if isTransient(err) {
			return "", "transient", fmt.Errorf("%w: %w: %v",
				generation.ErrUpstreamUnavailable, generation.ErrTransientFailure, err)
		}
		return "", "error", fmt.Errorf("%w: %v", generation.ErrUpstreamUnavailable, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", "empty", fmt.Errorf("%w: no candidates in response", generation.ErrUpstreamUnavailable)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", "blocked", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", "empty", fmt.Errorf("%w: empty content in response", generation.ErrUpstreamUnavailable)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", "empty", fmt.Errorf("%w: response contained no text", generation.ErrUpstreamUnavailable)
	}

	return sb.String(), "success", nil
}

// backoff returns baseDelay * 2^retry seconds scaled by a jitter factor in
// [0.5, 1.0).
func (c *Client) backoff(baseDelaySeconds, retry int) time.Duration {
	c.mu.Lock()
	jitter := 0.5 + c.rng.Float64()*0.5
	c.mu.Unlock()

	seconds := float64(baseDelaySeconds) * math.Pow(2, float64(retry)) * jitter
	return time.Duration(seconds * float64(time.Second))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
