package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vocab-drill/internal/config"
	"github.com/phrazzld/vocab-drill/internal/events"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/phrazzld/vocab-drill/internal/platform/gemini"
	"github.com/phrazzld/vocab-drill/internal/platform/metrics"
	"github.com/phrazzld/vocab-drill/internal/platform/postgres"
	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/phrazzld/vocab-drill/internal/service"
	"github.com/phrazzld/vocab-drill/internal/service/auth"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// application holds the process-wide dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	metrics      *metrics.Metrics
	deckStore    store.DeckStore
	sessionStore store.SessionStore
	eventBus     *events.Bus

	jwtService  auth.JWTService
	generator   quiz.SentenceGenerator
	grader      quiz.Grader
	quizService service.QuizService
}

// newApplication wires every component from cfg. The database connection
// must already be open.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)

	llm, err := gemini.NewClient(ctx, logger, cfg.LLM, app.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generative-language client: %w", err)
	}
	logger.Info("generative-language client initialized", slog.String("model", cfg.LLM.ModelName))

	generator, err := generation.NewSentenceGenerator(llm, cfg.LLM.GenerationMaxTokens, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentence generator: %w", err)
	}
	app.generator = generator
	app.grader = generation.NewAnswerGrader(llm, cfg.LLM.GradingMaxTokens, logger,
		generation.WithFallbackObserver(app.metrics))

	app.eventBus = events.NewBus(logger)
	app.eventBus.Subscribe(app.metrics)

	app.quizService, err = service.NewQuizService(app.deckStore, quiz.Dependencies{
		Generator: app.generator,
		Grader:    app.grader,
		Store:     app.sessionStore,
		Emitter:   app.eventBus,
		Logger:    logger,
		Settings: quiz.Settings{
			DefaultQuestionCount: cfg.Quiz.DefaultQuestionCount,
			MaxQuestionCount:     cfg.Quiz.MaxQuestionCount,
			PersistRetries:       cfg.Quiz.PersistRetries,
			PersistBackoff:       quiz.DefaultPersistBackoff,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}
	app.logger.Info("application shutdown completed")
}

const shutdownTimeout = 10 * time.Second
