package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/vocab-drill/internal/api"
	apiMiddleware "github.com/phrazzld/vocab-drill/internal/api/middleware"
)

// setupRouter registers every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)

	quizHandler := api.NewQuizHandler(app.quizService, app.logger)
	generationHandler := api.NewGenerationHandler(app.generator, app.grader, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/decks/{deckID}/quiz", quizHandler.StartQuiz)
		r.Get("/quiz", quizHandler.GetQuiz)
		r.Post("/quiz/answers", quizHandler.SubmitAnswer)
		r.Post("/quiz/next", quizHandler.NextQuestion)
		r.Post("/quiz/reset", quizHandler.ResetQuiz)

		r.Post("/sentences", generationHandler.GenerateSentences)
		r.Post("/grade", generationHandler.GradeAnswer)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response")
		}
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
