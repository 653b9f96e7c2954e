package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/luminapath/lumina-api/internal/api"
	apiMiddleware "github.com/luminapath/lumina-api/internal/api/middleware"
	"github.com/luminapath/lumina-api/internal/api/shared"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	explanationHandler := api.NewExplanationHandler(app.service, app.logger)
	reportHandler := api.NewReportHandler(app.service, app.renderer, app.mailer, app.logger)
	predictHandler := api.NewPredictHandler(app.classifier, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/predict", predictHandler.HandlePredict)
		r.Post("/explain", explanationHandler.HandleExplain)
		r.Route("/reports", func(r chi.Router) {
			r.Post("/full", reportHandler.HandleFullReport)
			r.Post("/render", reportHandler.HandleRenderReport)
			r.Post("/send", reportHandler.HandleSendReport)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{
			Status:               "ok",
			GeminiConfigured:     app.config.LLM.GeminiAPIKey != "",
			PerplexityConfigured: app.config.LLM.PerplexityAPIKey != "",
			ClassifierConfigured: app.config.Classifier.InferenceURL != "",
			EmailConfigured:      app.config.Email.Username != "",
		})
	})

	return r
}
