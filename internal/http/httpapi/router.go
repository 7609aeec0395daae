package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"playconsole/internal/http/handlers"
	"playconsole/internal/infra"
	"playconsole/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/auth/login", app.Login)
		r.Post("/auth/logout", app.Logout)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/playable", app.SubmitPlayable)
			r.Post("/variation", app.SubmitVariation)
			r.Post("/inpaint", app.SubmitInpaint)
			r.Get("/current", app.CurrentJob)
			r.Get("/current/result", app.CurrentResult)
		})

		r.Post("/validate", app.Validate)
		r.Get("/cost", app.Cost)
	})

	return r
}
