package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"lumina/internal/http/handlers"
	"lumina/internal/middleware"
)

// Options carries the cross-cutting wiring the router needs beyond the
// handler set itself.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	Country         middleware.CountryLookup
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.I18N(opts.DefaultLocale, opts.Country))
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/credentials", func(r chi.Router) {
		r.Get("/status", app.CredentialStatus)
		r.Put("/", app.CredentialSet)
		r.Delete("/", app.CredentialClear)
	})

	r.Get("/v1/quick-actions", app.QuickActionsList)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", app.SessionCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.SessionGet)
			r.Delete("/", app.SessionDelete)
			r.Post("/reset", app.SessionReset)

			r.Post("/assets", app.AssetAdd)
			r.Delete("/assets/{assetID}", app.AssetRemove)
			r.Put("/assets/{assetID}/classification", app.AssetClassify)

			r.Put("/settings", app.SettingsUpdate)
			r.Put("/prompt", app.PromptUpdate)

			r.Post("/generate", app.Generate)
			r.Post("/regenerate", app.Regenerate)
			r.Post("/quick-action", app.QuickActionApply)
			r.Post("/video", app.VideoGenerate)

			r.Post("/export/image", app.ExportImage)
			r.Get("/export/video", app.ExportVideo)
			r.Get("/export/bundle", app.ExportBundle)
		})
	})

	return r
}
