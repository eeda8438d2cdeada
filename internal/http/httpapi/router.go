package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"oasisweb/internal/http/handlers"
	"oasisweb/internal/middleware"
)

// Options carries the cross-cutting dependencies the route tree needs beyond
// the handler App itself.
type Options struct {
	Logger         zerolog.Logger
	JWTSecret      string
	AllowedOrigins []string
	CountryLookup  middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.WithClientInfo(opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/contact", app.ContactCreate)
		r.Post("/join", app.JoinCreate)
		r.Post("/newsletter", app.NewsletterSubscribe)

		r.Post("/donations", app.DonationsOffline)
		r.Post("/donations/intent", app.DonationsIntent)
		r.Post("/webhooks/stripe", app.StripeWebhook)

		r.Post("/admin/login", app.AdminLogin)
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(opts.JWTSecret))
			r.Get("/stats", app.AdminStats)
			r.Get("/users", app.AdminUsers)
			r.Post("/users/{id}/approve", app.AdminUserApprove)
			r.Post("/users/{id}/reject", app.AdminUserReject)
			r.Get("/messages", app.AdminMessages)
			r.Post("/messages/{id}/read", app.AdminMessageRead)
			r.Get("/donations", app.AdminDonations)
			r.Get("/activity", app.AdminActivity)
		})
	})

	return r
}
