package api

import (
	"net/http"
	"time"

	"cox_coop/internal/admin"
	"cox_coop/internal/analytics"
	"cox_coop/internal/config"
	"cox_coop/internal/metrics"
	"cox_coop/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Sheets      analytics.GridFetcher
	Tabs        config.Tabs
	Submissions *submission.Service
	Gate        *admin.Gate

	CSRFKey             []byte
	SecureCookies       bool
	TrustedOrigins      []string
	SubmitRatePerMinute int
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(opts Options) (http.Handler, error) {
	home, err := newHomeHandler(opts.Sheets, opts.Tabs)
	if err != nil {
		return nil, err
	}

	mux := chi.NewRouter()

	mux.Use(middleware.RealIP)
	mux.Use(RequestID)
	mux.Use(Logging)
	mux.Use(Recovery)
	mux.Use(metrics.Metrics)

	data := &dataHandler{sheets: opts.Sheets, tabs: opts.Tabs, now: time.Now}
	submit := &submitHandler{service: opts.Submissions}
	session := &sessionHandler{gate: opts.Gate}

	mux.Get("/", home.ServeHTTP)
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Get("/roster", data.Roster)
		r.Get("/stats", data.Stats)

		r.Route("/submit", func(r chi.Router) {
			r.Use(RateLimit(NewRateLimiter(opts.SubmitRatePerMinute)))
			r.Post("/feedback", submit.Feedback)
			r.Post("/tip", submit.Tip)
			r.Post("/vision", submit.Vision)
			r.Post("/creator", submit.Creator)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(opts.Gate))
			r.Use(NoStore)
			r.Get("/analytics", data.Analytics)
			r.Get("/export/{kind}", data.Export)
		})
	})

	mux.Route("/admin", func(r chi.Router) {
		r.Use(CSRF(opts.CSRFKey, opts.SecureCookies, opts.TrustedOrigins))
		r.Use(NoStore)
		r.Get("/csrf", session.CSRFToken)
		r.With(RateLimit(NewRateLimiter(opts.SubmitRatePerMinute))).Post("/login", session.Login)
		r.Post("/logout", session.Logout)
	})

	return mux, nil
}
