package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	PublicHandler   *handlers.PublicHandler
	ProjectsHandler *handlers.ProjectsHandler
	MessagesHandler *handlers.MessagesHandler
	ContentHandler  *handlers.ContentHandler
	AuthHandler     *handlers.AuthHandler
	NoticesHandler  *handlers.NoticesHandler
	HealthHandler   *handlers.HealthHandler
	Sessions        func(http.Handler) http.Handler // loads the caller's cookie session
	RequireSession  func(http.Handler) http.Handler // unexpired token in the caller's session for /admin/*
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	RatingRateLimit func(http.Handler) http.Handler // per IP and project, on the public rate route
	Metrics         bool                            // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}
	r.Use(cfg.Sessions)

	jsonBody := chimid.AllowContentType("application/json")
	formBody := chimid.AllowContentType("multipart/form-data", "application/x-www-form-urlencoded")
	ratingLimit := cfg.RatingRateLimit
	if ratingLimit == nil {
		ratingLimit = func(next http.Handler) http.Handler { return next }
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", cfg.PublicHandler.Home)
		r.Get("/about", cfg.PublicHandler.About)
		r.Get("/skills", cfg.PublicHandler.Skills)
		r.Get("/projects", cfg.PublicHandler.Projects)
		r.Get("/projects/{id}", cfg.PublicHandler.Project)
		r.With(jsonBody, ratingLimit).Post("/projects/{id}/rate", cfg.PublicHandler.RateProject)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(jsonBody)
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(cfg.RequireSession)
		r.Get("/session", cfg.AuthHandler.Session)
		r.Get("/notices/{section}", cfg.NoticesHandler.ServeHTTP)
		r.Post("/refresh", cfg.ProjectsHandler.Refresh)
		r.Delete("/error", cfg.ProjectsHandler.DismissError)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", cfg.ProjectsHandler.List)
			r.With(formBody).Post("/", cfg.ProjectsHandler.Create)
			r.Delete("/{id}", cfg.ProjectsHandler.Delete)
			r.With(jsonBody).Post("/{id}/rate", cfg.ProjectsHandler.Rate)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", cfg.MessagesHandler.List)
			r.Delete("/{id}", cfg.MessagesHandler.Delete)
		})

		r.Get("/home", cfg.ContentHandler.GetHome)
		r.With(formBody).Post("/home", cfg.ContentHandler.SaveHome)

		r.Route("/about", func(r chi.Router) {
			r.Get("/", cfg.ContentHandler.GetAbout)
			r.Post("/", cfg.ContentHandler.SaveAbout)
			r.Get("/draft", cfg.ContentHandler.AboutDraft)
			r.Group(func(r chi.Router) {
				r.Use(jsonBody)
				r.Put("/draft", cfg.ContentHandler.SetAboutText)
				r.Post("/experiences", cfg.ContentHandler.AddExperience)
				r.Put("/experiences/{index}", cfg.ContentHandler.UpdateExperience)
				r.Post("/skills/{group}", cfg.ContentHandler.AddAboutSkill)
			})
			r.Delete("/experiences/{index}", cfg.ContentHandler.RemoveExperience)
			r.Delete("/skills/{group}/{index}", cfg.ContentHandler.RemoveAboutSkill)
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", cfg.ContentHandler.ListSkills)
			r.With(jsonBody).Post("/", cfg.ContentHandler.AddSkill)
			r.With(formBody).Post("/cv", cfg.ContentHandler.UploadCV)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
