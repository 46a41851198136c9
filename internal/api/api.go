package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hundreddays-io/hundreddays/internal/auth"
	"github.com/hundreddays-io/hundreddays/internal/config"
	"github.com/hundreddays-io/hundreddays/internal/database"
	"github.com/hundreddays-io/hundreddays/internal/linkcheck"
)

type Api struct {
	Config config.Config
	Router *chi.Mux

	logger        *zap.Logger
	authenticator *auth.Authenticator
	checker       *linkcheck.Checker
}

func NewApi(cfg config.Config, logger *zap.Logger) (*Api, error) {
	api := &Api{
		Config:        cfg,
		Router:        chi.NewRouter(),
		logger:        logger,
		authenticator: auth.NewAuthenticator(auth.DatabaseStore{}),
		checker:       linkcheck.NewChecker(),
	}
	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	// Preflight is answered before anything else; cors.Handler decorates
	// the remaining responses.
	r.Use(preflightHandler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.recoverer)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", api.HealthHandler)
		r.Post("/auth/login", api.LoginHandler)

		// Everything else requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(api.authenticator, api.logger))

			r.Post("/auth/logout", api.LogoutHandler)
			r.Get("/auth/user", api.CurrentUserHandler)

			r.Get("/challenges", api.ListChallengesHandler)
			r.Post("/challenges", api.CreateChallengeHandler)
			r.Get("/challenges/{challengeID}", api.GetChallengeHandler)
			r.Put("/challenges/{challengeID}", api.UpdateChallengeHandler)
			r.Delete("/challenges/{challengeID}", api.DeleteChallengeHandler)
			r.Get("/challenges/{challengeID}/stats", api.ChallengeStatsHandler)

			r.Get("/projects/challenge/{challengeID}", api.ListProjectsHandler)
			r.Post("/projects/challenge/{challengeID}", api.CreateProjectHandler)
			r.Get("/projects/{projectID}", api.GetProjectHandler)
			r.Put("/projects/{projectID}", api.UpdateProjectHandler)
			r.Delete("/projects/{projectID}", api.DeleteProjectHandler)
			r.Post("/projects/{projectID}/check-links", api.CheckProjectLinksHandler)

			r.Get("/dashboard", api.DashboardHandler)
		})
	})
}

// preflightHandler answers every OPTIONS request with a bodiless 204 and
// permissive CORS headers, before any credential check.
func preflightHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverer converts handler panics into a generic 500 JSON body. The
// original failure is logged and never crosses the boundary.
func (api *Api) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				api.logger.Error("panic in handler",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				api.respondJSON(w, http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
					"code":  "INTERNAL",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Serve starts the HTTP server and the background session cleanup loop.
func (api *Api) Serve() error {
	go api.sessionCleanupLoop()

	addr := fmt.Sprintf(":%d", api.Config.APIPort)
	api.logger.Info("starting API server", zap.String("addr", addr))
	return http.ListenAndServe(addr, api.Router)
}

func (api *Api) sessionCleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := database.CleanupExpiredSessions(); err != nil {
			api.logger.Warn("session cleanup failed", zap.Error(err))
		}
	}
}
