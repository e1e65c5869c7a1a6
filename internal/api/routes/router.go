package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"Yatube/internal/api/middleware"
	"Yatube/internal/web"
)

// RouterConfig holds what NewRouter wires together
type RouterConfig struct {
	Handlers    *web.Handlers
	Auth        *middleware.SessionAuth
	RateLimiter *middleware.RateLimiter // optional
	StaticDir   string
	MediaRoot   string
	// AccessLog enables chi's request logger
	AccessLog bool
}

// NewRouter builds the full site router
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if cfg.AccessLog {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}
	r.Use(cfg.Auth.LoadUser)

	RegisterFeedRoutes(r, cfg.Handlers, cfg.Auth)
	RegisterPostRoutes(r, cfg.Handlers, cfg.Auth)
	RegisterFollowRoutes(r, cfg.Handlers, cfg.Auth)
	RegisterAuthRoutes(r, cfg.Handlers)
	RegisterWebRoutes(r, cfg.Handlers, cfg.StaticDir, cfg.MediaRoot)

	return r
}
