package routes

import (
	"github.com/go-chi/chi/v5"

	"Yatube/internal/web"
)

// RegisterAuthRoutes registers signup, login and logout
func RegisterAuthRoutes(r chi.Router, h *web.Handlers) {
	r.Get("/auth/login/", h.LoginForm)
	r.Post("/auth/login/", h.LoginSubmit)
	r.Get("/auth/signup/", h.SignupForm)
	r.Post("/auth/signup/", h.SignupSubmit)
	r.Get("/auth/logout/", h.Logout)
}
