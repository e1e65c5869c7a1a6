package routes

import (
	"github.com/go-chi/chi/v5"

	"Yatube/internal/api/middleware"
	"Yatube/internal/web"
)

// RegisterFollowRoutes registers follow/unfollow of an author
func RegisterFollowRoutes(r chi.Router, h *web.Handlers, auth *middleware.SessionAuth) {
	r.With(auth.RequireAuth).Get("/profile/{username}/follow/", h.FollowAuthor)
	r.With(auth.RequireAuth).Get("/profile/{username}/unfollow/", h.UnfollowAuthor)
}
