package routes

import (
	"github.com/go-chi/chi/v5"

	"Yatube/internal/api/middleware"
	"Yatube/internal/web"
)

// RegisterFeedRoutes registers the paginated post listings
func RegisterFeedRoutes(r chi.Router, h *web.Handlers, auth *middleware.SessionAuth) {
	r.Get("/", h.Index)
	r.Get("/group/{slug}/", h.GroupPosts)
	r.Get("/profile/{username}/", h.Profile)

	// Followed feed only makes sense for a logged-in reader
	r.With(auth.RequireAuth).Get("/follow/", h.FollowIndex)
}
