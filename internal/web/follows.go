package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Yatube/internal/api/middleware"
)

// FollowAuthor handles GET /profile/{username}/follow/.
// Following yourself or following twice changes nothing.
func (h *Handlers) FollowAuthor(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.follows.Follow(r.Context(), middleware.GetUserID(r), username); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

// UnfollowAuthor handles GET /profile/{username}/unfollow/.
func (h *Handlers) UnfollowAuthor(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.follows.Unfollow(r.Context(), middleware.GetUserID(r), username); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(username), http.StatusFound)
}
