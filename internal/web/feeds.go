package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Yatube/internal/api/middleware"
)

// Index handles GET / with the cached global feed.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.feeds.GlobalFeed(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, "index.html", FeedPageData{
		Base: h.base(w, r, "Последние обновления на сайте"),
		Page: page,
	})
}

// GroupPosts handles GET /group/{slug}/.
func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feeds.GroupFeed(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, "group_list.html", GroupPageData{
		Base:  h.base(w, r, "Записи сообщества "+feed.Group.Title),
		Group: feed.Group,
		Page:  feed.Page,
	})
}

// Profile handles GET /profile/{username}/.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	feed, err := h.feeds.ProfileFeed(r.Context(), chi.URLParam(r, "username"), viewerID, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, "profile.html", ProfilePageData{
		Base:      h.base(w, r, "Профайл пользователя "+feed.Author.FullName()),
		Author:    feed.Author,
		Page:      feed.Page,
		PostCount: feed.PostCount,
		Following: feed.Following,
		CanFollow: viewerID > 0 && viewerID != feed.Author.ID,
	})
}

// FollowIndex handles GET /follow/ with posts from followed authors.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.feeds.FollowedFeed(r.Context(), middleware.GetUserID(r), r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, "follow.html", FeedPageData{
		Base: h.base(w, r, "Избранные авторы"),
		Page: page,
	})
}
