package web

import (
	"net/http"

	"Yatube/internal/api/middleware"
	"Yatube/internal/core/comments"
	"Yatube/internal/core/feeds"
	"Yatube/internal/core/follows"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
)

// Handlers provides the HTTP handlers for every Yatube page.
type Handlers struct {
	templates *Templates
	auth      *middleware.SessionAuth
	feeds     feeds.Service
	posts     posts.Service
	comments  comments.Service
	follows   follows.Service
	users     users.Service
	groups    groups.Service
	maxUpload int64
}

// Deps groups the services the handlers need.
type Deps struct {
	Templates *Templates
	Auth      *middleware.SessionAuth
	Feeds     feeds.Service
	Posts     posts.Service
	Comments  comments.Service
	Follows   follows.Service
	Users     users.Service
	Groups    groups.Service
	// MaxUploadBytes caps the post form body
	MaxUploadBytes int64
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(d Deps) *Handlers {
	maxUpload := d.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &Handlers{
		templates: d.Templates,
		auth:      d.Auth,
		feeds:     d.Feeds,
		posts:     d.Posts,
		comments:  d.Comments,
		follows:   d.Follows,
		users:     d.Users,
		groups:    d.Groups,
		maxUpload: maxUpload,
	}
}

// base collects the layout data and pops pending flash messages
func (h *Handlers) base(w http.ResponseWriter, r *http.Request, title string) Base {
	return Base{
		Viewer:  middleware.GetUser(r),
		Title:   title,
		Path:    r.URL.Path,
		Flashes: h.auth.Flashes(w, r),
	}
}

// render writes a page, falling back to the 500 page on template errors
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if err := h.templates.Render(w, name, data); err != nil {
		h.serverError(w, r, err)
	}
}

// AboutAuthor renders the static author page.
func (h *Handlers) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "author.html", h.base(w, r, "Об авторе"))
}

// AboutTech renders the static technologies page.
func (h *Handlers) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "tech.html", h.base(w, r, "Технологии"))
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
