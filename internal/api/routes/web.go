package routes

import (
	"github.com/go-chi/chi/v5"

	"Yatube/internal/web"
)

// RegisterWebRoutes registers the static pages, assets and uploaded media.
func RegisterWebRoutes(r chi.Router, h *web.Handlers, staticDir, mediaRoot string) {
	r.Get("/about/author/", h.AboutAuthor)
	r.Get("/about/tech/", h.AboutTech)
	r.Get("/health", h.Health)

	r.Handle("/static/*", web.ProjectStaticFileServer(staticDir))
	r.Handle("/media/*", web.MediaFileServer(mediaRoot))

	r.NotFound(h.NotFound)
}
