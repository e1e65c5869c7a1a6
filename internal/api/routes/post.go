package routes

import (
	"github.com/go-chi/chi/v5"

	"Yatube/internal/api/middleware"
	"Yatube/internal/web"
)

// RegisterPostRoutes registers post detail, create/edit and comments
func RegisterPostRoutes(r chi.Router, h *web.Handlers, auth *middleware.SessionAuth) {
	r.Get("/posts/{postID}/", h.PostDetail)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/create/", h.CreatePostForm)
		r.Post("/create/", h.CreatePostSubmit)

		// Non-authors are redirected to the detail page by the handlers
		r.Get("/posts/{postID}/edit/", h.EditPostForm)
		r.Post("/posts/{postID}/edit/", h.EditPostSubmit)

		r.Post("/posts/{postID}/comment", h.AddComment)
		r.Post("/posts/{postID}/comment/", h.AddComment)
		r.Get("/posts/{postID}/comment", h.CommentRedirect)
		r.Get("/posts/{postID}/comment/", h.CommentRedirect)
	})
}
