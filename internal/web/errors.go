package web

import (
	"errors"
	"log/slog"
	"net/http"

	"Yatube/internal/core/comments"
	"Yatube/internal/core/feeds"
	"Yatube/internal/core/follows"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
)

// isNotFound reports whether err means the requested resource does not exist
func isNotFound(err error) bool {
	return posts.IsNotFound(err) ||
		feeds.IsNotFound(err) ||
		follows.IsNotFound(err) ||
		groups.IsNotFound(err) ||
		users.IsNotFound(err)
}

// handleError maps a service error to the matching error page
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if isNotFound(err) {
		h.NotFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := h.base(w, r, "Страница не найдена")
	if err := h.templates.RenderStatus(w, http.StatusNotFound, "404.html", data); err != nil {
		slog.Error("failed to render 404 page", "error", err)
		http.NotFound(w, r)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	data := Base{Viewer: nil, Title: "Ошибка сервера", Path: r.URL.Path}
	if renderErr := h.templates.RenderStatus(w, http.StatusInternalServerError, "500.html", data); renderErr != nil {
		slog.Error("failed to render 500 page", "error", renderErr)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// validationMessage returns the user-facing message of a comment validation error
func validationMessage(err error) string {
	var ve *comments.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
