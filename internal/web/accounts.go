package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"Yatube/internal/core/users"
)

// safeNext accepts only local absolute paths as a post-login destination
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// LoginForm handles GET /auth/login/.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", LoginPageData{
		Base: h.base(w, r, "Войти"),
		Next: r.URL.Query().Get("next"),
	})
}

// LoginSubmit handles POST /auth/login/ and redirects to next.
func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.serverError(w, r, err)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	next := r.PostFormValue("next")

	user, err := h.users.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, users.ErrInvalidCredentials) {
			h.serverError(w, r, err)
			return
		}
		h.render(w, r, "login.html", LoginPageData{
			Base:     h.base(w, r, "Войти"),
			Username: username,
			Next:     next,
			Error:    "Пожалуйста, введите правильные имя пользователя и пароль.",
		})
		return
	}

	if err := h.auth.Login(w, r, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	slog.Info("user logged in", "user_id", user.ID)
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

// SignupForm handles GET /auth/signup/.
func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "signup.html", SignupPageData{
		Base:   h.base(w, r, "Регистрация"),
		Errors: map[string]string{},
	})
}

// SignupSubmit handles POST /auth/signup/, logging the new user in.
func (h *Handlers) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.serverError(w, r, err)
		return
	}
	req := users.SignupRequest{
		Username:  r.PostFormValue("username"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
	}

	user, err := h.users.Signup(r.Context(), req)
	if err != nil {
		var ve *users.ValidationError
		if !errors.As(err, &ve) {
			h.serverError(w, r, err)
			return
		}
		req.Password = ""
		h.render(w, r, "signup.html", SignupPageData{
			Base:   h.base(w, r, "Регистрация"),
			Form:   req,
			Errors: map[string]string{ve.Field: ve.Message},
		})
		return
	}

	if err := h.auth.Login(w, r, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET /auth/logout/.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(w, r); err != nil {
		slog.Warn("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
