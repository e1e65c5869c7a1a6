package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"

	"Yatube/internal/core/users"
)

type contextKey string

// UserKey holds the authenticated *users.User in the request context
const UserKey contextKey = "user"

// LoginPath is where anonymous visitors are sent for protected pages
const LoginPath = "/auth/login/"

// UserLoader resolves the user id stored in the session
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

// SessionAuth loads the logged-in user from the session cookie
type SessionAuth struct {
	store sessions.Store
	users UserLoader
}

// NewSessionAuth creates the session auth middleware
func NewSessionAuth(store sessions.Store, loader UserLoader) *SessionAuth {
	return &SessionAuth{store: store, users: loader}
}

// LoadUser injects the session's user into the context when there is one.
// Anonymous requests pass through untouched.
func (a *SessionAuth) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.session(r).Values[sessionUserKey].(int64)
		if !ok || userID <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			if !users.IsNotFound(err) {
				slog.Error("failed to load session user", "user_id", userID, "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetTestUser(r.Context(), user)))
	})
}

// RequireAuth redirects anonymous visitors to the login page,
// remembering where they were going
func (a *SessionAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginURL builds the login redirect for the given original path
func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// GetUser returns the authenticated user, or nil for anonymous requests
func GetUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(UserKey).(*users.User)
	return user
}

// GetUserID returns the authenticated user's id, or 0 for anonymous requests
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// SetTestUser places a user in the context. Used by LoadUser and by tests.
func SetTestUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
