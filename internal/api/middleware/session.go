package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"Yatube/internal/config"
)

// SessionName is the name of the session cookie
const SessionName = "yatube_session"

const (
	sessionUserKey = "user_id"
	sessionMaxAge  = 14 * 24 * 60 * 60
)

// NewCookieStore creates the signed cookie store that backs sessions
func NewCookieStore(secret string, secure bool) (*sessions.CookieStore, error) {
	if len(secret) < config.MinSessionSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", config.MinSessionSecretLen)
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

// session returns the request's session. A cookie that fails to decode
// (rotated key, tampering) yields a fresh session rather than an error.
func (a *SessionAuth) session(r *http.Request) *sessions.Session {
	session, err := a.store.Get(r, SessionName)
	if err != nil && session == nil {
		session = sessions.NewSession(a.store, SessionName)
	}
	return session
}

// Login binds the user to the session cookie
func (a *SessionAuth) Login(w http.ResponseWriter, r *http.Request, userID int64) error {
	session := a.session(r)
	session.Values[sessionUserKey] = userID
	return session.Save(r, w)
}

// Logout expires the session cookie
func (a *SessionAuth) Logout(w http.ResponseWriter, r *http.Request) error {
	session := a.session(r)
	delete(session.Values, sessionUserKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// AddFlash queues a one-shot message shown on the next rendered page
func (a *SessionAuth) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	session := a.session(r)
	session.AddFlash(message)
	return session.Save(r, w)
}

// Flashes pops the queued messages
func (a *SessionAuth) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session := a.session(r)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		return nil
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
