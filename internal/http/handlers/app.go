package handlers

import (
	"encoding/json"
	"net/http"

	"playconsole/internal/identity"
	"playconsole/internal/infra"
	"playconsole/internal/session"
	"playconsole/internal/studio"
)

const sessionCookieName = "pc_session"

// App carries the dashboard backend's dependencies.
type App struct {
	Logger   infra.Logger
	Studio   *studio.Client
	Identity identity.TokenIssuer
	Sessions *session.Store
}

func NewApp(logger infra.Logger, client *studio.Client, issuer identity.TokenIssuer, sessions *session.Store) *App {
	return &App{
		Logger:   logger,
		Studio:   client,
		Identity: issuer,
		Sessions: sessions,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// currentSession resolves the caller's session from the cookie, or from the
// X-Session-ID header for non-browser callers.
func (a *App) currentSession(r *http.Request) (*session.Session, bool) {
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			id = cookie.Value
		}
	}
	if id == "" {
		return nil, false
	}
	return a.Sessions.Get(id)
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
