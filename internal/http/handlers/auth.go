package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
}

// Login exchanges credentials for a bearer token via the identity provider
// and opens a console session. A single attempt per request; credentials are
// never stored, only the derived token lives in the session.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username and password required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	token, err := a.Identity.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		a.Logger.Warn().Err(err).Str("username", req.Username).Msg("login rejected")
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication failed")
		return
	}

	sess := a.Sessions.Create(req.Username, token)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, loginResponse{SessionID: sess.ID(), Username: sess.Username()})
}

// Logout drops the session. The upstream token cannot be revoked from here;
// it simply stops being used.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := a.currentSession(r); ok {
		a.Sessions.Delete(sess.ID())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}
