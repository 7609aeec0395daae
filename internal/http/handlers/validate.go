package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"playconsole/internal/studio"
)

type validateRequest struct {
	Image      string   `json:"image"`
	Brand      string   `json:"brand"`
	Vision     bool     `json:"vision"`
	User       string   `json:"user,omitempty"`
	Guidelines []string `json:"guidelines,omitempty"`
}

// Validate checks one image against brand guidelines. Single round trip, no
// polling; the verdict comes back in the response.
func (a *App) Validate(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be base64 encoded")
		return
	}
	if req.Brand == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "brand required")
		return
	}

	user := req.User
	if user == "" {
		user = sess.Username()
	}
	result, err := a.Studio.Validate(r.Context(), sess.Token(), studio.ValidationRequest{
		Image:      image,
		Brand:      req.Brand,
		Vision:     req.Vision,
		User:       user,
		Guidelines: req.Guidelines,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("brand", req.Brand).Msg("validation failed")
		a.error(w, upstreamStatus(err), "validation_failed", err.Error())
		return
	}
	a.json(w, http.StatusOK, result)
}
