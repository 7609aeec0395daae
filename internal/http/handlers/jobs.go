package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"playconsole/internal/studio"
)

type playableRequest struct {
	Theme    string            `json:"theme"`
	Style    string            `json:"style"`
	Assets   []studio.AssetRef `json:"assets"`
	Template string            `json:"template,omitempty"`
}

type variationRequest struct {
	Image           string   `json:"image"`
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"reference_images,omitempty"`
}

type inpaintRequest struct {
	Image  string `json:"image"`
	Prompt string `json:"prompt"`
	Mask   string `json:"mask"`
	Size   string `json:"size,omitempty"`
}

type jobResponse struct {
	JobID          string       `json:"job_id"`
	ResultLocation string       `json:"result_location,omitempty"`
	Phase          studio.Phase `json:"phase"`
}

type jobStatusResponse struct {
	JobID       string       `json:"job_id"`
	Phase       studio.Phase `json:"phase"`
	PhaseLabel  string       `json:"phase_label"`
	Message     string       `json:"message,omitempty"`
	Progress    int          `json:"progress"`
	ResultReady bool         `json:"result_ready"`
}

func (a *App) SubmitPlayable(w http.ResponseWriter, r *http.Request) {
	var req playableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Theme == "" || req.Style == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "theme and style required")
		return
	}
	a.submit(w, r, studio.PlayableSpec{
		Theme:    req.Theme,
		Style:    req.Style,
		Assets:   req.Assets,
		Template: req.Template,
	})
}

func (a *App) SubmitVariation(w http.ResponseWriter, r *http.Request) {
	var req variationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be base64 encoded")
		return
	}
	a.submit(w, r, studio.VariationSpec{
		Image:           image,
		Prompt:          req.Prompt,
		ReferenceImages: req.ReferenceImages,
	})
}

func (a *App) SubmitInpaint(w http.ResponseWriter, r *http.Request) {
	var req inpaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be base64 encoded")
		return
	}
	mask, err := base64.StdEncoding.DecodeString(req.Mask)
	if err != nil || len(mask) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "mask must be base64 encoded")
		return
	}
	a.submit(w, r, studio.InpaintSpec{
		Image:  image,
		Prompt: req.Prompt,
		Mask:   mask,
		Size:   req.Size,
	})
}

func (a *App) submit(w http.ResponseWriter, r *http.Request, spec studio.JobSpec) {
	sess, ok := a.currentSession(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	handle, err := a.Studio.Submit(r.Context(), sess.Token(), spec)
	if err != nil {
		a.Logger.Error().Err(err).Str("kind", string(spec.Kind())).Msg("job submission failed")
		a.error(w, upstreamStatus(err), "submission_failed", err.Error())
		return
	}
	sess.SetJob(handle)
	a.json(w, http.StatusAccepted, jobResponse{
		JobID:          handle.JobID,
		ResultLocation: handle.ResultLocation,
		Phase:          studio.PhasePending,
	})
}

// CurrentJob performs one status poll for the session's job. The browser's
// render cycle drives the cadence; the server never loops. On the first
// terminal success the result bundle is fetched and cached in the session.
func (a *App) CurrentJob(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	handle, ok := sess.Job()
	if !ok {
		a.error(w, http.StatusNotFound, "no_job", "no job submitted in this session")
		return
	}

	status, err := a.Studio.Status(r.Context(), sess.Token(), handle.JobID, studio.StatusQuery{})
	if err != nil {
		a.Logger.Error().Err(err).Str("job_id", handle.JobID).Msg("status query failed")
		a.error(w, upstreamStatus(err), "poll_failed", err.Error())
		return
	}
	sess.RecordStatus(status)

	resp := jobStatusResponse{
		JobID:      handle.JobID,
		Phase:      status.Phase,
		PhaseLabel: studio.PhaseLabel(status.Phase),
		Message:    status.Message,
		Progress:   status.Progress,
	}
	if status.Phase.TerminalSuccess() {
		if _, err := sess.Result(r.Context(), a.Studio.FetchResult); err != nil {
			a.Logger.Error().Err(err).Str("job_id", handle.JobID).Msg("result fetch failed")
			a.error(w, upstreamStatus(err), "fetch_failed", err.Error())
			return
		}
		resp.ResultReady = true
	}
	a.json(w, http.StatusOK, resp)
}

// CurrentResult serves the cached bundle for the session's job. It never
// triggers a fetch of its own: rendering twice must not fetch twice, and a
// job that has not reached terminal success has nothing to render.
func (a *App) CurrentResult(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	if _, ok := sess.Job(); !ok {
		a.error(w, http.StatusNotFound, "no_job", "no job submitted in this session")
		return
	}
	status, polled := sess.LastStatus()
	if polled && status.Phase.TerminalFailed() {
		a.error(w, http.StatusConflict, "job_failed", status.Message)
		return
	}
	bundle, ok := sess.CachedResult()
	if !ok {
		a.error(w, http.StatusConflict, "not_ready", "job has not completed yet")
		return
	}
	a.json(w, http.StatusOK, bundle)
}

// upstreamStatus maps a studio client error onto the response code the
// dashboard should relay: auth problems stay 401, everything else is a bad
// gateway since the console itself did nothing wrong.
func upstreamStatus(err error) int {
	var httpErr *studio.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}
