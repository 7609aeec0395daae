package studio

import (
	"encoding/json"
	"math"
)

// Phase is the server-reported lifecycle state of a submitted job.
type Phase string

const (
	PhasePending    Phase = "PENDING"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseCompleted  Phase = "COMPLETED"
	PhaseSuccess    Phase = "SUCCESS"
	PhaseFailed     Phase = "FAILED"
	PhaseFailure    Phase = "FAILURE"
	PhaseCanceled   Phase = "CANCELED"
)

// TerminalSuccess reports whether the phase means the job finished and a
// result bundle is available.
func (p Phase) TerminalSuccess() bool {
	return p == PhaseCompleted || p == PhaseSuccess
}

// TerminalFailed reports whether the phase means the job ended without a
// result. Cancellation counts: no further status change will occur.
func (p Phase) TerminalFailed() bool {
	return p == PhaseFailed || p == PhaseFailure || p == PhaseCanceled
}

// Terminal reports whether no further status change will occur. Phases the
// server has not taught us about are treated as non-terminal so polling
// keeps going.
func (p Phase) Terminal() bool {
	return p.TerminalSuccess() || p.TerminalFailed()
}

// JobKind discriminates the three job spec variants.
type JobKind string

const (
	KindPlayable  JobKind = "playable-generation"
	KindVariation JobKind = "image-variation"
	KindInpaint   JobKind = "inpainting"
)

// JobSpec is the tagged union of submittable job payloads. Each variant
// knows its endpoint path and wire body.
type JobSpec interface {
	Kind() JobKind
	endpoint() string
	body() any
}

// AssetRef points the generator at an existing studio asset.
type AssetRef struct {
	ID   string   `json:"id"`
	Type string   `json:"type,omitempty"`
	URLs []string `json:"urls,omitempty"`
}

// PlayableSpec requests a full playable content generation run.
type PlayableSpec struct {
	Theme    string
	Style    string
	Assets   []AssetRef
	Template string
}

func (s PlayableSpec) Kind() JobKind    { return KindPlayable }
func (s PlayableSpec) endpoint() string { return "/playable/generate" }

func (s PlayableSpec) body() any {
	return playablePayload{
		Theme:    s.Theme,
		Style:    s.Style,
		Assets:   s.Assets,
		Template: s.Template,
	}
}

type playablePayload struct {
	Theme    string     `json:"theme"`
	Style    string     `json:"style"`
	Assets   []AssetRef `json:"assets"`
	Template string     `json:"template,omitempty"`
}

// VariationSpec requests variations of an existing image. Image content is
// transmitted base64-encoded.
type VariationSpec struct {
	Image           []byte
	Prompt          string
	ReferenceImages []string
}

func (s VariationSpec) Kind() JobKind    { return KindVariation }
func (s VariationSpec) endpoint() string { return "/images/variation" }

func (s VariationSpec) body() any {
	return variationPayload{
		Image:           encodeImage(s.Image),
		Prompt:          s.Prompt,
		ReferenceImages: s.ReferenceImages,
	}
}

type variationPayload struct {
	Image           string   `json:"image"`
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"reference_images"`
}

// InpaintSpec requests a masked edit of an existing image.
type InpaintSpec struct {
	Image  []byte
	Prompt string
	Mask   []byte
	Size   string
}

func (s InpaintSpec) Kind() JobKind    { return KindInpaint }
func (s InpaintSpec) endpoint() string { return "/images/edit" }

func (s InpaintSpec) body() any {
	return inpaintPayload{
		Image:  encodeImage(s.Image),
		Prompt: s.Prompt,
		Mask:   encodeImage(s.Mask),
		Size:   s.Size,
	}
}

type inpaintPayload struct {
	Image  string `json:"image"`
	Prompt string `json:"prompt"`
	Mask   string `json:"mask"`
	Size   string `json:"size,omitempty"`
}

// JobHandle identifies a submitted job. Created once from the submit
// response and immutable afterward.
type JobHandle struct {
	JobID          string `json:"job_id"`
	ResultLocation string `json:"result_location,omitempty"`
}

// submitResponse is the wire shape of a submit call: the service returns the
// job id under "id" and the result location under "url".
type submitResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// JobStatus is one poll observation. Each new response supersedes the
// previous one; nothing is merged.
type JobStatus struct {
	Phase    Phase  `json:"phase"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// UnmarshalJSON normalizes progress at the wire boundary, since endpoint
// variants disagree about its scale.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var wire struct {
		Phase    string  `json:"phase"`
		Message  string  `json:"message"`
		Progress float64 `json:"progress"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Phase = Phase(wire.Phase)
	s.Message = wire.Message
	s.Progress = NormalizeProgress(wire.Progress)
	return nil
}

// NormalizeProgress coerces a server-reported progress value into an integer
// percentage. Some endpoint variants report a 0-1 fraction, others an
// already-scaled 0-100 number; values in (0, 1] are treated as fractions and
// everything is clamped to [0, 100].
func NormalizeProgress(raw float64) int {
	if raw > 0 && raw <= 1 {
		raw *= 100
	}
	p := int(math.Round(raw))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

// ResultBundle is the final artifact payload fetched from a job's result
// location after terminal success. Immutable once fetched.
type ResultBundle struct {
	Theme  string        `json:"theme"`
	Style  string        `json:"style"`
	Assets []AssetResult `json:"assets"`
	Cost   *Cost         `json:"cost,omitempty"`
}

// AssetResult groups the generations produced for one input asset, in
// server order.
type AssetResult struct {
	ID      string       `json:"id"`
	Results []Generation `json:"results"`
}

// Generation is a single generated artifact. Prompt is empty for image-only
// results.
type Generation struct {
	Prompt string   `json:"prompt,omitempty"`
	URLs   []string `json:"urls"`
}

// Cost is the billing breakdown attached to a result bundle. Some responses
// omit it entirely.
type Cost struct {
	TotalCost     float64        `json:"totalCost"`
	Currency      string         `json:"currency"`
	CostBreakdown map[string]any `json:"costBreakdown,omitempty"`
}

// ValidationRequest carries one image to check against brand guidelines.
// Guidelines holds extracted page texts and is only sent for text-based
// validation.
type ValidationRequest struct {
	Image      []byte
	Brand      string
	Vision     bool
	User       string
	Guidelines []string
}

// ValidationResult is the compliance verdict for one validated image.
type ValidationResult struct {
	Compliant  bool     `json:"compliant"`
	Compliance *float64 `json:"compliance,omitempty"`
	Reasons    []string `json:"reasons"`
}

// CostQuery filters the account cost report. Zero-value fields are omitted
// from the request.
type CostQuery struct {
	Username  string
	StartDate string
	EndDate   string
	YearMonth string
}

// CostReport is the response of the cost endpoint.
type CostReport struct {
	Username string `json:"username,omitempty"`
	Cost
}

// StatusQuery carries the optional discriminators some status endpoint
// variants expect.
type StatusQuery struct {
	JobType     string
	InferenceID string
}
