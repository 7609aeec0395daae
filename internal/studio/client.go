package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"playconsole/internal/infra"
)

// Options configures the studio API client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the hosted content-generation API. It
// holds no job state; tokens are passed per call because they belong to the
// session, not the transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://ai.dev.craftsmanplus.com/api"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Submit posts one job spec and returns its handle. A non-2xx response or
// transport error wraps ErrSubmission with the raw body attached; the client
// never retries, since resubmitting would create a duplicate paid job.
func (c *Client) Submit(ctx context.Context, token string, spec JobSpec) (JobHandle, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, c.baseURL+spec.endpoint(), token, spec.body(), ErrSubmission)
	if err != nil {
		return JobHandle{}, err
	}
	var decoded submitResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return JobHandle{}, fmt.Errorf("%w: decode response: %v", ErrSubmission, err)
	}
	if decoded.ID == "" {
		return JobHandle{}, fmt.Errorf("%w: response carried no job id", ErrSubmission)
	}
	c.logger.Debug().
		Str("job_id", decoded.ID).
		Str("kind", string(spec.Kind())).
		Msg("studio: job submitted")
	return JobHandle{JobID: decoded.ID, ResultLocation: decoded.URL}, nil
}

// Status queries one job's current phase, message, and progress. Progress is
// normalized at decode time. Errors wrap ErrPoll.
func (c *Client) Status(ctx context.Context, token, jobID string, q StatusQuery) (JobStatus, error) {
	endpoint := c.baseURL + "/jobs/" + url.PathEscape(jobID)
	if params := q.values(); len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	raw, err := c.doJSON(ctx, http.MethodGet, endpoint, token, nil, ErrPoll)
	if err != nil {
		return JobStatus{}, err
	}
	var status JobStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return JobStatus{}, fmt.Errorf("%w: decode response: %v", ErrPoll, err)
	}
	return status, nil
}

func (q StatusQuery) values() url.Values {
	params := url.Values{}
	if q.JobType != "" {
		params.Set("job_type", q.JobType)
	}
	if q.InferenceID != "" {
		params.Set("inference_id", q.InferenceID)
	}
	return params
}

// FetchResult downloads the final artifact bundle from the location the
// submit response named. The location is pre-signed; no auth header is sent.
func (c *Client) FetchResult(ctx context.Context, location string) (*ResultBundle, error) {
	parsed, err := url.Parse(strings.TrimSpace(location))
	if err != nil || parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: invalid result location: %s", ErrFetch, location)
	}
	raw, err := c.doJSON(ctx, http.MethodGet, parsed.String(), "", nil, ErrFetch)
	if err != nil {
		return nil, err
	}
	var bundle ResultBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetch, err)
	}
	return &bundle, nil
}

// Validate checks one image against brand guidelines in a single round trip.
// Text-based validation without guidelines would be an empty request, so the
// client falls back to vision mode before calling.
func (c *Client) Validate(ctx context.Context, token string, req ValidationRequest) (*ValidationResult, error) {
	if len(req.Image) == 0 {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}
	if req.Brand == "" {
		return nil, fmt.Errorf("%w: brand is required", ErrValidation)
	}
	vision := req.Vision
	if !vision && len(req.Guidelines) == 0 {
		c.logger.Warn().Str("brand", req.Brand).Msg("studio: no guidelines supplied, falling back to vision validation")
		vision = true
	}
	payload := validationPayload{
		Image:  encodeImage(req.Image),
		Brand:  req.Brand,
		Vision: vision,
		User:   req.User,
	}
	if !vision {
		payload.Guidelines = req.Guidelines
	}
	raw, err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/images/validate", token, payload, ErrValidation)
	if err != nil {
		return nil, err
	}
	var result ValidationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrValidation, err)
	}
	return &result, nil
}

type validationPayload struct {
	Image      string   `json:"image"`
	Brand      string   `json:"brand"`
	Vision     bool     `json:"vision"`
	User       string   `json:"user"`
	Guidelines []string `json:"guidelines,omitempty"`
}

// Cost fetches the account cost report. Errors wrap ErrFetch.
func (c *Client) Cost(ctx context.Context, token string, q CostQuery) (*CostReport, error) {
	params := url.Values{}
	if q.Username != "" {
		params.Set("username", q.Username)
	}
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}
	if q.YearMonth != "" {
		params.Set("year_month", q.YearMonth)
	}
	endpoint := c.baseURL + "/cost"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	raw, err := c.doJSON(ctx, http.MethodGet, endpoint, token, nil, ErrFetch)
	if err != nil {
		return nil, err
	}
	var report CostReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetch, err)
	}
	return &report, nil
}

// doJSON performs one request and returns the raw body, wrapping any failure
// in the caller's sentinel. The service takes the Cognito access token as-is
// in the Authorization header, no Bearer prefix.
func (c *Client) doJSON(ctx context.Context, method, endpoint, token string, body any, sentinel error) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", sentinel, err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", sentinel, err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", sentinel, err)
	}
	if resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		return nil, fmt.Errorf("%w: %w", sentinel, httpErr)
	}
	return raw, nil
}

func encodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ResponseBody extracts the raw upstream body from a client error, when one
// was captured.
func ResponseBody(err error) (string, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Body, true
	}
	return "", false
}
