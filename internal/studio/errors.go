package studio

import (
	"errors"
	"fmt"
)

var (
	ErrAuth       = errors.New("authentication rejected")
	ErrSubmission = errors.New("job submission failed")
	ErrPoll       = errors.New("status query failed")
	ErrFetch      = errors.New("result fetch failed")
	ErrValidation = errors.New("validation request failed")
)

// HTTPError preserves the upstream status code and raw response body so the
// surface can show the service's own diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

// TerminalFailure means the remote job itself ended in a failure or
// cancellation phase. It is an expected outcome, not a transport problem.
type TerminalFailure struct {
	Phase   Phase
	Message string
}

func (e *TerminalFailure) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job ended in phase %s", e.Phase)
	}
	return fmt.Sprintf("job ended in phase %s: %s", e.Phase, e.Message)
}
