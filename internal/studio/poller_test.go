package studio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

// scriptedTransport serves a fixed sequence of status responses for one job
// and counts result fetches.
type scriptedTransport struct {
	mu           sync.Mutex
	statuses     []map[string]any
	statusCalls  int
	resultCalls  int
	result       map[string]any
	resultStatus int
	lastPollTime time.Time
	pollGaps     []time.Duration
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.HasPrefix(req.URL.Path, "/api/jobs/") {
		now := time.Now()
		if !s.lastPollTime.IsZero() {
			s.pollGaps = append(s.pollGaps, now.Sub(s.lastPollTime))
		}
		s.lastPollTime = now

		idx := s.statusCalls
		if idx >= len(s.statuses) {
			idx = len(s.statuses) - 1
		}
		s.statusCalls++
		return jsonResponse(http.StatusOK, s.statuses[idx]), nil
	}
	if strings.Contains(req.URL.Host, "results.test") {
		s.resultCalls++
		status := s.resultStatus
		if status == 0 {
			status = http.StatusOK
		}
		return jsonResponse(status, s.result), nil
	}
	return jsonResponse(http.StatusNotFound, map[string]any{"error": "not found"}), nil
}

func jsonResponse(status int, payload any) *http.Response {
	body, _ := json.Marshal(payload)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}
}

func newScriptedPoller(t *testing.T, transport *scriptedTransport, interval time.Duration) *Poller {
	t.Helper()
	client := NewClient(Options{
		BaseURL:    "https://studio.test/api",
		HTTPClient: &http.Client{Transport: transport},
	})
	handle := JobHandle{JobID: "abc123", ResultLocation: "https://results.test/abc123/result.json"}
	return NewPoller(client, "tok", handle, PollerOptions{Interval: interval})
}

func TestRunPollsUntilCompletedAndFetchesOnce(t *testing.T) {
	transport := &scriptedTransport{
		statuses: []map[string]any{
			{"phase": "PENDING", "progress": 0},
			{"phase": "IN_PROGRESS", "progress": 40, "message": "rendering"},
			{"phase": "COMPLETED", "progress": 100},
		},
		result: map[string]any{
			"theme": "wild west",
			"style": "cartoon",
			"assets": []map[string]any{
				{"id": "fdsj2", "results": []map[string]any{
					{"prompt": "a dusty saloon", "urls": []string{"https://cdn.test/1.png"}},
				}},
			},
		},
	}
	poller := newScriptedPoller(t, transport, 5*time.Millisecond)

	var seen []JobStatus
	bundle, err := poller.Run(context.Background(), func(s JobStatus) { seen = append(seen, s) })
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if bundle.Theme != "wild west" {
		t.Fatalf("Theme = %q, want wild west", bundle.Theme)
	}
	if len(seen) != 3 {
		t.Fatalf("observed %d statuses, want 3", len(seen))
	}
	if seen[1].Progress != 40 {
		t.Fatalf("second progress = %d, want 40", seen[1].Progress)
	}
	if transport.resultCalls != 1 {
		t.Fatalf("result fetched %d times, want 1", transport.resultCalls)
	}

	// Another poll after terminal success must not refetch.
	if _, err := poller.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce() after success: %v", err)
	}
	if transport.resultCalls != 1 {
		t.Fatalf("result refetched: %d calls", transport.resultCalls)
	}
	if !poller.IsTerminal() {
		t.Fatalf("IsTerminal() = false after COMPLETED")
	}
}

func TestRunWaitsFixedIntervalBetweenPolls(t *testing.T) {
	transport := &scriptedTransport{
		statuses: []map[string]any{
			{"phase": "IN_PROGRESS", "progress": 10},
			{"phase": "IN_PROGRESS", "progress": 50},
			{"phase": "COMPLETED", "progress": 100},
		},
		result: map[string]any{"theme": "t", "style": "s"},
	}
	interval := 30 * time.Millisecond
	poller := newScriptedPoller(t, transport, interval)

	if _, err := poller.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(transport.pollGaps) != 2 {
		t.Fatalf("poll gaps = %d, want 2", len(transport.pollGaps))
	}
	for i, gap := range transport.pollGaps {
		if gap < interval {
			t.Fatalf("gap %d = %s, want >= %s", i, gap, interval)
		}
	}
}

func TestRunTerminalFailureSkipsFetch(t *testing.T) {
	transport := &scriptedTransport{
		statuses: []map[string]any{
			{"phase": "FAILED", "message": "quota exceeded"},
		},
	}
	poller := newScriptedPoller(t, transport, time.Millisecond)

	_, err := poller.Run(context.Background(), nil)
	var failure *TerminalFailure
	if !errors.As(err, &failure) {
		t.Fatalf("error = %v, want *TerminalFailure", err)
	}
	if failure.Message != "quota exceeded" {
		t.Fatalf("Message = %q, want quota exceeded", failure.Message)
	}
	if failure.Phase != PhaseFailed {
		t.Fatalf("Phase = %q", failure.Phase)
	}
	if transport.resultCalls != 0 {
		t.Fatalf("result fetched on failure: %d calls", transport.resultCalls)
	}
}

func TestRunStopsOnTransportError(t *testing.T) {
	client := NewClient(Options{
		BaseURL: "https://studio.test/api",
		HTTPClient: &http.Client{Transport: failingTransport{}},
	})
	poller := NewPoller(client, "tok", JobHandle{JobID: "abc123"}, PollerOptions{Interval: time.Millisecond})

	_, err := poller.Run(context.Background(), nil)
	if !errors.Is(err, ErrPoll) {
		t.Fatalf("error = %v, want ErrPoll", err)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	transport := &scriptedTransport{
		statuses: []map[string]any{{"phase": "IN_PROGRESS", "progress": 10}},
	}
	poller := newScriptedPoller(t, transport, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := poller.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestCanceledPhaseIsTerminalFailure(t *testing.T) {
	transport := &scriptedTransport{
		statuses: []map[string]any{{"phase": "CANCELED", "message": "operator canceled"}},
	}
	poller := newScriptedPoller(t, transport, time.Millisecond)

	_, err := poller.Run(context.Background(), nil)
	var failure *TerminalFailure
	if !errors.As(err, &failure) || failure.Phase != PhaseCanceled {
		t.Fatalf("error = %v, want CANCELED terminal failure", err)
	}
}

func TestUnknownPhaseKeepsPolling(t *testing.T) {
	transport := &scriptedTransport{
		statuses: []map[string]any{
			{"phase": "WARMING_UP", "progress": 0},
			{"phase": "COMPLETED", "progress": 100},
		},
		result: map[string]any{"theme": "t", "style": "s"},
	}
	poller := newScriptedPoller(t, transport, time.Millisecond)

	if _, err := poller.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if transport.statusCalls != 2 {
		t.Fatalf("status calls = %d, want 2", transport.statusCalls)
	}
}

func TestNormalizeProgress(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{0, 0},
		{0.4, 40},
		{1, 100},
		{40, 40},
		{100, 100},
		{140, 100},
		{-3, 0},
		{0.995, 100},
	}
	for _, tc := range tests {
		if got := NormalizeProgress(tc.raw); got != tc.want {
			t.Fatalf("NormalizeProgress(%v) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
