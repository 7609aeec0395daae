package studio

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollInterval matches the cadence the dashboards have always used.
// Job durations are bounded at low minutes and a human is watching the
// progress indicator, so there is no backoff.
const DefaultPollInterval = 2 * time.Second

// PollerOptions tunes one poller. Zero values take defaults.
type PollerOptions struct {
	Interval time.Duration
	Query    StatusQuery
}

// Poller drives the status loop for one submitted job. It owns the fetched
// result bundle: on the first terminal-success observation the bundle is
// downloaded exactly once and cached, no matter how many times rendering is
// triggered afterward.
//
// The remote service exposes no cancel endpoint. Cancelling the context
// stops this loop and nothing else; the remote job keeps running.
type Poller struct {
	client   *Client
	token    string
	handle   JobHandle
	interval time.Duration
	query    StatusQuery

	last    JobStatus
	polled  bool
	bundle  *ResultBundle
	fetched bool
}

// NewPoller creates a poller for a submitted job.
func NewPoller(client *Client, token string, handle JobHandle, opts PollerOptions) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		token:    token,
		handle:   handle,
		interval: interval,
		query:    opts.Query,
	}
}

// Handle returns the job handle this poller observes.
func (p *Poller) Handle() JobHandle { return p.handle }

// Last returns the most recent status observation.
func (p *Poller) Last() JobStatus { return p.last }

// IsTerminal reports whether the last observed phase is terminal.
func (p *Poller) IsTerminal() bool { return p.polled && p.last.Phase.Terminal() }

// Result returns the cached bundle, if it has been fetched.
func (p *Poller) Result() (*ResultBundle, bool) { return p.bundle, p.bundle != nil }

// PollOnce performs a single status query and records the observation. On
// the first terminal-success status it fetches and caches the result bundle.
// A transport failure wraps ErrPoll and leaves the previous observation in
// place; the caller decides whether to stop, and the loop in Run always does.
// A terminal failure phase is a valid observation, not an error.
func (p *Poller) PollOnce(ctx context.Context) (JobStatus, error) {
	status, err := p.client.Status(ctx, p.token, p.handle.JobID, p.query)
	if err != nil {
		return JobStatus{}, err
	}
	p.last = status
	p.polled = true

	if status.Phase.TerminalSuccess() && !p.fetched && p.handle.ResultLocation != "" {
		bundle, err := p.client.FetchResult(ctx, p.handle.ResultLocation)
		if err != nil {
			return status, err
		}
		p.bundle = bundle
		p.fetched = true
	}
	return status, nil
}

// Run polls until a terminal phase, sleeping the fixed interval between a
// status query and the next. onUpdate, when non-nil, observes every status.
// Terminal success returns the cached bundle; terminal failure returns a
// *TerminalFailure carrying the server's message.
func (p *Poller) Run(ctx context.Context, onUpdate func(JobStatus)) (*ResultBundle, error) {
	for {
		status, err := p.PollOnce(ctx)
		if err != nil {
			return nil, err
		}
		if onUpdate != nil {
			onUpdate(status)
		}
		switch {
		case status.Phase.TerminalSuccess():
			if p.bundle == nil {
				return nil, fmt.Errorf("%w: job %s finished but named no result location", ErrFetch, p.handle.JobID)
			}
			return p.bundle, nil
		case status.Phase.TerminalFailed():
			return nil, &TerminalFailure{Phase: status.Phase, Message: status.Message}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
