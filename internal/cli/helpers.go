package cli

import (
	"context"
	"errors"
	"fmt"

	"playconsole/internal/cliconfig"
	"playconsole/internal/studio"
)

// loadSession loads the saved config and fails when no token is cached.
func loadSession() (*cliconfig.Config, error) {
	cfg, err := cliconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !cfg.IsLoggedIn() {
		return nil, fmt.Errorf("not logged in, run 'playctl login' first")
	}
	return cfg, nil
}

func newStudioClient(cfg *cliconfig.Config) *studio.Client {
	return studio.NewClient(studio.Options{BaseURL: cfg.APIBaseURL})
}

// followJob polls a submitted job at the fixed cadence, printing each status
// line, and renders the bundle on success. A terminal failure prints the
// server's message and returns an error so the process exits non-zero.
func followJob(ctx context.Context, client *studio.Client, cfg *cliconfig.Config, handle studio.JobHandle) error {
	poller := studio.NewPoller(client, cfg.AccessToken, handle, studio.PollerOptions{})
	bundle, err := poller.Run(ctx, func(status studio.JobStatus) {
		fmt.Printf("%s  %d%%\n", studio.PhaseLabel(status.Phase), status.Progress)
	})
	if err != nil {
		var failure *studio.TerminalFailure
		if errors.As(err, &failure) {
			return fmt.Errorf("job %s failed: %s", handle.JobID, failure.Message)
		}
		return err
	}
	fmt.Println()
	fmt.Print(studio.RenderText(bundle))
	return nil
}

func rememberSubmission(cfg *cliconfig.Config, handle studio.JobHandle) {
	cfg.RememberJob(handle.JobID, handle.ResultLocation)
	if err := cfg.Save(); err != nil {
		fmt.Printf("Warning: could not save job reference: %v\n", err)
	}
}
