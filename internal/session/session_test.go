package session

import (
	"context"
	"errors"
	"testing"

	"playconsole/internal/studio"
)

func TestResultFetchesOnce(t *testing.T) {
	store := NewStore()
	sess := store.Create("jane", "tok")
	sess.SetJob(studio.JobHandle{JobID: "abc123", ResultLocation: "https://results.test/r.json"})

	calls := 0
	fetch := func(ctx context.Context, location string) (*studio.ResultBundle, error) {
		calls++
		if location != "https://results.test/r.json" {
			t.Fatalf("location = %q", location)
		}
		return &studio.ResultBundle{Theme: "wild west"}, nil
	}

	for i := 0; i < 3; i++ {
		bundle, err := sess.Result(context.Background(), fetch)
		if err != nil {
			t.Fatalf("Result() call %d: %v", i, err)
		}
		if bundle.Theme != "wild west" {
			t.Fatalf("Theme = %q", bundle.Theme)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}
}

func TestResultFetchFailureLeavesCacheEmpty(t *testing.T) {
	sess := NewStore().Create("jane", "tok")
	sess.SetJob(studio.JobHandle{JobID: "j", ResultLocation: "https://results.test/r.json"})

	boom := errors.New("boom")
	if _, err := sess.Result(context.Background(), func(context.Context, string) (*studio.ResultBundle, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if _, ok := sess.CachedResult(); ok {
		t.Fatalf("cache populated after failed fetch")
	}

	// A later successful fetch still works.
	if _, err := sess.Result(context.Background(), func(context.Context, string) (*studio.ResultBundle, error) {
		return &studio.ResultBundle{Theme: "t"}, nil
	}); err != nil {
		t.Fatalf("retry Result(): %v", err)
	}
}

func TestSetJobResetsState(t *testing.T) {
	sess := NewStore().Create("jane", "tok")
	sess.SetJob(studio.JobHandle{JobID: "one", ResultLocation: "https://results.test/1.json"})
	if _, err := sess.Result(context.Background(), func(context.Context, string) (*studio.ResultBundle, error) {
		return &studio.ResultBundle{Theme: "first"}, nil
	}); err != nil {
		t.Fatalf("Result(): %v", err)
	}
	sess.RecordStatus(studio.JobStatus{Phase: studio.PhaseCompleted, Progress: 100})

	sess.SetJob(studio.JobHandle{JobID: "two"})
	if _, ok := sess.CachedResult(); ok {
		t.Fatalf("cached bundle survived SetJob")
	}
	status, _ := sess.LastStatus()
	if status.Phase != studio.PhasePending {
		t.Fatalf("phase after SetJob = %q, want PENDING", status.Phase)
	}
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := NewStore()
	a := store.Create("jane", "tok-a")
	b := store.Create("june", "tok-b")
	if a.ID() == b.ID() {
		t.Fatalf("duplicate session ids")
	}

	a.SetJob(studio.JobHandle{JobID: "a-job"})
	if _, ok := b.Job(); ok {
		t.Fatalf("job leaked across sessions")
	}

	store.Delete(a.ID())
	if _, ok := store.Get(a.ID()); ok {
		t.Fatalf("session survived Delete")
	}
	if _, ok := store.Get(b.ID()); !ok {
		t.Fatalf("unrelated session removed")
	}
}
