// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/testutil"
)

func TestConfigure(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cfg := configure(t, svc, "M1")
	if cfg.Status != models.StatusActive || cfg.Generation != 1 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if current.MeetingID != "M1" || len(current.Agendas) != 2 {
		t.Errorf("unexpected current meeting: %+v", current)
	}
}

func TestConfigureInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	req := testutil.TestMeeting("M1")
	req.Dates = nil
	if _, err := svc.Configure(context.Background(), req); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("invalid config should not be stored, got %v", err)
	}
}

func TestReconfigureSameMeeting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := configure(t, svc, "M1")

	req := testutil.TestMeeting("M1")
	req.Places = append(req.Places, "Annex")
	second, err := svc.Configure(ctx, req)
	if err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	if second.Generation != first.Generation+1 {
		t.Errorf("Generation = %d, want %d", second.Generation, first.Generation+1)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("reconfiguring the active meeting should keep its creation time")
	}
	if len(second.Places) != 2 {
		t.Errorf("Places = %v", second.Places)
	}
}

func TestReconfigureKeepsVotedOptions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	configure(t, svc, "M1")
	vote(t, svc, "Alice", ballot("Safety", "Mon", "10am", "Hall"))
	vote(t, svc, "Bob", ballot("Safety", "Tue", "10am", "Hall"))
	vote(t, svc, "Carol", ballot("Budget", "Mon", "10am", "Hall"))

	tests := []struct {
		name   string
		modify func(*models.ConfigureMeetingRequest)
	}{
		{"drop voted agenda", func(r *models.ConfigureMeetingRequest) { r.Agendas = []string{"Budget"} }},
		{"drop voted date", func(r *models.ConfigureMeetingRequest) { r.Dates = []string{"Mon"} }},
		{"rename voted place", func(r *models.ConfigureMeetingRequest) { r.Places = []string{"Main Hall"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.TestMeeting("M1")
			tt.modify(&req)
			if _, err := svc.Configure(ctx, req); !errors.Is(err, ErrOptionInUse) {
				t.Errorf("expected ErrOptionInUse, got %v", err)
			}
		})
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if len(current.Agendas) != 2 || current.Generation != 1 {
		t.Errorf("rejected reconfigure should leave the meeting unchanged: %+v", current)
	}

	// Adding options and dropping unvoted ones is still allowed
	req := testutil.TestMeeting("M1")
	req.Agendas = []string{"Safety", "Budget", "Outreach"}
	if _, err := svc.Configure(ctx, req); err != nil {
		t.Fatalf("Configure() with added option failed: %v", err)
	}
	req.Agendas = []string{"Safety", "Budget"}
	if _, err := svc.Configure(ctx, req); err != nil {
		t.Fatalf("Configure() dropping unvoted option failed: %v", err)
	}

	result, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{MeetingID: "M1", Confirm: true})
	if err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	final, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if result.WinningAgenda != "Safety" || !slices.Contains(final.Agendas, result.WinningAgenda) {
		t.Errorf("winner %q is not a configured agenda %v", result.WinningAgenda, final.Agendas)
	}
}

func TestConfigureReplacesMeeting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	configure(t, svc, "M1")
	vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))
	configure(t, svc, "M2")

	// Old ballots stay as history but the same person may vote again
	vote(t, svc, "Alice", ballot("Safety", "Tue", "10am", "Hall"))

	old, err := svc.Ballots(ctx, "M1")
	if err != nil {
		t.Fatalf("Ballots(M1) failed: %v", err)
	}
	if len(old) != 1 || old[0].Agenda != "Budget" {
		t.Errorf("M1 ballots changed: %+v", old)
	}
}

func TestFinalize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	configure(t, svc, "M1")
	vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))
	vote(t, svc, "Bob", ballot("Budget", "Tue", "10am", "Hall"))
	vote(t, svc, "Carol", ballot("Safety", "Mon", "10am", "Hall"))

	result, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{MeetingID: "M1", Confirm: true})
	if err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	want := models.MeetingResult{
		MeetingID:     "M1",
		TotalVotes:    3,
		WinningAgenda: "Budget",
		WinningDate:   "Mon",
		WinningTime:   "10am",
		WinningPlace:  "Hall",
	}
	if !result.SameOutcome(want) {
		t.Errorf("Finalize() = %+v, want %+v", result, want)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if current.Status != models.StatusClosed || current.ClosedAt == nil {
		t.Errorf("meeting should be closed: %+v", current)
	}

	archived, err := svc.Result(ctx, "M1")
	if err != nil {
		t.Fatalf("Result() failed: %v", err)
	}
	if !archived.SameOutcome(want) || !archived.FinalizedAt.Equal(result.FinalizedAt) {
		t.Errorf("archive = %+v, want %+v", archived, result)
	}

	// Closed meetings take no more ballots
	_, err = svc.SubmitBallot(ctx, identity.SelfDeclared("Dave"), ballot("Safety", "Tue", "10am", "Hall"), "")
	if !errors.Is(err, ErrMeetingClosed) {
		t.Errorf("expected ErrMeetingClosed, got %v", err)
	}
}

func TestFinalizeErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{Confirm: true})
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("not confirmed", func(t *testing.T) {
		svc, _ := newTestService(t)
		configure(t, svc, "M1")
		vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))

		_, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{MeetingID: "M1"})
		if !errors.Is(err, ErrConfirmationRequired) {
			t.Errorf("expected ErrConfirmationRequired, got %v", err)
		}
		current, _ := svc.Current(ctx)
		if current.Status != models.StatusActive {
			t.Error("unconfirmed finalize must not close the meeting")
		}
	})

	t.Run("wrong meeting", func(t *testing.T) {
		svc, _ := newTestService(t)
		configure(t, svc, "M1")
		vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))

		_, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{MeetingID: "M0", Confirm: true})
		if !errors.Is(err, ErrMeetingMismatch) {
			t.Errorf("expected ErrMeetingMismatch, got %v", err)
		}
	})

	t.Run("no ballots", func(t *testing.T) {
		svc, _ := newTestService(t)
		configure(t, svc, "M1")

		_, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{Confirm: true})
		if !errors.Is(err, ErrNothingToFinalize) {
			t.Errorf("expected ErrNothingToFinalize, got %v", err)
		}
		if _, err := svc.Result(ctx, "M1"); !errors.Is(err, ErrNoResult) {
			t.Errorf("no archive should be written, got %v", err)
		}
		current, _ := svc.Current(ctx)
		if current.Status != models.StatusActive {
			t.Error("meeting should stay active")
		}
	})
}

func TestFinalizeIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	configure(t, svc, "M1")
	vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))

	first, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{Confirm: true})
	if err != nil {
		t.Fatalf("first Finalize() failed: %v", err)
	}
	second, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{Confirm: true})
	if err != nil {
		t.Fatalf("second Finalize() failed: %v", err)
	}

	if !second.SameOutcome(first) || !second.FinalizedAt.Equal(first.FinalizedAt) {
		t.Errorf("re-finalizing changed the archive: %+v vs %+v", second, first)
	}

	results, err := svc.Results(ctx)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected one archive, got %d", len(results))
	}
}

func TestFinalizedMeetingCannotReopen(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	configure(t, svc, "M1")
	vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))
	if _, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{Confirm: true}); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	_, err := svc.Configure(ctx, testutil.TestMeeting("M1"))
	if !errors.Is(err, ErrMeetingFinalized) {
		t.Errorf("expected ErrMeetingFinalized, got %v", err)
	}

	current, _ := svc.Current(ctx)
	if current.Status != models.StatusClosed {
		t.Error("finalized meeting was reopened")
	}

	// A new meeting id starts a new cycle
	next := configure(t, svc, "M2")
	if next.Status != models.StatusActive {
		t.Errorf("new meeting should be active: %+v", next)
	}
}

func TestResults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Result(ctx, "M1"); !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}

	for _, id := range []string{"M1", "M2"} {
		configure(t, svc, id)
		vote(t, svc, "Alice", ballot("Safety", "Tue", "10am", "Hall"))
		if _, err := svc.Finalize(ctx, models.FinalizeMeetingRequest{MeetingID: id, Confirm: true}); err != nil {
			t.Fatalf("Finalize(%s) failed: %v", id, err)
		}
	}

	results, err := svc.Results(ctx)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.TotalVotes != 1 || r.WinningAgenda != "Safety" {
			t.Errorf("unexpected result: %+v", r)
		}
	}
}
