// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/testutil"
)

func TestSubmitBallot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	configure(t, svc, "M1")

	b, err := svc.SubmitBallot(ctx, identity.SelfDeclared(" Alice "), ballot("Budget", "Mon", "10am", "Hall"), "abcd")
	if err != nil {
		t.Fatalf("SubmitBallot() failed: %v", err)
	}
	if b.ID == "" || b.MeetingID != "M1" || b.DisplayName != "Alice" || b.IPHash != "abcd" {
		t.Errorf("unexpected ballot: %+v", b)
	}
	if b.SubmittedAt.IsZero() {
		t.Error("SubmittedAt not set")
	}

	stored, err := svc.BallotFor(ctx, "M1", identity.SelfDeclared("alice"))
	if err != nil {
		t.Fatalf("BallotFor() failed: %v", err)
	}
	if stored.ID != b.ID || stored.Agenda != "Budget" {
		t.Errorf("stored ballot = %+v, want %+v", stored, b)
	}
}

func TestSubmitBallotNotConfigured(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SubmitBallot(context.Background(), identity.SelfDeclared("Alice"), ballot("Budget", "Mon", "10am", "Hall"), "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSubmitBallotDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	configure(t, svc, "M1")

	vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))

	_, err := svc.SubmitBallot(ctx, identity.SelfDeclared("ALICE"), ballot("Safety", "Tue", "10am", "Hall"), "")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	ballots, err := svc.Ballots(ctx, "M1")
	if err != nil {
		t.Fatalf("Ballots() failed: %v", err)
	}
	if len(ballots) != 1 || ballots[0].Agenda != "Budget" || ballots[0].Date != "Mon" {
		t.Errorf("original ballot changed: %+v", ballots)
	}
}

func TestSubmitBallotNameCollision(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	configure(t, svc, "M1")

	// Two people called Sam: the second is rejected as a duplicate
	vote(t, svc, "Sam", ballot("Budget", "Mon", "10am", "Hall"))
	_, err := svc.SubmitBallot(ctx, identity.SelfDeclared("sam"), ballot("Safety", "Mon", "10am", "Hall"), "")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}

	// A member named Sam is keyed by member id and is unaffected
	if _, err := svc.SubmitBallot(ctx, identity.Member("m-42", "Sam", models.RoleMember), ballot("Safety", "Mon", "10am", "Hall"), ""); err != nil {
		t.Errorf("member ballot rejected: %v", err)
	}
}

func TestSubmitBallotInvalidNotStored(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	configure(t, svc, "M1")

	_, err := svc.SubmitBallot(ctx, identity.SelfDeclared("Alice"), ballot("Parking", "Mon", "10am", "Hall"), "")
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}

	// The rejected attempt does not use up the participant's vote
	vote(t, svc, "Alice", ballot("Budget", "Mon", "10am", "Hall"))
}

func TestBallotForMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BallotFor(context.Background(), "M1", identity.SelfDeclared("nobody"))
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitBallotConcurrentDuplicates(t *testing.T) {
	store := testutil.SetupTestDB(t)
	svc := NewService(store)
	ctx := context.Background()
	if _, err := svc.Configure(ctx, models.ConfigureMeetingRequest{
		MeetingID: "M1",
		Agendas:   []string{"Budget"},
		Dates:     []string{"Mon"},
		Times:     []string{"10am"},
		Places:    []string{"Hall"},
	}); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	const attempts = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitBallot(ctx, identity.SelfDeclared("Alice"), ballot("Budget", "Mon", "10am", "Hall"), "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, ErrAlreadyVoted):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted != 1 || rejected != attempts-1 {
		t.Errorf("accepted %d, rejected %d; want 1 and %d", accepted, rejected, attempts-1)
	}

	n, err := store.Count(ctx, CollectionBallots, docstore.Eq("meeting_id", "M1"))
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("stored %d ballots, want 1", n)
	}
}
