// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/models"
)

// SubmitBallot validates and stores one ballot for the current meeting.
// ipHash is recorded for auditing only and may be empty.
func (s *Service) SubmitBallot(ctx context.Context, id identity.Identity, req models.SubmitBallotRequest, ipHash string) (models.Ballot, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return models.Ballot{}, err
	}

	b, err := ValidateBallot(cfg, id, req)
	if err != nil {
		return models.Ballot{}, err
	}
	b.SubmittedAt = s.timestamp()
	b.IPHash = ipHash

	// The id is deterministic, so it can be filled in before the write
	b.ID, err = documentID(b.MeetingID, b.IdentityKey)
	if err != nil {
		return models.Ballot{}, err
	}

	if err := s.guardedCreate(ctx, CollectionBallots, b.MeetingID, b.IdentityKey, b, ErrAlreadyVoted); err != nil {
		return models.Ballot{}, err
	}
	return b, nil
}

// BallotFor returns the ballot an identity cast in a meeting, or
// docstore.ErrNotFound.
func (s *Service) BallotFor(ctx context.Context, meetingID string, id identity.Identity) (models.Ballot, error) {
	key, err := documentID(meetingID, id.Key)
	if err != nil {
		return models.Ballot{}, fmt.Errorf("%w: %v", docstore.ErrNotFound, err)
	}

	var b models.Ballot
	if err := s.store.Get(ctx, CollectionBallots, key, &b); err != nil {
		return models.Ballot{}, err
	}
	return b, nil
}

// Ballots returns every ballot stored for a meeting, oldest first.
func (s *Service) Ballots(ctx context.Context, meetingID string) ([]models.Ballot, error) {
	docs, err := s.store.Query(ctx, CollectionBallots, docstore.Eq("meeting_id", meetingID))
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}

	ballots := make([]models.Ballot, 0, len(docs))
	for _, d := range docs {
		var b models.Ballot
		if err := d.Decode(&b); err != nil {
			return nil, err
		}
		ballots = append(ballots, b)
	}
	return ballots, nil
}
