// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/volunteer-portal/auth"
	"github.com/danielhkuo/volunteer-portal/docstore"
)

// guardedCreate stores doc in collection at most once per
// (meeting id, identity key). An existing match is reported as dup.
//
// The equality query catches the common case. Two requests racing past it
// still land on the same deterministic id from documentID, and the
// conditional create lets the store reject the loser.
func (s *Service) guardedCreate(ctx context.Context, collection, meetingID, identityKey string, doc any, dup error) error {
	existing, err := s.store.Query(ctx, collection,
		docstore.Eq("meeting_id", meetingID),
		docstore.Eq("identity_key", identityKey),
	)
	if err != nil {
		return fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if len(existing) > 0 {
		return dup
	}

	id, err := documentID(meetingID, identityKey)
	if err != nil {
		return err
	}

	if err := s.store.Create(ctx, collection, id, doc); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return dup
		}
		return err
	}
	return nil
}

// documentID is the deterministic id of a participant's ballot or
// attendance record for a meeting.
func documentID(meetingID, identityKey string) (string, error) {
	return auth.DocumentKey(meetingID, identityKey)
}
