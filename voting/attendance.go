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

// SubmitAttendance records whether a participant will attend the current
// meeting. It shares the meeting's status gate with ballots but is stored
// and deduplicated separately.
func (s *Service) SubmitAttendance(ctx context.Context, id identity.Identity, req models.SubmitAttendanceRequest) (models.AttendanceRecord, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	rec, err := ValidateAttendance(cfg, id, req)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	rec.SubmittedAt = s.timestamp()
	rec.ID, err = documentID(rec.MeetingID, rec.IdentityKey)
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	if err := s.guardedCreate(ctx, CollectionAttendance, rec.MeetingID, rec.IdentityKey, rec, ErrAlreadyRecorded); err != nil {
		return models.AttendanceRecord{}, err
	}
	return rec, nil
}

// AttendanceSummary counts the answers recorded for the current meeting.
func (s *Service) AttendanceSummary(ctx context.Context) (models.AttendanceSummary, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return models.AttendanceSummary{}, err
	}

	summary := models.AttendanceSummary{
		MeetingID: cfg.MeetingID,
		Declines:  []models.DeclinedReason{},
	}
	err = s.store.Stream(ctx, CollectionAttendance, func(d docstore.Document) error {
		var rec models.AttendanceRecord
		if err := d.Decode(&rec); err != nil {
			return err
		}
		if rec.Attending {
			summary.Attending++
			return nil
		}
		summary.Declining++
		summary.Declines = append(summary.Declines, models.DeclinedReason{
			Name:   rec.DisplayName,
			Reason: rec.Reason,
		})
		return nil
	}, docstore.Eq("meeting_id", cfg.MeetingID))
	if err != nil {
		return models.AttendanceSummary{}, fmt.Errorf("failed to read attendance: %w", err)
	}
	return summary, nil
}
