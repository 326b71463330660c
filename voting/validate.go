// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/models"
)

// ValidateBallot checks a submission against the current configuration and
// returns the ballot to store. The option lists offered to the participant
// are not trusted: every selection is re-checked here.
func ValidateBallot(cfg models.MeetingConfig, id identity.Identity, req models.SubmitBallotRequest) (models.Ballot, error) {
	if cfg.Status != models.StatusActive {
		return models.Ballot{}, ErrMeetingClosed
	}
	if !id.Valid() {
		return models.Ballot{}, ErrMissingIdentity
	}

	b := models.Ballot{
		MeetingID:     cfg.MeetingID,
		IdentityKey:   id.Key,
		DisplayName:   id.DisplayName,
		Authenticated: id.Authenticated,
		Agenda:        strings.TrimSpace(req.Agenda),
		Date:          strings.TrimSpace(req.Date),
		Time:          strings.TrimSpace(req.Time),
		Place:         strings.TrimSpace(req.Place),
	}

	for _, field := range models.BallotFields {
		value := b.Selection(field)
		if value == "" {
			return models.Ballot{}, fmt.Errorf("%w: %s is required", ErrInvalidSelection, field)
		}
		if !slices.Contains(cfg.Options(field), value) {
			return models.Ballot{}, fmt.Errorf("%w: %s %q", ErrInvalidSelection, field, value)
		}
	}

	return b, nil
}

// ValidateAttendance applies the same gate as ballots plus the reason rule.
func ValidateAttendance(cfg models.MeetingConfig, id identity.Identity, req models.SubmitAttendanceRequest) (models.AttendanceRecord, error) {
	if cfg.Status != models.StatusActive {
		return models.AttendanceRecord{}, ErrMeetingClosed
	}
	if !id.Valid() {
		return models.AttendanceRecord{}, ErrMissingIdentity
	}

	reason := strings.TrimSpace(req.Reason)
	if !req.Attending && reason == "" {
		return models.AttendanceRecord{}, ErrMissingReason
	}
	if req.Attending {
		reason = ""
	}

	return models.AttendanceRecord{
		MeetingID:     cfg.MeetingID,
		IdentityKey:   id.Key,
		DisplayName:   id.DisplayName,
		Authenticated: id.Authenticated,
		Attending:     req.Attending,
		Reason:        reason,
	}, nil
}

// normalizeConfig trims option lists, drops blanks and repeats, and checks
// that every field can be voted on.
func normalizeConfig(req models.ConfigureMeetingRequest) (models.ConfigureMeetingRequest, error) {
	out := models.ConfigureMeetingRequest{
		MeetingID: strings.TrimSpace(req.MeetingID),
		Agendas:   cleanOptions(req.Agendas),
		Dates:     cleanOptions(req.Dates),
		Times:     cleanOptions(req.Times),
		Places:    cleanOptions(req.Places),
	}

	if out.MeetingID == "" {
		return out, fmt.Errorf("%w: meeting_id is required", ErrInvalidConfig)
	}
	for _, f := range []struct {
		name string
		opts []string
	}{
		{"agendas", out.Agendas},
		{"dates", out.Dates},
		{"times", out.Times},
		{"places", out.Places},
	} {
		if len(f.opts) == 0 {
			return out, fmt.Errorf("%w: %s needs at least one option", ErrInvalidConfig, f.name)
		}
	}
	return out, nil
}

func cleanOptions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, opt := range in {
		opt = strings.TrimSpace(opt)
		if opt == "" || slices.Contains(out, opt) {
			continue
		}
		out = append(out, opt)
	}
	return out
}
