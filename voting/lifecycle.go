// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/models"
)

// Current returns the singleton meeting configuration. It is the only way
// the rest of the application reads "the active meeting".
func (s *Service) Current(ctx context.Context) (models.MeetingConfig, error) {
	var cfg models.MeetingConfig
	err := s.store.Get(ctx, CollectionConfig, currentConfigID, &cfg)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.MeetingConfig{}, ErrNotConfigured
	}
	if err != nil {
		return models.MeetingConfig{}, fmt.Errorf("failed to load meeting: %w", err)
	}
	return cfg, nil
}

// Configure makes req the current, active meeting, replacing whatever was
// configured before. Ballots for a replaced meeting stay in storage as
// history. A meeting id that has been finalized cannot be configured again.
// Reconfiguring the active meeting may add options but not drop one that a
// ballot already selected.
func (s *Service) Configure(ctx context.Context, req models.ConfigureMeetingRequest) (models.MeetingConfig, error) {
	req, err := normalizeConfig(req)
	if err != nil {
		return models.MeetingConfig{}, err
	}

	if _, err := s.Result(ctx, req.MeetingID); err == nil {
		return models.MeetingConfig{}, fmt.Errorf("%w: %s", ErrMeetingFinalized, req.MeetingID)
	} else if !errors.Is(err, ErrNoResult) {
		return models.MeetingConfig{}, err
	}

	prev, err := s.Current(ctx)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return models.MeetingConfig{}, err
	}

	now := s.timestamp()
	cfg := models.MeetingConfig{
		MeetingID:  req.MeetingID,
		Agendas:    req.Agendas,
		Dates:      req.Dates,
		Times:      req.Times,
		Places:     req.Places,
		Status:     models.StatusActive,
		Generation: prev.Generation + 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Same active meeting: update the options, keep its creation time
	if prev.MeetingID == cfg.MeetingID && prev.Status == models.StatusActive {
		if err := s.checkOptionsInUse(ctx, cfg); err != nil {
			return models.MeetingConfig{}, err
		}
		cfg.CreatedAt = prev.CreatedAt
	}

	if err := s.store.Set(ctx, CollectionConfig, currentConfigID, cfg); err != nil {
		return models.MeetingConfig{}, fmt.Errorf("failed to save meeting: %w", err)
	}

	slog.Info("meeting configured", "meeting_id", cfg.MeetingID, "generation", cfg.Generation,
		"replaced", prev.MeetingID)
	return cfg, nil
}

// checkOptionsInUse rejects cfg if a stored ballot for the meeting selected
// an option cfg no longer offers.
func (s *Service) checkOptionsInUse(ctx context.Context, cfg models.MeetingConfig) error {
	ballots, err := s.Ballots(ctx, cfg.MeetingID)
	if err != nil {
		return err
	}
	for _, b := range ballots {
		for _, f := range []struct {
			field, value string
			opts         []string
		}{
			{models.FieldAgenda, b.Agenda, cfg.Agendas},
			{models.FieldDate, b.Date, cfg.Dates},
			{models.FieldTime, b.Time, cfg.Times},
			{models.FieldPlace, b.Place, cfg.Places},
		} {
			if !slices.Contains(f.opts, f.value) {
				return fmt.Errorf("%w: %s %q", ErrOptionInUse, f.field, f.value)
			}
		}
	}
	return nil
}

// Finalize closes the current meeting and archives the per-field winners.
//
// The archive is written before the status flips. If the process dies in
// between, the meeting is still active with an archive present, and running
// Finalize again rewrites the same archive.
func (s *Service) Finalize(ctx context.Context, req models.FinalizeMeetingRequest) (models.MeetingResult, error) {
	if !req.Confirm {
		return models.MeetingResult{}, ErrConfirmationRequired
	}

	cfg, err := s.Current(ctx)
	if err != nil {
		return models.MeetingResult{}, err
	}

	if id := strings.TrimSpace(req.MeetingID); id != "" && id != cfg.MeetingID {
		return models.MeetingResult{}, fmt.Errorf("%w: got %s, current is %s", ErrMeetingMismatch, id, cfg.MeetingID)
	}

	tally, err := s.Tally(ctx, cfg.MeetingID)
	if err != nil {
		return models.MeetingResult{}, err
	}
	if tally.TotalBallots == 0 {
		return models.MeetingResult{}, ErrNothingToFinalize
	}

	result := models.MeetingResult{
		MeetingID:   cfg.MeetingID,
		TotalVotes:  tally.TotalBallots,
		FinalizedAt: s.timestamp(),
	}
	for _, w := range []struct {
		field string
		dst   *string
	}{
		{models.FieldAgenda, &result.WinningAgenda},
		{models.FieldDate, &result.WinningDate},
		{models.FieldTime, &result.WinningTime},
		{models.FieldPlace, &result.WinningPlace},
	} {
		value, ok := tally.Field(w.field).Winner()
		if !ok {
			return models.MeetingResult{}, fmt.Errorf("%w: %s", ErrNoWinner, w.field)
		}
		*w.dst = value
	}

	// Re-finalizing an unchanged meeting keeps the archive byte-for-byte
	if prev, err := s.Result(ctx, cfg.MeetingID); err == nil && prev.SameOutcome(result) {
		result.FinalizedAt = prev.FinalizedAt
	} else if err != nil && !errors.Is(err, ErrNoResult) {
		return models.MeetingResult{}, err
	}

	if err := s.store.Set(ctx, CollectionResults, cfg.MeetingID, result); err != nil {
		return models.MeetingResult{}, fmt.Errorf("failed to archive result: %w", err)
	}

	if cfg.Status != models.StatusClosed {
		closedAt := result.FinalizedAt
		cfg.Status = models.StatusClosed
		cfg.ClosedAt = &closedAt
		cfg.UpdatedAt = s.timestamp()
		if err := s.store.Set(ctx, CollectionConfig, currentConfigID, cfg); err != nil {
			return models.MeetingResult{}, fmt.Errorf("failed to close meeting: %w", err)
		}
	}

	slog.Info("meeting finalized", "meeting_id", result.MeetingID, "total_votes", result.TotalVotes,
		"agenda", result.WinningAgenda, "date", result.WinningDate,
		"time", result.WinningTime, "place", result.WinningPlace)
	return result, nil
}

// Result returns the archive for a meeting, or ErrNoResult.
func (s *Service) Result(ctx context.Context, meetingID string) (models.MeetingResult, error) {
	var r models.MeetingResult
	err := s.store.Get(ctx, CollectionResults, meetingID, &r)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.MeetingResult{}, ErrNoResult
	}
	if err != nil {
		return models.MeetingResult{}, fmt.Errorf("failed to load result: %w", err)
	}
	return r, nil
}

// Results returns every archived meeting, oldest first.
func (s *Service) Results(ctx context.Context) ([]models.MeetingResult, error) {
	results := []models.MeetingResult{}
	err := s.store.Stream(ctx, CollectionResults, func(d docstore.Document) error {
		var r models.MeetingResult
		if err := d.Decode(&r); err != nil {
			return err
		}
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}
