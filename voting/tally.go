// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/models"
)

// Tally counts every ballot stored for meetingID, per field. Values appear in
// the order they were first seen, which is also the tie-break order used by
// FieldTally.Winner.
func (s *Service) Tally(ctx context.Context, meetingID string) (models.Tally, error) {
	var ballots []models.Ballot
	err := s.store.Stream(ctx, CollectionBallots, func(d docstore.Document) error {
		var b models.Ballot
		if err := d.Decode(&b); err != nil {
			return err
		}
		ballots = append(ballots, b)
		return nil
	}, docstore.Eq("meeting_id", meetingID))
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to read ballots: %w", err)
	}
	// Storage order is only millisecond precise
	slices.SortStableFunc(ballots, func(a, b models.Ballot) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})

	return TallyBallots(meetingID, ballots), nil
}

// TallyBallots aggregates ballots into per-field counts and percentages.
func TallyBallots(meetingID string, ballots []models.Ballot) models.Tally {
	t := models.Tally{
		MeetingID:    meetingID,
		TotalBallots: len(ballots),
		NoData:       len(ballots) == 0,
		Fields:       make([]models.FieldTally, 0, len(models.BallotFields)),
	}

	for _, field := range models.BallotFields {
		ft := models.FieldTally{Field: field, Values: []models.ValueCount{}}
		index := make(map[string]int)

		for _, b := range ballots {
			value := b.Selection(field)
			if value == "" {
				continue
			}
			i, seen := index[value]
			if !seen {
				i = len(ft.Values)
				index[value] = i
				ft.Values = append(ft.Values, models.ValueCount{Value: value})
			}
			ft.Values[i].Count++
		}

		if !t.NoData {
			for i := range ft.Values {
				ft.Values[i].Percent = Percent(ft.Values[i].Count, t.TotalBallots)
			}
		}
		t.Fields = append(t.Fields, ft)
	}

	return t
}

// Percent returns count/total as a percentage rounded to 2 decimals.
// total must be positive.
func Percent(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
