// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"time"

	"github.com/danielhkuo/volunteer-portal/docstore"
)

// Collection names
const (
	CollectionConfig     = "meeting_config"
	CollectionBallots    = "ballots"
	CollectionAttendance = "attendance"
	CollectionResults    = "meeting_results"
)

// currentConfigID is the id of the singleton meeting configuration.
const currentConfigID = "current"

// Store is the subset of the document store the voting workflow needs.
type Store interface {
	Create(ctx context.Context, collection, id string, v any) error
	Set(ctx context.Context, collection, id string, v any) error
	Get(ctx context.Context, collection, id string, v any) error
	Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]docstore.Document, error)
	Stream(ctx context.Context, collection string, fn func(docstore.Document) error, filters ...docstore.Filter) error
}

// Service runs the meeting lifecycle, ballot and attendance workflows.
// It holds no in-process state; every call reads the store.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}
