// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package store

import (
	"context"
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// QueryRecorder receives one call per store operation.
// metrics.RecordStoreQuery has this signature.
type QueryRecorder func(operation, table string, duration time.Duration, err error)

// Instrumented wraps a Store and reports each call to a QueryRecorder.
type Instrumented struct {
	next   Store
	record QueryRecorder
}

// Instrument wraps st. A nil recorder returns st unchanged.
func Instrument(st Store, record QueryRecorder) Store {
	if record == nil {
		return st
	}
	return &Instrumented{next: st, record: record}
}

func (s *Instrumented) track(op, table string, start time.Time, err error) {
	s.record(op, table, time.Since(start), err)
}

func (s *Instrumented) UpsertCategory(ctx context.Context, c analytics.Category) error {
	start := time.Now()
	err := s.next.UpsertCategory(ctx, c)
	s.track("upsert", "categories", start, err)
	return err
}

func (s *Instrumented) UpsertUser(ctx context.Context, u analytics.User) error {
	start := time.Now()
	err := s.next.UpsertUser(ctx, u)
	s.track("upsert", "users", start, err)
	return err
}

func (s *Instrumented) UpsertItem(ctx context.Context, it analytics.Item) error {
	start := time.Now()
	err := s.next.UpsertItem(ctx, it)
	s.track("upsert", "items", start, err)
	return err
}

func (s *Instrumented) UpsertRating(ctx context.Context, r analytics.RatingRecord) error {
	start := time.Now()
	err := s.next.UpsertRating(ctx, r)
	s.track("upsert", "ratings", start, err)
	return err
}

func (s *Instrumented) Categories(ctx context.Context) ([]analytics.Category, error) {
	start := time.Now()
	out, err := s.next.Categories(ctx)
	s.track("select", "categories", start, err)
	return out, err
}

func (s *Instrumented) CategoryBySlug(ctx context.Context, slug string) (analytics.Category, error) {
	start := time.Now()
	out, err := s.next.CategoryBySlug(ctx, slug)
	s.track("lookup", "categories", start, err)
	return out, err
}

func (s *Instrumented) Users(ctx context.Context) ([]analytics.User, error) {
	start := time.Now()
	out, err := s.next.Users(ctx)
	s.track("select", "users", start, err)
	return out, err
}

func (s *Instrumented) UserByUsername(ctx context.Context, username string) (analytics.User, error) {
	start := time.Now()
	out, err := s.next.UserByUsername(ctx, username)
	s.track("lookup", "users", start, err)
	return out, err
}

func (s *Instrumented) Items(ctx context.Context, categoryID int64) ([]analytics.Item, error) {
	start := time.Now()
	out, err := s.next.Items(ctx, categoryID)
	s.track("select", "items", start, err)
	return out, err
}

func (s *Instrumented) Item(ctx context.Context, id int64) (analytics.Item, error) {
	start := time.Now()
	out, err := s.next.Item(ctx, id)
	s.track("lookup", "items", start, err)
	return out, err
}

func (s *Instrumented) Ratings(ctx context.Context, categoryID int64) ([]analytics.RatingRecord, error) {
	start := time.Now()
	out, err := s.next.Ratings(ctx, categoryID)
	s.track("select", "ratings", start, err)
	return out, err
}

func (s *Instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	s.track("ping", "", start, err)
	return err
}

func (s *Instrumented) Close() error {
	return s.next.Close()
}
