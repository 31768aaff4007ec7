// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package services

import (
	"context"
	"time"

	"github.com/tomtom215/popquiz/internal/logging"
)

// GarbageCollector reclaims space in a store. kvstore.Store satisfies it.
type GarbageCollector interface {
	RunGC() error
}

// GCRecorder receives the outcome of each pass.
type GCRecorder func(duration time.Duration, err error)

// GCService runs a store's garbage collection on a fixed interval.
// A failed pass is logged and retried on the next tick; it never stops the
// service.
type GCService struct {
	store    GarbageCollector
	interval time.Duration
	record   GCRecorder
}

// NewGCService creates the service. record may be nil. A non-positive
// interval makes the service idle.
func NewGCService(store GarbageCollector, interval time.Duration, record GCRecorder) *GCService {
	return &GCService{store: store, interval: interval, record: record}
}

// Serve implements suture.Service.
func (g *GCService) Serve(ctx context.Context) error {
	logger := logging.WithComponent("badger-gc")
	if g.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			err := g.store.RunGC()
			elapsed := time.Since(start)
			if g.record != nil {
				g.record(elapsed, err)
			}
			if err != nil {
				logger.Warn().Err(err).Msg("Value log GC failed")
				continue
			}
			logger.Debug().Dur("duration", elapsed).Msg("Value log GC complete")
		}
	}
}

// String names the service in supervisor events.
func (g *GCService) String() string {
	return "badger-gc"
}
