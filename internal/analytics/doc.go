// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

// Package analytics implements the taste-analytics engine: the algorithms that
// turn per-user rating records into tallies, rankings, divisiveness measures,
// compatibility scores, Venn partitions, eclecticism scores and a taste
// dendrogram.
//
// # Model
//
// Every computation runs over an immutable [Snapshot] built with
// [NewSnapshot]. The snapshot enforces one record per (user, item) pair, with
// the latest write winning, and rejects malformed input up front. Nothing is
// cached between calls; derived values are recomputed from the snapshot.
//
// Staff users are carried in the snapshot so they can be looked up, but they
// never contribute to an aggregate (tallies, consensus, clustering,
// compatibility leaderboards, eclecticism).
//
// # Rating Schemes
//
// Two schemes are supported. The five-level scheme (loved, liked, okay,
// disliked, hated) maps to the numeric values 2..-2. The legacy three-level
// scheme (yes, meh, no) maps to 1, 0, -1. Each scheme has a "not yet rated"
// sentinel that counts as a response but never enters numeric aggregation.
// A snapshot holds records from one scheme only.
//
// # Zero Data
//
// Operations never fail because there is nothing to compute. Undefined values
// are reported as nil scores or HasData=false. Errors are reserved for caller
// mistakes such as unknown user references.
//
// # Usage
//
//	snap, err := analytics.NewSnapshot(analytics.SnapshotInput{
//	    Users:   users,
//	    Items:   items,
//	    Records: records,
//	})
//	if err != nil {
//	    return err
//	}
//
//	engine, err := analytics.NewEngine(analytics.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	ranking, err := engine.Ranking(ctx, snap, analytics.ScoringBayesFiveLevel)
//
// # Thread Safety
//
// Snapshots are read-only after construction and the engine holds no mutable
// state, so both are safe for concurrent use.
package analytics
