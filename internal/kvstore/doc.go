// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

// Package kvstore implements store.Store on BadgerDB.
//
// Rows are stored as JSON values under fixed-width keys so that prefix
// iteration returns them in ID order:
//
//	category:<id>            analytics.Category
//	user:<id>                analytics.User
//	item:<id>                analytics.Item
//	rating:<item>:<user>     analytics.RatingRecord
//	idx:slug:<lower slug>    category id
//	idx:username:<lower>     user id
//
// The rating key puts the item first, so a full scan yields ratings ordered
// by item then user without sorting.
package kvstore
