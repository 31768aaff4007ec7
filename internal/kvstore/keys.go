// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package kvstore

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	prefixCategory = "category:"
	prefixUser     = "user:"
	prefixItem     = "item:"
	prefixRating   = "rating:"
	prefixSlug     = "idx:slug:"
	prefixUsername = "idx:username:"
)

func idKey(prefix string, id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefix, id))
}

func ratingKey(itemID, userID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:%020d", prefixRating, itemID, userID))
}

func ratingItemPrefix(itemID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:", prefixRating, itemID))
}

func indexKey(prefix, value string) []byte {
	return []byte(prefix + strings.ToLower(value))
}

func encodeID(id int64) []byte {
	return []byte(strconv.FormatInt(id, 10))
}

func decodeID(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}
