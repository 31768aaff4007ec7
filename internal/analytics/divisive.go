// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// DivisivenessMetric selects how disagreement on an item is measured.
type DivisivenessMetric string

const (
	// DivisiveStdDev is the population standard deviation of numeric values.
	DivisiveStdDev DivisivenessMetric = "stddev"

	// DivisiveMinCount is min(positive, negative): how many people sit on
	// the smaller side.
	DivisiveMinCount DivisivenessMetric = "min_count"
)

// ParseDivisivenessMetric validates a metric string.
func ParseDivisivenessMetric(s string) (DivisivenessMetric, error) {
	switch m := DivisivenessMetric(s); m {
	case DivisiveStdDev, DivisiveMinCount:
		return m, nil
	}
	return "", fmt.Errorf("%w: divisiveness metric %q", ErrInvalidOption, s)
}

// DivisiveItem is one entry of the divisive-items view.
type DivisiveItem struct {
	Item         Item      `json:"item"`
	Tally        ItemTally `json:"tally"`
	Divisiveness float64   `json:"divisiveness"`
}

// StdDev returns the population standard deviation of the item's numeric
// ratings. The variance is computed as (n·Σv² - (Σv)²)/n² in integers, so
// equal distributions always yield bit-identical results.
func StdDev(t ItemTally) (float64, bool) {
	n := t.TotalOpinionated
	if n == 0 {
		return 0, false
	}
	var sum, sumSq int
	for l, c := range t.Counts {
		if v, ok := l.Value(); ok {
			sum += c * v
			sumSq += c * v * v
		}
	}
	return math.Sqrt(float64(n*sumSq-sum*sum) / float64(n*n)), true
}

// Divisive ranks the items with at least minVotes opinionated ratings by the
// metric, descending. Ties go to the item with more ratings, then by title.
func Divisive(s *Snapshot, metric DivisivenessMetric, minVotes int) []DivisiveItem {
	out := make([]DivisiveItem, 0)
	for _, it := range s.items {
		t := Tally(s, it.ID)
		if t.TotalOpinionated < minVotes || t.TotalOpinionated == 0 {
			continue
		}
		var d float64
		switch metric {
		case DivisiveMinCount:
			d = float64(min(t.Positive(), t.Negative()))
		default:
			d, _ = StdDev(t)
		}
		out = append(out, DivisiveItem{Item: it, Tally: t, Divisiveness: d})
	}
	slices.SortFunc(out, func(a, b DivisiveItem) int {
		if c := cmp.Compare(b.Divisiveness, a.Divisiveness); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Tally.TotalOpinionated, a.Tally.TotalOpinionated); c != 0 {
			return c
		}
		return compareItems(a.Item, b.Item)
	})
	return out
}
