// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

// ItemTally counts the ratings of one item per level. Only non-staff records
// are counted.
type ItemTally struct {
	ItemID           int64         `json:"item_id"`
	Counts           map[Level]int `json:"counts"`
	TotalResponded   int           `json:"total_responded"`
	TotalOpinionated int           `json:"total_opinionated"`
}

// NewItemTally counts the given records of a single item.
func NewItemTally(itemID int64, records []RatingRecord) ItemTally {
	t := ItemTally{ItemID: itemID, Counts: make(map[Level]int)}
	for _, r := range records {
		t.Counts[r.Level]++
		t.TotalResponded++
		if r.Level.Opinionated() {
			t.TotalOpinionated++
		}
	}
	return t
}

// Tally counts the non-staff ratings of one item.
func Tally(s *Snapshot, itemID int64) ItemTally {
	return NewItemTally(itemID, s.raterRecords(itemID))
}

// TallyAll tallies every item of the snapshot.
func TallyAll(s *Snapshot) map[int64]ItemTally {
	out := make(map[int64]ItemTally, len(s.items))
	for _, it := range s.items {
		out[it.ID] = Tally(s, it.ID)
	}
	return out
}

// Sum returns Σ(count × value) over opinionated levels.
func (t ItemTally) Sum() int {
	sum := 0
	for l, n := range t.Counts {
		if v, ok := l.Value(); ok {
			sum += v * n
		}
	}
	return sum
}

// Average returns the simple average of the numeric values. The second result
// is false when there are no opinionated ratings.
func (t ItemTally) Average() (float64, bool) {
	if t.TotalOpinionated == 0 {
		return 0, false
	}
	return float64(t.Sum()) / float64(t.TotalOpinionated), true
}

func (t ItemTally) countBucket(b Bucket) int {
	n := 0
	for l, c := range t.Counts {
		if l.Bucket() == b {
			n += c
		}
	}
	return n
}

// Positive returns the number of positive ratings.
func (t ItemTally) Positive() int { return t.countBucket(BucketPositive) }

// Negative returns the number of negative ratings.
func (t ItemTally) Negative() int { return t.countBucket(BucketNegative) }

// Neutral returns the number of neutral ratings.
func (t ItemTally) Neutral() int { return t.countBucket(BucketNeutral) }

// MostPositive returns the count of the highest level of either scheme.
func (t ItemTally) MostPositive() int {
	return t.Counts[LevelLoved] + t.Counts[LevelYes]
}
