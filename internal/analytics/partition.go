// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import "slices"

// Partition bucket names, in display order.
const (
	BucketBothPositive     = "both_positive"
	BucketBothNegative     = "both_negative"
	BucketBothNeutral      = "both_neutral"
	BucketPositiveNegative = "positive_negative"
	BucketNegativePositive = "negative_positive"
	BucketPositiveNeutral  = "positive_neutral"
	BucketNeutralPositive  = "neutral_positive"
	BucketNegativeNeutral  = "negative_neutral"
	BucketNeutralNegative  = "neutral_negative"
	BucketOnlyFirst        = "only_first"
	BucketOnlySecond       = "only_second"
)

var partitionOrder = []string{
	BucketBothPositive, BucketBothNegative, BucketBothNeutral,
	BucketPositiveNegative, BucketNegativePositive,
	BucketPositiveNeutral, BucketNeutralPositive,
	BucketNegativeNeutral, BucketNeutralNegative,
	BucketOnlyFirst, BucketOnlySecond,
}

var pairBuckets = map[[2]Bucket]string{
	{BucketPositive, BucketPositive}: BucketBothPositive,
	{BucketNegative, BucketNegative}: BucketBothNegative,
	{BucketNeutral, BucketNeutral}:   BucketBothNeutral,
	{BucketPositive, BucketNegative}: BucketPositiveNegative,
	{BucketNegative, BucketPositive}: BucketNegativePositive,
	{BucketPositive, BucketNeutral}:  BucketPositiveNeutral,
	{BucketNeutral, BucketPositive}:  BucketNeutralPositive,
	{BucketNegative, BucketNeutral}:  BucketNegativeNeutral,
	{BucketNeutral, BucketNegative}:  BucketNeutralNegative,
}

// PartitionEntry is an item with the levels each user gave it. A level is
// empty when that user did not rate the item.
type PartitionEntry struct {
	Item   Item  `json:"item"`
	First  Level `json:"first,omitempty"`
	Second Level `json:"second,omitempty"`
}

// PartitionBucket is one named group of a partition.
type PartitionBucket struct {
	Name    string           `json:"name"`
	Entries []PartitionEntry `json:"entries"`
}

// Partition splits the union of two users' rated items into disjoint buckets.
type Partition struct {
	First   User              `json:"first"`
	Second  User              `json:"second"`
	Buckets []PartitionBucket `json:"buckets"`
}

// Bucket returns the entries of a named bucket.
func (p Partition) Bucket(name string) []PartitionEntry {
	for _, b := range p.Buckets {
		if b.Name == name {
			return b.Entries
		}
	}
	return nil
}

// Size returns the total number of entries across all buckets.
func (p Partition) Size() int {
	n := 0
	for _, b := range p.Buckets {
		n += len(b.Entries)
	}
	return n
}

// ComparePair partitions every item either user rated with an opinion into
// exactly one bucket. Entries in each bucket are ordered by title.
func ComparePair(s *Snapshot, a, b int64) (Partition, error) {
	ua, err := s.requireUser(a)
	if err != nil {
		return Partition{}, err
	}
	ub, err := s.requireUser(b)
	if err != nil {
		return Partition{}, err
	}

	ra, rb := s.opinions(a), s.opinions(b)
	grouped := make(map[string][]PartitionEntry, len(partitionOrder))

	for _, it := range s.items {
		la, okA := ra[it.ID]
		lb, okB := rb[it.ID]
		var name string
		switch {
		case okA && okB:
			name = pairBuckets[[2]Bucket{la.Bucket(), lb.Bucket()}]
		case okA:
			name = BucketOnlyFirst
		case okB:
			name = BucketOnlySecond
		default:
			continue
		}
		grouped[name] = append(grouped[name], PartitionEntry{Item: it, First: la, Second: lb})
	}

	p := Partition{First: ua, Second: ub, Buckets: make([]PartitionBucket, 0, len(partitionOrder))}
	for _, name := range partitionOrder {
		entries := grouped[name]
		if entries == nil {
			entries = []PartitionEntry{}
		}
		slices.SortFunc(entries, func(x, y PartitionEntry) int { return compareItems(x.Item, y.Item) })
		p.Buckets = append(p.Buckets, PartitionBucket{Name: name, Entries: entries})
	}
	return p, nil
}
