// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"fmt"
	"math/bits"
)

// VennMembership decides which ratings put an item in a user's set.
type VennMembership string

const (
	// MembershipRated counts every opinionated rating.
	MembershipRated VennMembership = "rated"

	// MembershipPositive counts positive ratings only.
	MembershipPositive VennMembership = "positive"
)

// ParseVennMembership validates a membership string.
func ParseVennMembership(s string) (VennMembership, error) {
	switch m := VennMembership(s); m {
	case MembershipRated, MembershipPositive:
		return m, nil
	}
	return "", fmt.Errorf("%w: venn membership %q", ErrInvalidOption, s)
}

// Region names of a three-way partition.
const (
	RegionOnly1    = "only1"
	RegionOnly2    = "only2"
	RegionOnly3    = "only3"
	RegionOneTwo   = "one_two"
	RegionOneThree = "one_three"
	RegionTwoThree = "two_three"
	RegionAllThree = "all_three"
)

// regionMasks maps a region to the bit set of its members, bit i for user i.
var regionMasks = []struct {
	name string
	mask uint8
}{
	{RegionOnly1, 0b001},
	{RegionOnly2, 0b010},
	{RegionOnly3, 0b100},
	{RegionOneTwo, 0b011},
	{RegionOneThree, 0b101},
	{RegionTwoThree, 0b110},
	{RegionAllThree, 0b111},
}

// VennEntry is an item in a region with the level each member gave it, in
// member order.
type VennEntry struct {
	Item   Item    `json:"item"`
	Levels []Level `json:"levels"`
}

// VennRegion is one of the seven regions. Entries where every member used
// the same level are Unanimous; the rest are Mixed.
type VennRegion struct {
	Name      string      `json:"name"`
	Members   []int64     `json:"members"`
	Unanimous []VennEntry `json:"unanimous"`
	Mixed     []VennEntry `json:"mixed"`
}

// Size returns the number of items in the region.
func (r VennRegion) Size() int { return len(r.Unanimous) + len(r.Mixed) }

// ThreeWayPartition is the seven-region Venn partition of three users.
type ThreeWayPartition struct {
	Users      [3]User        `json:"users"`
	Membership VennMembership `json:"membership"`
	Regions    []VennRegion   `json:"regions"`
}

// Region returns a region by name.
func (p ThreeWayPartition) Region(name string) VennRegion {
	for _, r := range p.Regions {
		if r.Name == name {
			return r
		}
	}
	return VennRegion{Name: name}
}

// ThreeWay places every item in the union of the three users' sets into the
// region given by exactly which users have it.
func ThreeWay(s *Snapshot, ids [3]int64, membership VennMembership) (ThreeWayPartition, error) {
	p := ThreeWayPartition{Membership: membership}
	sets := make([]map[int64]Level, 3)
	for i, id := range ids {
		for j := 0; j < i; j++ {
			if ids[j] == id {
				return ThreeWayPartition{}, fmt.Errorf("%w: id %d", ErrDuplicateUser, id)
			}
		}
		u, err := s.requireUser(id)
		if err != nil {
			return ThreeWayPartition{}, err
		}
		p.Users[i] = u

		set := make(map[int64]Level)
		for itemID, l := range s.opinions(id) {
			if membership == MembershipPositive && l.Bucket() != BucketPositive {
				continue
			}
			set[itemID] = l
		}
		sets[i] = set
	}

	regions := make(map[uint8]*VennRegion, len(regionMasks))
	p.Regions = make([]VennRegion, len(regionMasks))
	for i, rm := range regionMasks {
		r := VennRegion{Name: rm.name, Unanimous: []VennEntry{}, Mixed: []VennEntry{}}
		for b := 0; b < 3; b++ {
			if rm.mask&(1<<b) != 0 {
				r.Members = append(r.Members, ids[b])
			}
		}
		p.Regions[i] = r
		regions[rm.mask] = &p.Regions[i]
	}

	// Items are already in title order, so regions come out sorted.
	for _, it := range s.items {
		var mask uint8
		levels := make([]Level, 0, 3)
		for b := 0; b < 3; b++ {
			if l, ok := sets[b][it.ID]; ok {
				mask |= 1 << b
				levels = append(levels, l)
			}
		}
		if mask == 0 {
			continue
		}
		r := regions[mask]
		entry := VennEntry{Item: it, Levels: levels}
		if bits.OnesCount8(mask) == 1 || allEqual(levels) {
			r.Unanimous = append(r.Unanimous, entry)
		} else {
			r.Mixed = append(r.Mixed, entry)
		}
	}
	return p, nil
}

func allEqual(levels []Level) bool {
	for _, l := range levels[1:] {
		if l != levels[0] {
			return false
		}
	}
	return true
}
