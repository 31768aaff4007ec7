// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"math"
	"slices"
)

// tieEpsilon treats two linkage distances this close as equal.
const tieEpsilon = 1e-12

// ClusterUser is a dendrogram leaf.
type ClusterUser struct {
	User  User   `json:"user"`
	Index int    `json:"index"`
	Color string `json:"color"`
}

// ClusterMerge is one merge step. Leaves have cluster IDs 0..n-1 in user
// order and every merge creates the next ID.
type ClusterMerge struct {
	ID      int     `json:"id"`
	Left    int     `json:"left"`
	Right   int     `json:"right"`
	Height  float64 `json:"height"`
	Size    int     `json:"size"`
	Members []int64 `json:"members"`
}

// SimilarPair is an entry of the most-similar-pairs list.
type SimilarPair struct {
	First      User    `json:"first"`
	Second     User    `json:"second"`
	Similarity float64 `json:"similarity"`
}

// Dendrogram is the result of taste clustering. HasData is false when fewer
// than two users have rated anything.
type Dendrogram struct {
	HasData    bool           `json:"has_data"`
	Users      []ClusterUser  `json:"users"`
	Similarity [][]float64    `json:"similarity"`
	Merges     []ClusterMerge `json:"merges"`
	TopPairs   []SimilarPair  `json:"top_pairs"`
}

// SimilarityMatrix returns the agreement rate between every pair of users.
// Two users agree on an item when their numeric values are equal. Pairs
// without common items get noOverlap. The diagonal is 1.
func SimilarityMatrix(s *Snapshot, users []User, noOverlap float64) [][]float64 {
	n := len(users)
	ratings := make([]map[int64]Level, n)
	for i, u := range users {
		ratings[i] = s.opinions(u.ID)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			common, agree := 0, 0
			for itemID, li := range ratings[i] {
				lj, ok := ratings[j][itemID]
				if !ok {
					continue
				}
				common++
				vi, _ := li.Value()
				vj, _ := lj.Value()
				if vi == vj {
					agree++
				}
			}
			v := noOverlap
			if common > 0 {
				v = float64(agree) / float64(common)
			}
			sim[i][j], sim[j][i] = v, v
		}
	}
	return sim
}

// BuildDendrogram clusters the non-staff users who rated at least one item
// with average linkage on distance 1 - similarity.
//
// Linkage distances are kept in a matrix updated with the Lance-Williams
// formula for average linkage, which equals the mean pairwise distance
// between members. When several pairs tie for the minimum the pair with the
// lowest (left, right) cluster IDs is merged.
func BuildDendrogram(s *Snapshot, cfg ClusteringConfig) Dendrogram {
	users := make([]User, 0)
	for _, u := range s.Raters() {
		if len(s.opinions(u.ID)) > 0 {
			users = append(users, u)
		}
	}
	if len(users) < 2 {
		return Dendrogram{
			Users:      []ClusterUser{},
			Similarity: [][]float64{},
			Merges:     []ClusterMerge{},
			TopPairs:   []SimilarPair{},
		}
	}
	slices.SortFunc(users, compareUsersByName)

	n := len(users)
	palette := cfg.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	d := Dendrogram{HasData: true, Users: make([]ClusterUser, n)}
	for i, u := range users {
		d.Users[i] = ClusterUser{User: u, Index: i, Color: palette[i%len(palette)]}
	}
	d.Similarity = SimilarityMatrix(s, users, cfg.NoOverlapSimilarity)
	d.Merges = agglomerate(users, d.Similarity)
	d.TopPairs = topPairs(users, d.Similarity, cfg.TopPairs)
	return d
}

func agglomerate(users []User, sim [][]float64) []ClusterMerge {
	n := len(users)
	total := 2*n - 1

	dist := make([][]float64, total)
	for i := range dist {
		dist[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				dist[i][j] = 1 - sim[i][j]
			}
		}
	}

	members := make([][]int, total)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
	}
	active := make([]int, n)
	for i := range active {
		active[i] = i
	}

	merges := make([]ClusterMerge, 0, n-1)
	for next := n; len(active) > 1; next++ {
		bi, bj := 0, 1
		best := math.Inf(1)
		for x := 0; x < len(active); x++ {
			for y := x + 1; y < len(active); y++ {
				if dv := dist[active[x]][active[y]]; dv < best-tieEpsilon {
					best, bi, bj = dv, x, y
				}
			}
		}
		left, right := active[bi], active[bj]
		sl, sr := float64(len(members[left])), float64(len(members[right]))

		for _, k := range active {
			if k == left || k == right {
				continue
			}
			v := (sl*dist[left][k] + sr*dist[right][k]) / (sl + sr)
			dist[next][k], dist[k][next] = v, v
		}

		members[next] = append(slices.Clone(members[left]), members[right]...)
		slices.Sort(members[next])

		ids := make([]int64, len(members[next]))
		for i, m := range members[next] {
			ids[i] = users[m].ID
		}
		merges = append(merges, ClusterMerge{
			ID:      next,
			Left:    left,
			Right:   right,
			Height:  best,
			Size:    len(ids),
			Members: ids,
		})

		// active stays sorted: bj > bi, and next exceeds every live ID
		active = append(active[:bj], active[bj+1:]...)
		active = append(active[:bi], active[bi+1:]...)
		active = append(active, next)
	}
	return merges
}

func topPairs(users []User, sim [][]float64, limit int) []SimilarPair {
	type pair struct{ i, j int }
	pairs := make([]pair, 0, len(users)*(len(users)-1)/2)
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp.Compare(sim[b.i][b.j], sim[a.i][a.j])
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	out := make([]SimilarPair, len(pairs))
	for k, p := range pairs {
		out[k] = SimilarPair{First: users[p.i], Second: users[p.j], Similarity: sim[p.i][p.j]}
	}
	return out
}
