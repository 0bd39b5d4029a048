package algorithms

import (
	"sort"
	"time"
)

// Ranked is anything that carries a score and a creation time.
type Ranked struct {
	ID        string
	Score     int
	CreatedAt time.Time
}

// Less orders by score desc, then newest first, then by ID so that the
// order is total and stable across calls.
func Less(a, b Ranked) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// SortRanked sorts items in place using key to extract the ranking fields.
func SortRanked[T any](items []T, key func(T) Ranked) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(key(items[i]), key(items[j]))
	})
}
