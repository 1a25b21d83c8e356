// Package policy implements the data-integrity policies applied to the
// embedded collections of the user aggregate.
package policy

import (
	"sort"
	"time"
)

// Prepend inserts item at the front of items (most-recent-first order) and
// trims the oldest tail entries so the result never exceeds max.
func Prepend[T any](items []T, item T, max int) []T {
	result := make([]T, 0, len(items)+1)
	result = append(result, item)
	result = append(result, items...)
	if max > 0 && len(result) > max {
		result = result[:max]
	}
	return result
}

// TrimNewest keeps the max newest entries as determined by each entry's own
// timestamp, not by slice order. Used by the repair sweep over documents
// written before the caps existed, where array order may not reflect recency.
// The returned slice is sorted newest-first.
func TrimNewest[T any](items []T, max int, at func(T) time.Time) []T {
	result := make([]T, len(items))
	copy(result, items)
	sort.SliceStable(result, func(i, j int) bool {
		return at(result[i]).After(at(result[j]))
	})
	if max > 0 && len(result) > max {
		result = result[:max]
	}
	return result
}

// DropOlderThan removes entries whose timestamp is before cutoff and returns
// the surviving entries plus the number removed.
func DropOlderThan[T any](items []T, cutoff time.Time, at func(T) time.Time) ([]T, int) {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if at(item).Before(cutoff) {
			continue
		}
		kept = append(kept, item)
	}
	return kept, len(items) - len(kept)
}
