package service

import (
	"sort"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/pkg/compare"
)

// Diff partitions the keys of desired and actual into create, update and
// remove sets. Keys present on both sides with equal values appear nowhere.
func Diff[T any](desired, actual map[string]T, equal func(a, b T) bool) domain.DiffResult[T] {
	result := domain.NewDiffResult[T]()
	for key, want := range desired {
		have, ok := actual[key]
		if !ok {
			result.Create[key] = want
			continue
		}
		if !equal(want, have) {
			result.Update[key] = want
		}
	}
	for key := range actual {
		if _, ok := desired[key]; !ok {
			result.Remove = append(result.Remove, key)
		}
	}
	sort.Strings(result.Remove)
	return result
}

// DiffSnapshots diffs two canonical snapshots of the same kind.
func DiffSnapshots(desired, actual domain.Snapshot) domain.DiffResult[domain.Resource] {
	return Diff[domain.Resource](desired, actual, Equal)
}

// DiffTags diffs owner tags. Tag removals are computed but never applied.
func DiffTags(desired, actual map[string]domain.Tag) domain.DiffResult[domain.Tag] {
	return Diff(desired, actual, func(a, b domain.Tag) bool { return a.Equal(b) })
}

// Equal is deep structural equality on canonical resources. Nil and empty
// collections compare equal.
func Equal(a, b domain.Resource) bool {
	return compare.Equal(a, b)
}

// Describe renders the field-level difference from actual to desired.
func Describe(actual, desired domain.Resource) string {
	return compare.Diff(actual, desired)
}
