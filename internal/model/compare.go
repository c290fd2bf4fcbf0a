package model

import (
	"slices"
)

// CategoryDiff lists the rule ids that appeared or disappeared in one
// category between two snapshots.
type CategoryDiff struct {
	Category Category `json:"category"`
	Added    []string `json:"added,omitempty"`
	Removed  []string `json:"removed,omitempty"`
}

// Changed reports whether the category differs between the snapshots.
func (d CategoryDiff) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// CompareRuleIndexes compares the rule indexes of two snapshots.
// It returns one entry per category in declaration order, with sorted ids.
// Nil snapshots compare as the default state.
func CompareRuleIndexes(before, after *ScanResultData) []CategoryDiff {
	if before == nil {
		before = NewDefaultState()
	}
	if after == nil {
		after = NewDefaultState()
	}

	diffs := make([]CategoryDiff, 0, categoryCount)
	for _, c := range Categories() {
		b, _ := before.Category(c) //nolint:errcheck // c comes from Categories
		a, _ := after.Category(c)  //nolint:errcheck // c comes from Categories

		diff := CategoryDiff{Category: c}
		for id := range a.RuleIndex {
			if _, ok := b.RuleIndex[id]; !ok {
				diff.Added = append(diff.Added, id)
			}
		}
		for id := range b.RuleIndex {
			if _, ok := a.RuleIndex[id]; !ok {
				diff.Removed = append(diff.Removed, id)
			}
		}
		slices.Sort(diff.Added)
		slices.Sort(diff.Removed)
		diffs = append(diffs, diff)
	}
	return diffs
}
