package ruleindex

import (
	"maps"
	"slices"

	"github.com/nao1215/a11yscan/internal/model"
)

// Build returns the rule index of elements, visiting selectors in sorted
// order. Nil and empty input both yield an empty, non-nil index.
func Build(elements model.ElementResultsMap) model.RuleIndex {
	return BuildOrdered(elements, nil)
}

// BuildOrdered is like Build but visits the selectors listed in order
// first, in that order. Entries of order absent from elements and repeated
// entries are ignored. Selectors not in order follow in sorted order.
func BuildOrdered(elements model.ElementResultsMap, order []string) model.RuleIndex {
	index := make(model.RuleIndex)
	for _, selector := range visitOrder(elements, order) {
		for _, rr := range elements[selector].RuleResults {
			index[rr.RuleID] = rr
		}
	}
	return index
}

func visitOrder(elements model.ElementResultsMap, order []string) []string {
	visited := make(map[string]bool, len(elements))
	selectors := make([]string, 0, len(elements))
	for _, selector := range order {
		if _, ok := elements[selector]; ok && !visited[selector] {
			visited[selector] = true
			selectors = append(selectors, selector)
		}
	}
	if len(selectors) == len(elements) {
		return selectors
	}
	for _, selector := range slices.Sorted(maps.Keys(elements)) {
		if !visited[selector] {
			selectors = append(selectors, selector)
		}
	}
	return selectors
}
