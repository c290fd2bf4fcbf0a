// Package ruleindex flattens per-element rule results into a rule-id lookup.
//
// The index is a pure function of the element results map: it has no state
// and never fails. When the same rule id is reported by several elements only
// one representative is kept, the last one visited. Elements are visited in
// the order the producer listed them, falling back to ascending selector
// order, and rule results in scan order, so the surviving representative is
// deterministic.
package ruleindex
