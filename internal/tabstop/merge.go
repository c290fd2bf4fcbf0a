package tabstop

import (
	"cmp"
	"slices"

	"github.com/nao1215/a11yscan/internal/model"
)

// Merge combines the accumulated sequence prior with a newly observed batch.
//
// The result is ordered by ascending timestamp and TabOrder equals the
// 1-based position. The sort is stable: on equal timestamps prior elements
// come before new ones, and each group keeps its input order.
// Neither input is modified. Nil inputs are treated as empty and the result
// is never nil.
func Merge(prior []model.TabbedElement, batch []model.TabStopEvent) []model.TabbedElement {
	events := append(Project(prior), batch...)

	slices.SortStableFunc(events, func(a, b model.TabStopEvent) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	merged := make([]model.TabbedElement, len(events))
	for i, ev := range events {
		merged[i] = model.TabbedElement{
			TabStopEvent: model.TabStopEvent{
				Timestamp: ev.Timestamp,
				Target:    slices.Clone(ev.Target),
				HTML:      ev.HTML,
			},
			TabOrder: i + 1,
		}
	}
	return merged
}

// Project strips the ranks from elements, returning the bare events in the
// same order. The returned slice has spare capacity for appending.
func Project(elements []model.TabbedElement) []model.TabStopEvent {
	events := make([]model.TabStopEvent, 0, len(elements))
	for _, el := range elements {
		events = append(events, el.TabStopEvent)
	}
	return events
}
