package model

import (
	"slices"
)

// Summary is a condensed, read-only digest of a ScanResultData snapshot.
// Report writers consume it instead of walking the nested state, and it is
// serialized as-is by the JSON writer.
type Summary struct {
	// Categories has one entry per category in declaration order.
	Categories []CategorySummary `json:"categories"`

	// TabStopsRecording is true while tab stop telemetry is being collected.
	TabStopsRecording bool `json:"tab_stops_recording"`

	// TabStopCount is the number of accumulated tab stops.
	TabStopCount int `json:"tab_stop_count"`

	// TabStops lists the accumulated tab stops in tab order.
	TabStops []TabbedElement `json:"tab_stops,omitempty"`

	// Requirements has one entry per requirement in declaration order.
	Requirements []RequirementSummary `json:"requirements"`
}

// CategorySummary condenses one CategoryResult.
type CategorySummary struct {
	Category Category `json:"category"`

	// Scanned is true once a scan completion has been received.
	Scanned bool `json:"scanned"`

	// HasScanResult is false after the category was disabled.
	HasScanResult bool `json:"has_scan_result"`

	// ElementCount is the number of elements with results.
	ElementCount int `json:"element_count"`

	// RuleCount is the number of distinct rule ids in the index.
	RuleCount int `json:"rule_count"`

	// FailingRules lists rule ids whose indexed result failed, sorted.
	FailingRules []string `json:"failing_rules,omitempty"`
}

// RequirementSummary condenses one RequirementRecord.
type RequirementSummary struct {
	Requirement   RequirementID `json:"requirement"`
	Status        Status        `json:"status"`
	InstanceCount int           `json:"instance_count"`
	Instances     []string      `json:"instances,omitempty"`
}

// ruleStatusFail is the rule result status counted as failing.
const ruleStatusFail = "fail"

// NewSummary builds a Summary from a snapshot.
// A nil snapshot is summarized as the default state.
func NewSummary(d *ScanResultData) *Summary {
	if d == nil {
		d = NewDefaultState()
	}

	s := &Summary{
		Categories:   make([]CategorySummary, 0, categoryCount),
		Requirements: make([]RequirementSummary, 0, requirementCount),
	}

	for _, c := range Categories() {
		cr, _ := d.Category(c) //nolint:errcheck // c comes from Categories
		cs := CategorySummary{
			Category:      c,
			Scanned:       cr.ElementResults != nil,
			HasScanResult: cr.ScanResult != nil,
			ElementCount:  len(cr.ElementResults),
			RuleCount:     len(cr.RuleIndex),
		}
		for id, rr := range cr.RuleIndex {
			if rr.Status == ruleStatusFail {
				cs.FailingRules = append(cs.FailingRules, id)
			}
		}
		slices.Sort(cs.FailingRules)
		s.Categories = append(s.Categories, cs)
	}

	s.TabStopsRecording = d.TabStops.TabbedElements != nil
	s.TabStopCount = len(d.TabStops.TabbedElements)
	s.TabStops = d.TabStops.TabbedElements

	for _, id := range RequirementIDs() {
		rec, _ := d.TabStops.Requirements.Record(id) //nolint:errcheck // id comes from RequirementIDs
		rs := RequirementSummary{
			Requirement:   id,
			Status:        rec.Status,
			InstanceCount: len(rec.Instances),
		}
		for _, inst := range rec.Instances {
			rs.Instances = append(rs.Instances, inst.Description)
		}
		s.Requirements = append(s.Requirements, rs)
	}

	return s
}

// TotalRules returns the number of indexed rules across all categories.
func (s *Summary) TotalRules() int {
	total := 0
	for _, c := range s.Categories {
		total += c.RuleCount
	}
	return total
}

// TotalFailing returns the number of failing rules across all categories.
func (s *Summary) TotalFailing() int {
	total := 0
	for _, c := range s.Categories {
		total += len(c.FailingRules)
	}
	return total
}

// HasFailures reports whether any rule failed or any requirement failed.
func (s *Summary) HasFailures() bool {
	if s.TotalFailing() > 0 {
		return true
	}
	for _, r := range s.Requirements {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
