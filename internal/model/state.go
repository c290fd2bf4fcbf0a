package model

import (
	"encoding/json"
	"fmt"
)

// RuleResult is the outcome of one rule evaluated against one element.
type RuleResult struct {
	// RuleID identifies the rule (e.g. "color-contrast").
	// The rule index is keyed by this value.
	RuleID string `json:"ruleId"`

	// Status is the rule outcome for the element ("pass", "fail", ...).
	Status string `json:"status"`

	// Selector is the CSS selector of the evaluated element.
	Selector string `json:"selector,omitempty"`

	// HTML is a snippet of the evaluated element.
	HTML string `json:"html,omitempty"`

	// FailureSummary explains how to fix a failing result.
	FailureSummary string `json:"failureSummary,omitempty"`

	// Help is a short description of the rule.
	Help string `json:"help,omitempty"`

	// HelpURL points to the rule documentation.
	HelpURL string `json:"helpUrl,omitempty"`

	// Tags are the rule's classification tags (e.g. "wcag2aa").
	Tags []string `json:"tags,omitempty"`
}

// ElementResults is the set of rule results recorded for one element.
type ElementResults struct {
	// Target is the selector path of the element, outermost frame first.
	Target []string `json:"target"`

	// RuleResults are the element's rule evaluations in scan order.
	RuleResults []RuleResult `json:"ruleResults"`
}

// ElementResultsMap maps an element's selector path to its rule results.
type ElementResultsMap map[string]ElementResults

// RuleIndex maps a rule id to one representative rule result.
// It is always derived from an ElementResultsMap.
type RuleIndex map[string]RuleResult

// CategoryResult is the state of a single category.
//
// ElementResults and RuleIndex are either both nil or both non-nil, and
// RuleIndex is always the flattening of ElementResults.
type CategoryResult struct {
	// ScanResult is the category-specific scan payload. It is opaque to the
	// engine and passed through unmodified. Nil means no result.
	ScanResult json.RawMessage `json:"scanResult"`

	// ElementResults holds per-element rule results of the last scan.
	ElementResults ElementResultsMap `json:"elementResultsMap"`

	// RuleIndex is the flat rule-id lookup derived from ElementResults.
	RuleIndex RuleIndex `json:"ruleIndex"`
}

// TabStopEvent is a single keyboard-focus observation.
type TabStopEvent struct {
	// Timestamp is when focus landed on the element. Only the ordering of
	// timestamps matters; the unit is whatever the producer uses.
	Timestamp float64 `json:"timestamp"`

	// Target is the selector path of the focused element.
	Target []string `json:"target"`

	// HTML is a snapshot of the focused element's markup.
	HTML string `json:"html"`
}

// TabbedElement is an accumulated tab stop with its rank.
type TabbedElement struct {
	TabStopEvent

	// TabOrder is the 1-based position of the element when all accumulated
	// tab stops are ordered by timestamp.
	TabOrder int `json:"tabOrder"`
}

// Instance is a note recorded against a requirement.
// Callers address instances by their position in the owning list.
type Instance struct {
	Description string `json:"description"`
}

// RequirementRecord is the review state of one requirement.
type RequirementRecord struct {
	Status    Status     `json:"status"`
	Instances []Instance `json:"instances"`
}

// Requirements holds exactly one record per RequirementID.
// It is a struct rather than a map: no action can add or drop an entry.
type Requirements struct {
	KeyboardNavigation RequirementRecord `json:"keyboard-navigation"`
	KeyboardTraps      RequirementRecord `json:"keyboard-traps"`
	FocusIndicator     RequirementRecord `json:"focus-indicator"`
	TabOrder           RequirementRecord `json:"tab-order"`
	InputFocus         RequirementRecord `json:"input-focus"`
}

// Record returns the record for id.
// It returns ErrUnknownRequirement if id is not a known requirement.
func (r *Requirements) Record(id RequirementID) (*RequirementRecord, error) {
	switch id {
	case RequirementKeyboardNavigation:
		return &r.KeyboardNavigation, nil
	case RequirementKeyboardTraps:
		return &r.KeyboardTraps, nil
	case RequirementFocusIndicator:
		return &r.FocusIndicator, nil
	case RequirementTabOrder:
		return &r.TabOrder, nil
	case RequirementInputFocus:
		return &r.InputFocus, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequirement, id)
	}
}

// TabStopState is the accumulated keyboard navigation telemetry.
type TabStopState struct {
	// TabbedElements is ordered by timestamp with a dense 1-based TabOrder.
	// Nil means tab stop recording is off or has not started.
	TabbedElements []TabbedElement `json:"tabbedElements"`

	// Requirements holds the manual review state.
	Requirements Requirements `json:"requirements"`
}

// ScanResultData is the canonical state snapshot observed by consumers.
type ScanResultData struct {
	Issues      CategoryResult `json:"issues"`
	Landmarks   CategoryResult `json:"landmarks"`
	Headings    CategoryResult `json:"headings"`
	Color       CategoryResult `json:"color"`
	NeedsReview CategoryResult `json:"needsReview"`

	TabStops TabStopState `json:"tabStops"`
}

// Category returns the result for c.
// It returns ErrUnknownCategory if c is not a known category.
func (d *ScanResultData) Category(c Category) (*CategoryResult, error) {
	switch c {
	case CategoryIssues:
		return &d.Issues, nil
	case CategoryLandmarks:
		return &d.Landmarks, nil
	case CategoryHeadings:
		return &d.Headings, nil
	case CategoryColor:
		return &d.Color, nil
	case CategoryNeedsReview:
		return &d.NeedsReview, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
}

// NewDefaultState creates the state of an aggregator that has seen nothing:
// every requirement is unknown with no instances, tab stops are nil and
// every category field is nil.
func NewDefaultState() *ScanResultData {
	d := &ScanResultData{}
	for _, id := range RequirementIDs() {
		rec, _ := d.TabStops.Requirements.Record(id) //nolint:errcheck // id comes from RequirementIDs
		rec.Status = StatusUnknown
		rec.Instances = []Instance{}
	}
	return d
}

// Clone returns a deep copy of d. The copy shares no memory with d, so it
// stays stable while the original keeps being mutated.
func (d *ScanResultData) Clone() *ScanResultData {
	if d == nil {
		return nil
	}
	out := &ScanResultData{}
	for _, c := range Categories() {
		src, _ := d.Category(c)   //nolint:errcheck // c comes from Categories
		dst, _ := out.Category(c) //nolint:errcheck // c comes from Categories
		*dst = src.clone()
	}
	out.TabStops = d.TabStops.clone()
	return out
}

func (c CategoryResult) clone() CategoryResult {
	out := CategoryResult{}
	if c.ScanResult != nil {
		out.ScanResult = append(json.RawMessage{}, c.ScanResult...)
	}
	out.ElementResults = c.ElementResults.Clone()
	if c.RuleIndex != nil {
		out.RuleIndex = make(RuleIndex, len(c.RuleIndex))
		for id, rr := range c.RuleIndex {
			out.RuleIndex[id] = rr.clone()
		}
	}
	return out
}

// Clone returns a deep copy of m. The copy of a nil map is nil.
func (m ElementResultsMap) Clone() ElementResultsMap {
	if m == nil {
		return nil
	}
	out := make(ElementResultsMap, len(m))
	for selector, er := range m {
		out[selector] = ElementResults{
			Target:      cloneStrings(er.Target),
			RuleResults: cloneRuleResults(er.RuleResults),
		}
	}
	return out
}

func (t TabStopState) clone() TabStopState {
	out := TabStopState{}
	if t.TabbedElements != nil {
		out.TabbedElements = make([]TabbedElement, len(t.TabbedElements))
		for i, el := range t.TabbedElements {
			el.Target = cloneStrings(el.Target)
			out.TabbedElements[i] = el
		}
	}
	for _, id := range RequirementIDs() {
		src, _ := t.Requirements.Record(id)   //nolint:errcheck // id comes from RequirementIDs
		dst, _ := out.Requirements.Record(id) //nolint:errcheck // id comes from RequirementIDs
		dst.Status = src.Status
		if src.Instances != nil {
			dst.Instances = append([]Instance{}, src.Instances...)
		}
	}
	return out
}

func (r RuleResult) clone() RuleResult {
	r.Tags = cloneStrings(r.Tags)
	return r
}

func cloneRuleResults(in []RuleResult) []RuleResult {
	if in == nil {
		return nil
	}
	out := make([]RuleResult, len(in))
	for i, rr := range in {
		out[i] = rr.clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
