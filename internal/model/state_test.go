package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// TestNewDefaultState tests the freshly constructed state.
func TestNewDefaultState(t *testing.T) {
	t.Parallel()

	d := NewDefaultState()

	for _, c := range Categories() {
		cr, err := d.Category(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cr.ScanResult != nil || cr.ElementResults != nil || cr.RuleIndex != nil {
			t.Errorf("category %s: expected all fields nil", c)
		}
	}

	if d.TabStops.TabbedElements != nil {
		t.Error("expected nil tabbed elements")
	}

	for _, id := range RequirementIDs() {
		rec, err := d.TabStops.Requirements.Record(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Status != StatusUnknown {
			t.Errorf("requirement %s: got status %q", id, rec.Status)
		}
		if rec.Instances == nil || len(rec.Instances) != 0 {
			t.Errorf("requirement %s: expected empty non-nil instances", id)
		}
	}
}

// TestAccessorsRejectUnknown tests that lookups outside the fixed sets fail.
func TestAccessorsRejectUnknown(t *testing.T) {
	t.Parallel()

	d := NewDefaultState()

	if _, err := d.Category(Category(42)); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := d.TabStops.Requirements.Record(RequirementID(42)); !errors.Is(err, ErrUnknownRequirement) {
		t.Errorf("expected ErrUnknownRequirement, got %v", err)
	}
}

// populatedState returns a state with every field set.
func populatedState() *ScanResultData {
	d := NewDefaultState()
	d.Issues = CategoryResult{
		ScanResult: json.RawMessage(`{"passes":3}`),
		ElementResults: ElementResultsMap{
			"#main": {
				Target:      []string{"#main"},
				RuleResults: []RuleResult{{RuleID: "region", Status: "fail", Tags: []string{"best-practice"}}},
			},
		},
		RuleIndex: RuleIndex{"region": {RuleID: "region", Status: "fail", Tags: []string{"best-practice"}}},
	}
	d.TabStops.TabbedElements = []TabbedElement{
		{TabStopEvent: TabStopEvent{Timestamp: 1, Target: []string{"#a"}, HTML: "<a>"}, TabOrder: 1},
	}
	d.TabStops.Requirements.TabOrder = RequirementRecord{
		Status:    StatusFail,
		Instances: []Instance{{Description: "skips footer"}},
	}
	return d
}

// TestClone tests that Clone produces an independent deep copy.
func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("copy is deep equal", func(t *testing.T) {
		t.Parallel()

		d := populatedState()
		if !reflect.DeepEqual(d, d.Clone()) {
			t.Error("expected clone to be deep equal")
		}
	})

	t.Run("default state survives clone", func(t *testing.T) {
		t.Parallel()

		if !reflect.DeepEqual(NewDefaultState(), NewDefaultState().Clone()) {
			t.Error("expected cloned default state to equal default state")
		}
	})

	t.Run("mutating original leaves copy alone", func(t *testing.T) {
		t.Parallel()

		d := populatedState()
		c := d.Clone()

		d.Issues.ScanResult[2] = 'X'
		d.Issues.ElementResults["#main"].RuleResults[0].Tags[0] = "changed"
		d.Issues.RuleIndex["other"] = RuleResult{RuleID: "other"}
		d.TabStops.TabbedElements[0].Target[0] = "#b"
		d.TabStops.Requirements.TabOrder.Instances[0].Description = "changed"

		if !reflect.DeepEqual(c, populatedState()) {
			t.Error("expected clone to be unaffected by mutation of the original")
		}
	})

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()

		var d *ScanResultData
		if d.Clone() != nil {
			t.Error("expected nil clone")
		}
	})
}

// TestStateJSON tests the wire shape of the snapshot.
func TestStateJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewDefaultState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"issues", "landmarks", "headings", "color", "needsReview", "tabStops"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("expected key %q in JSON", key)
		}
	}

	var tabStops struct {
		TabbedElements []TabbedElement             `json:"tabbedElements"`
		Requirements   map[string]RequirementRecord `json:"requirements"`
	}
	if err := json.Unmarshal(raw["tabStops"], &tabStops); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tabStops.Requirements) != 5 {
		t.Errorf("expected 5 requirements, got %d", len(tabStops.Requirements))
	}
	if _, ok := tabStops.Requirements["tab-order"]; !ok {
		t.Error("expected tab-order requirement")
	}
}
