package ruleindex

import (
	"reflect"
	"testing"

	"github.com/nao1215/a11yscan/internal/model"
)

// TestBuild tests flattening of element results.
func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("last element wins on collision", func(t *testing.T) {
		t.Parallel()

		ruleAFromE1 := model.RuleResult{RuleID: "ruleA", Selector: "e1", Status: "pass"}
		ruleB := model.RuleResult{RuleID: "ruleB", Selector: "e1", Status: "fail"}
		ruleAFromE2 := model.RuleResult{RuleID: "ruleA", Selector: "e2", Status: "fail"}

		index := Build(model.ElementResultsMap{
			"e1": {RuleResults: []model.RuleResult{ruleAFromE1, ruleB}},
			"e2": {RuleResults: []model.RuleResult{ruleAFromE2}},
		})

		want := model.RuleIndex{"ruleA": ruleAFromE2, "ruleB": ruleB}
		if !reflect.DeepEqual(index, want) {
			t.Errorf("got %+v, expected %+v", index, want)
		}
	})

	t.Run("later result within one element wins", func(t *testing.T) {
		t.Parallel()

		first := model.RuleResult{RuleID: "label", HTML: "<input id=a>"}
		second := model.RuleResult{RuleID: "label", HTML: "<input id=b>"}

		index := Build(model.ElementResultsMap{
			"#form": {RuleResults: []model.RuleResult{first, second}},
		})

		if got := index["label"]; !reflect.DeepEqual(got, second) {
			t.Errorf("got %+v, expected %+v", got, second)
		}
	})

	t.Run("result does not depend on map insertion", func(t *testing.T) {
		t.Parallel()

		elements := model.ElementResultsMap{}
		for _, sel := range []string{"#z", "#a", "#m", "#b", "#y"} {
			elements[sel] = model.ElementResults{
				RuleResults: []model.RuleResult{{RuleID: "shared", Selector: sel}},
			}
		}

		for range 20 {
			if got := Build(elements)["shared"].Selector; got != "#z" {
				t.Fatalf("expected #z to win, got %s", got)
			}
		}
	})

	t.Run("empty and nil input", func(t *testing.T) {
		t.Parallel()

		for name, in := range map[string]model.ElementResultsMap{
			"nil":   nil,
			"empty": {},
			"no rules": {
				"#a": {Target: []string{"#a"}},
			},
		} {
			index := Build(in)
			if index == nil {
				t.Errorf("%s: expected non-nil index", name)
			}
			if len(index) != 0 {
				t.Errorf("%s: expected empty index, got %d entries", name, len(index))
			}
		}
	})
}

// TestBuildOrdered tests that the producer's selector order decides collisions.
func TestBuildOrdered(t *testing.T) {
	t.Parallel()

	elements := model.ElementResultsMap{
		"#a": {RuleResults: []model.RuleResult{{RuleID: "shared", Selector: "#a"}}},
		"#b": {RuleResults: []model.RuleResult{{RuleID: "shared", Selector: "#b"}}},
		"#c": {RuleResults: []model.RuleResult{{RuleID: "shared", Selector: "#c"}, {RuleID: "only-c", Selector: "#c"}}},
	}

	tests := []struct {
		name  string
		order []string
		want  string
	}{
		{name: "listed order", order: []string{"#c", "#b", "#a"}, want: "#a"},
		{name: "reverse listed order", order: []string{"#a", "#b", "#c"}, want: "#c"},
		{name: "unlisted selectors follow sorted", order: []string{"#b"}, want: "#c"},
		{name: "unknown and repeated entries ignored", order: []string{"#x", "#c", "#a", "#c", "#b"}, want: "#b"},
		{name: "nil order is sorted", order: nil, want: "#c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			index := BuildOrdered(elements, tt.order)
			if got := index["shared"].Selector; got != tt.want {
				t.Errorf("expected %s to win, got %s", tt.want, got)
			}
			if len(index) != 2 {
				t.Errorf("expected 2 rules, got %d", len(index))
			}
		})
	}
}
