package action

import (
	"errors"
	"testing"

	"github.com/nao1215/a11yscan/internal/model"
)

// TestKinds tests the action catalog.
func TestKinds(t *testing.T) {
	t.Parallel()

	got := Kinds()
	if len(got) != 10 {
		t.Fatalf("expected 10 kinds, got %d", len(got))
	}

	seen := make(map[Kind]bool)
	for _, k := range got {
		if seen[k] {
			t.Errorf("duplicate kind %q", k)
		}
		seen[k] = true
		if !k.Valid() {
			t.Errorf("kind %q should be valid", k)
		}
	}

	if Kind("scanStarted").Valid() {
		t.Error("expected unknown kind to be invalid")
	}

	got[0] = "mutated"
	if Kinds()[0] != KindScanCompleted {
		t.Error("Kinds must return a copy")
	}
}

// TestActionKind tests that each type reports its own kind.
func TestActionKind(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		action Action
		kind   Kind
	}{
		{ScanCompleted{}, KindScanCompleted},
		{GetCurrentState{}, KindGetCurrentState},
		{DisableIssues{}, KindDisableIssues},
		{AddTabbedElement{}, KindAddTabbedElement},
		{DisableTabStop{}, KindDisableTabStop},
		{UpdateTabStopRequirementStatus{}, KindUpdateTabStopsRequirementStatus},
		{AddTabStopInstance{}, KindAddTabStopInstance},
		{UpdateTabStopInstance{}, KindUpdateTabStopInstance},
		{RemoveTabStopInstance{}, KindRemoveTabStopInstance},
		{ExistingTabUpdated{}, KindExistingTabUpdated},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			t.Parallel()
			if tc.action.Kind() != tc.kind {
				t.Errorf("got %q, expected %q", tc.action.Kind(), tc.kind)
			}
			if err := tc.action.Validate(); err != nil {
				t.Errorf("zero value should validate, got %v", err)
			}
		})
	}
}

// TestActionValidate tests state-independent validation.
func TestActionValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown category", ScanCompleted{Category: model.Category(9)}, model.ErrUnknownCategory},
		{"unknown requirement on status", UpdateTabStopRequirementStatus{Requirement: model.RequirementID(-1)}, model.ErrUnknownRequirement},
		{"unknown requirement on add", AddTabStopInstance{Requirement: model.RequirementID(7)}, model.ErrUnknownRequirement},
		{"negative update position", UpdateTabStopInstance{Position: -1}, model.ErrIndexOutOfRange},
		{"negative remove position", RemoveTabStopInstance{Position: -3}, model.ErrIndexOutOfRange},
		{"unknown requirement on remove", RemoveTabStopInstance{Requirement: model.RequirementID(5)}, model.ErrUnknownRequirement},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.action.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
