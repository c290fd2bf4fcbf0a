package action

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/nao1215/a11yscan/internal/model"
)

// Kind is the wire name of an action.
type Kind string

// Action kinds.
const (
	KindScanCompleted                   Kind = "scanCompleted"
	KindGetCurrentState                 Kind = "getCurrentState"
	KindDisableIssues                   Kind = "disableIssues"
	KindAddTabbedElement                Kind = "addTabbedElement"
	KindDisableTabStop                  Kind = "disableTabStop"
	KindUpdateTabStopsRequirementStatus Kind = "updateTabStopsRequirementStatus"
	KindAddTabStopInstance              Kind = "addTabStopInstance"
	KindUpdateTabStopInstance           Kind = "updateTabStopInstance"
	KindRemoveTabStopInstance           Kind = "removeTabStopInstance"

	// KindExistingTabUpdated signals that the host page changed.
	KindExistingTabUpdated Kind = "existingTabUpdated"
)

var kinds = []Kind{
	KindScanCompleted,
	KindGetCurrentState,
	KindDisableIssues,
	KindAddTabbedElement,
	KindDisableTabStop,
	KindUpdateTabStopsRequirementStatus,
	KindAddTabStopInstance,
	KindUpdateTabStopInstance,
	KindRemoveTabStopInstance,
	KindExistingTabUpdated,
}

// Kinds returns the full catalog in a fixed order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// Valid reports whether k is part of the catalog.
func (k Kind) Valid() bool {
	return slices.Contains(kinds, k)
}

// Action is implemented by every type in the catalog. The set is closed:
// only this package can add members.
type Action interface {
	// Kind returns the action's catalog entry.
	Kind() Kind

	// Validate checks everything that does not depend on state.
	Validate() error

	sealed()
}

// ScanCompleted reports a finished scan for one category.
type ScanCompleted struct {
	Category       model.Category
	ElementResults model.ElementResultsMap

	// SelectorOrder is the order in which the producer listed the
	// selectors. Selectors missing from it are visited after it, sorted.
	SelectorOrder []string

	ScanResult json.RawMessage
}

// GetCurrentState asks for a notification so a new observer can read state.
type GetCurrentState struct{}

// DisableIssues hides the issues scan result.
type DisableIssues struct{}

// AddTabbedElement reports newly observed tab stops.
type AddTabbedElement struct {
	TabbedElements []model.TabStopEvent
}

// DisableTabStop stops tab stop visualization and drops recorded tab stops.
type DisableTabStop struct{}

// UpdateTabStopRequirementStatus sets the status of a requirement.
type UpdateTabStopRequirementStatus struct {
	Requirement model.RequirementID
	Status      model.Status
}

// AddTabStopInstance appends a note to a requirement.
type AddTabStopInstance struct {
	Requirement model.RequirementID
	Description string
}

// UpdateTabStopInstance rewrites the note at Position.
type UpdateTabStopInstance struct {
	Requirement model.RequirementID
	Position    int
	Description string
}

// RemoveTabStopInstance removes the notes from Position to the end of the
// requirement's list.
type RemoveTabStopInstance struct {
	Requirement model.RequirementID
	Position    int
}

// ExistingTabUpdated signals that the host page changed. All accumulated
// state is discarded.
type ExistingTabUpdated struct{}

func (ScanCompleted) Kind() Kind                  { return KindScanCompleted }
func (GetCurrentState) Kind() Kind                { return KindGetCurrentState }
func (DisableIssues) Kind() Kind                  { return KindDisableIssues }
func (AddTabbedElement) Kind() Kind               { return KindAddTabbedElement }
func (DisableTabStop) Kind() Kind                 { return KindDisableTabStop }
func (UpdateTabStopRequirementStatus) Kind() Kind { return KindUpdateTabStopsRequirementStatus }
func (AddTabStopInstance) Kind() Kind             { return KindAddTabStopInstance }
func (UpdateTabStopInstance) Kind() Kind          { return KindUpdateTabStopInstance }
func (RemoveTabStopInstance) Kind() Kind          { return KindRemoveTabStopInstance }
func (ExistingTabUpdated) Kind() Kind             { return KindExistingTabUpdated }

func (ScanCompleted) sealed()                  {}
func (GetCurrentState) sealed()                {}
func (DisableIssues) sealed()                  {}
func (AddTabbedElement) sealed()               {}
func (DisableTabStop) sealed()                 {}
func (UpdateTabStopRequirementStatus) sealed() {}
func (AddTabStopInstance) sealed()             {}
func (UpdateTabStopInstance) sealed()          {}
func (RemoveTabStopInstance) sealed()          {}
func (ExistingTabUpdated) sealed()             {}

// Validate implements Action.
func (a ScanCompleted) Validate() error {
	return checkCategory(a.Category)
}

// Validate implements Action.
func (GetCurrentState) Validate() error { return nil }

// Validate implements Action.
func (DisableIssues) Validate() error { return nil }

// Validate implements Action. Empty and nil batches are valid.
func (AddTabbedElement) Validate() error { return nil }

// Validate implements Action.
func (DisableTabStop) Validate() error { return nil }

// Validate implements Action.
func (a UpdateTabStopRequirementStatus) Validate() error {
	return checkRequirement(a.Requirement)
}

// Validate implements Action.
func (a AddTabStopInstance) Validate() error {
	return checkRequirement(a.Requirement)
}

// Validate implements Action.
func (a UpdateTabStopInstance) Validate() error {
	if err := checkRequirement(a.Requirement); err != nil {
		return err
	}
	return checkPosition(a.Position)
}

// Validate implements Action.
func (a RemoveTabStopInstance) Validate() error {
	if err := checkRequirement(a.Requirement); err != nil {
		return err
	}
	return checkPosition(a.Position)
}

// Validate implements Action.
func (ExistingTabUpdated) Validate() error { return nil }

func checkCategory(c model.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", model.ErrUnknownCategory, c)
	}
	return nil
}

func checkRequirement(id model.RequirementID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %s", model.ErrUnknownRequirement, id)
	}
	return nil
}

func checkPosition(pos int) error {
	if pos < 0 {
		return fmt.Errorf("%w: %d", model.ErrIndexOutOfRange, pos)
	}
	return nil
}
