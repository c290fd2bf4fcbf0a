package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nao1215/a11yscan/internal/action"
	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/ruleindex"
	"github.com/nao1215/a11yscan/internal/tabstop"
)

var errNilAction = errors.New("nil action")

// handle dispatches a to its handler. The caller holds s.mu for writing.
// Handlers either mutate completely or return an error before touching state.
func (s *Store) handle(a action.Action) error {
	switch a := a.(type) {
	case action.ScanCompleted:
		return s.onScanCompleted(a)
	case action.GetCurrentState:
		return nil
	case action.DisableIssues:
		s.state.Issues.ScanResult = nil
		return nil
	case action.AddTabbedElement:
		s.state.TabStops.TabbedElements = tabstop.Merge(s.state.TabStops.TabbedElements, a.TabbedElements)
		return nil
	case action.DisableTabStop:
		s.state.TabStops.TabbedElements = nil
		return nil
	case action.UpdateTabStopRequirementStatus:
		return s.onUpdateRequirementStatus(a)
	case action.AddTabStopInstance:
		return s.onAddInstance(a)
	case action.UpdateTabStopInstance:
		return s.onUpdateInstance(a)
	case action.RemoveTabStopInstance:
		return s.onRemoveInstance(a)
	case action.ExistingTabUpdated:
		s.state = model.NewDefaultState()
		return nil
	default:
		return fmt.Errorf("%w: %T", action.ErrUnknownKind, a)
	}
}

// onScanCompleted replaces the three fields of the category. The element
// results and the payload are copied so the producer keeps no reference into
// the state, and the rule index is rebuilt in the same transition. A nil map
// is stored as an empty one so that the map and its index are never out of
// step. An empty payload is stored as nil.
func (s *Store) onScanCompleted(a action.ScanCompleted) error {
	cr, err := s.state.Category(a.Category)
	if err != nil {
		return err
	}

	elements := a.ElementResults.Clone()
	if elements == nil {
		elements = model.ElementResultsMap{}
	}

	var payload json.RawMessage
	if len(a.ScanResult) > 0 {
		payload = bytes.Clone(a.ScanResult)
	}

	*cr = model.CategoryResult{
		ScanResult:     payload,
		ElementResults: elements,
		RuleIndex:      ruleindex.BuildOrdered(elements, a.SelectorOrder),
	}
	return nil
}

func (s *Store) onUpdateRequirementStatus(a action.UpdateTabStopRequirementStatus) error {
	rec, err := s.state.TabStops.Requirements.Record(a.Requirement)
	if err != nil {
		return err
	}
	rec.Status = a.Status
	return nil
}

func (s *Store) onAddInstance(a action.AddTabStopInstance) error {
	rec, err := s.state.TabStops.Requirements.Record(a.Requirement)
	if err != nil {
		return err
	}
	rec.Instances = append(rec.Instances, model.Instance{Description: a.Description})
	return nil
}

func (s *Store) onUpdateInstance(a action.UpdateTabStopInstance) error {
	rec, err := s.state.TabStops.Requirements.Record(a.Requirement)
	if err != nil {
		return err
	}
	if err := checkPosition(rec, a.Position); err != nil {
		return err
	}
	rec.Instances[a.Position].Description = a.Description
	return nil
}

// onRemoveInstance truncates the list at Position: the instance there and
// every instance after it are removed.
func (s *Store) onRemoveInstance(a action.RemoveTabStopInstance) error {
	rec, err := s.state.TabStops.Requirements.Record(a.Requirement)
	if err != nil {
		return err
	}
	if err := checkPosition(rec, a.Position); err != nil {
		return err
	}
	clear(rec.Instances[a.Position:])
	rec.Instances = rec.Instances[:a.Position]
	return nil
}

func checkPosition(rec *model.RequirementRecord, pos int) error {
	if pos < 0 || pos >= len(rec.Instances) {
		return fmt.Errorf("%w: position %d, %d instance(s)", model.ErrIndexOutOfRange, pos, len(rec.Instances))
	}
	return nil
}
