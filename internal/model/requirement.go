package model

import (
	"fmt"
)

// RequirementID identifies one of the five fixed manual-review checkpoints
// for keyboard navigation. The set never grows or shrinks at runtime.
type RequirementID int

const (
	// RequirementKeyboardNavigation checks that every interactive element
	// can be reached with the keyboard.
	RequirementKeyboardNavigation RequirementID = iota

	// RequirementKeyboardTraps checks that focus never gets stuck.
	RequirementKeyboardTraps

	// RequirementFocusIndicator checks that focus is always visible.
	RequirementFocusIndicator

	// RequirementTabOrder checks that the tab order is logical.
	RequirementTabOrder

	// RequirementInputFocus checks that receiving focus causes no
	// unexpected context change.
	RequirementInputFocus

	requirementCount
)

var requirementNames = [requirementCount]string{
	RequirementKeyboardNavigation: "keyboard-navigation",
	RequirementKeyboardTraps:      "keyboard-traps",
	RequirementFocusIndicator:     "focus-indicator",
	RequirementTabOrder:           "tab-order",
	RequirementInputFocus:         "input-focus",
}

// RequirementIDs returns every requirement in declaration order.
func RequirementIDs() []RequirementID {
	out := make([]RequirementID, 0, requirementCount)
	for id := range requirementCount {
		out = append(out, id)
	}
	return out
}

// Valid reports whether id is one of the known requirements.
func (id RequirementID) Valid() bool {
	return id >= 0 && id < requirementCount
}

// String returns the wire name of the requirement.
func (id RequirementID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("RequirementID(%d)", int(id))
	}
	return requirementNames[id]
}

// ParseRequirementID converts a wire name into a RequirementID.
func ParseRequirementID(s string) (RequirementID, error) {
	for id, name := range requirementNames {
		if name == s {
			return RequirementID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRequirement, s)
}

// MarshalText implements encoding.TextMarshaler.
func (id RequirementID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRequirement, int(id))
	}
	return []byte(requirementNames[id]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *RequirementID) UnmarshalText(text []byte) error {
	parsed, err := ParseRequirementID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Status is the review outcome of a requirement.
// Besides the constants below, producers may send other domain-specific
// values; they are stored unchanged.
type Status string

const (
	// StatusUnknown is the initial status of every requirement.
	StatusUnknown Status = "unknown"

	// StatusPass marks a requirement as satisfied.
	StatusPass Status = "pass"

	// StatusFail marks a requirement as violated.
	StatusFail Status = "fail"
)
