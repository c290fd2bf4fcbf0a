package action

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nao1215/a11yscan/internal/model"
)

// validate checks payload struct tags. It caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Envelope is the JSON form of one action.
type Envelope struct {
	// Type is the action kind.
	Type Kind `json:"type" validate:"required"`

	// Payload holds the kind-specific fields. Kinds without fields omit it.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// A null or absent selectorMap or tabbedElements decodes as empty.
type scanCompletedPayload struct {
	Key         string          `json:"key" validate:"required"`
	SelectorMap selectorMap     `json:"selectorMap"`
	ScanResult  json.RawMessage `json:"scanResult"`
}

// selectorMap decodes an element results object and keeps the order of its
// keys, which decides the rule index representatives.
type selectorMap struct {
	elements model.ElementResultsMap
	order    []string
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *selectorMap) UnmarshalJSON(data []byte) error {
	var elements model.ElementResultsMap
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	if elements == nil {
		*m = selectorMap{}
		return nil
	}
	order, err := objectKeys(data)
	if err != nil {
		return err
	}
	*m = selectorMap{elements: elements, order: order}
	return nil
}

// objectKeys returns the keys of a JSON object in document order. A key that
// repeats keeps its first position.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

type tabStopEventPayload struct {
	Timestamp *float64 `json:"timestamp" validate:"required"`
	Target    []string `json:"target" validate:"required"`
	HTML      string   `json:"html"`
}

type addTabbedElementPayload struct {
	TabbedElements []tabStopEventPayload `json:"tabbedElements" validate:"omitempty,dive"`
}

type requirementStatusPayload struct {
	RequirementID string `json:"requirementId" validate:"required"`
	Status        string `json:"status" validate:"required"`
}

type addInstancePayload struct {
	RequirementID string  `json:"requirementId" validate:"required"`
	Description   *string `json:"description" validate:"required"`
}

type updateInstancePayload struct {
	RequirementID string  `json:"requirementId" validate:"required"`
	ID            *int    `json:"id" validate:"required"`
	Description   *string `json:"description" validate:"required"`
}

type removeInstancePayload struct {
	RequirementID string `json:"requirementId" validate:"required"`
	ID            *int   `json:"id" validate:"required"`
}

// Decode parses one JSON envelope into an Action.
// Unknown kinds fail with ErrUnknownKind, malformed or incomplete payloads
// with ErrInvalidPayload, and unknown categories or requirements with the
// matching model error.
func Decode(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err := validate.Struct(env); err != nil {
		return nil, invalid(err)
	}
	return env.Action()
}

// Action converts the envelope into the concrete action for its kind.
func (e Envelope) Action() (Action, error) {
	switch e.Type {
	case KindScanCompleted:
		var p scanCompletedPayload
		if err := e.decodePayload(&p); err != nil {
			return nil, err
		}
		c, err := model.ParseCategory(p.Key)
		if err != nil {
			return nil, err
		}
		return ScanCompleted{
			Category:       c,
			ElementResults: p.SelectorMap.elements,
			SelectorOrder:  p.SelectorMap.order,
			ScanResult:     nullToNil(p.ScanResult),
		}, nil

	case KindAddTabbedElement:
		var p addTabbedElementPayload
		if err := e.decodePayload(&p); err != nil {
			return nil, err
		}
		events := make([]model.TabStopEvent, 0, len(p.TabbedElements))
		for _, te := range p.TabbedElements {
			events = append(events, model.TabStopEvent{
				Timestamp: *te.Timestamp,
				Target:    te.Target,
				HTML:      te.HTML,
			})
		}
		return AddTabbedElement{TabbedElements: events}, nil

	case KindUpdateTabStopsRequirementStatus:
		var p requirementStatusPayload
		if err := e.decodePayload(&p); err != nil {
			return nil, err
		}
		id, err := model.ParseRequirementID(p.RequirementID)
		if err != nil {
			return nil, err
		}
		return UpdateTabStopRequirementStatus{Requirement: id, Status: model.Status(p.Status)}, nil

	case KindAddTabStopInstance:
		var p addInstancePayload
		if err := e.decodePayload(&p); err != nil {
			return nil, err
		}
		id, err := model.ParseRequirementID(p.RequirementID)
		if err != nil {
			return nil, err
		}
		return AddTabStopInstance{Requirement: id, Description: *p.Description}, nil

	case KindUpdateTabStopInstance:
		var p updateInstancePayload
		if err := e.decodePayload(&p); err != nil {
			return nil, err
		}
		id, err := model.ParseRequirementID(p.RequirementID)
		if err != nil {
			return nil, err
		}
		a := UpdateTabStopInstance{Requirement: id, Position: *p.ID, Description: *p.Description}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return a, nil

	case KindRemoveTabStopInstance:
		var p removeInstancePayload
		if err := e.decodePayload(&p); err != nil {
			return nil, err
		}
		id, err := model.ParseRequirementID(p.RequirementID)
		if err != nil {
			return nil, err
		}
		a := RemoveTabStopInstance{Requirement: id, Position: *p.ID}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return a, nil

	case KindGetCurrentState:
		return GetCurrentState{}, nil
	case KindDisableIssues:
		return DisableIssues{}, nil
	case KindDisableTabStop:
		return DisableTabStop{}, nil
	case KindExistingTabUpdated:
		return ExistingTabUpdated{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, e.Type)
	}
}

// decodePayload unmarshals the payload into dst and checks its struct tags.
func (e Envelope) decodePayload(dst any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%w: %s: missing payload", ErrInvalidPayload, e.Type)
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, e.Type, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w", e.Type, invalid(err))
	}
	return nil
}

// invalid turns validator output into an ErrInvalidPayload error listing the
// failing fields.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(fields, "; "))
}

// nullToNil maps an explicit JSON null to a nil payload.
func nullToNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}

// maxLineSize bounds a single action line. Scan results for large pages can
// be several megabytes.
const maxLineSize = 64 * 1024 * 1024

// Reader reads actions from a JSON Lines stream.
// Blank lines and lines starting with '#' are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader on r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next returns the next action. It returns io.EOF when the stream is
// exhausted. Decode errors carry the line number and leave the Reader
// positioned after the bad line, so callers may continue reading.
func (r *Reader) Next() (Action, error) {
	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		a, err := Decode(line)
		if err != nil {
			return nil, &LineError{Line: r.line, Err: err}
		}
		return a, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// LineError is a decode error of a single line. Reading may continue after it.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}
