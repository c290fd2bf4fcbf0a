package replay

import (
	"time"

	"github.com/nao1215/a11yscan/internal/action"
	"github.com/nao1215/a11yscan/internal/model"
)

// Result is the outcome of replaying one action stream.
type Result struct {
	// Source names the stream, usually its file path.
	Source string `json:"source"`

	// StoreID is the id of the store the stream was replayed into.
	StoreID string `json:"storeId,omitempty"`

	// State is the final state of the store.
	State *model.ScanResultData `json:"state"`

	// Applied is the number of accepted actions.
	Applied int `json:"applied"`

	// Rejected is the number of lines that failed to decode or whose
	// action was rejected by the store.
	Rejected int `json:"rejected"`

	// Skipped is the number of actions ignored by configuration.
	Skipped int `json:"skipped"`

	// Notifications is the number of observer notifications.
	Notifications int `json:"notifications"`

	// Errors lists every rejected line in stream order.
	Errors []ActionError `json:"errors,omitempty"`

	// Duration is the wall time of the replay.
	Duration time.Duration `json:"duration"`

	// Cancelled is true if the replay stopped because its context ended.
	Cancelled bool `json:"cancelled,omitempty"`

	// Error is set if the replay stopped early.
	Error string `json:"error,omitempty"`
}

// ActionError describes one rejected line.
type ActionError struct {
	// Line is the 1-based line number in the stream.
	Line int `json:"line"`

	// Kind is the action kind, empty if the line did not decode.
	Kind action.Kind `json:"kind,omitempty"`

	// Message is the error text.
	Message string `json:"message"`

	// Err is the underlying error.
	Err error `json:"-"`
}

func (r *Result) reject(line int, kind action.Kind, err error) {
	r.Rejected++
	r.Errors = append(r.Errors, ActionError{
		Line:    line,
		Kind:    kind,
		Message: err.Error(),
		Err:     err,
	})
}

// Summary returns the summary of the final state.
func (r *Result) Summary() *model.Summary {
	return model.NewSummary(r.State)
}

// Succeeded reports whether every action in the stream was accepted.
func (r *Result) Succeeded() bool {
	return r.Error == "" && r.Rejected == 0 && !r.Cancelled
}
