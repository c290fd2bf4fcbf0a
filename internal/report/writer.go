package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/replay"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report of one replay.
	// Returns the number of bytes written and any error encountered.
	Write(result *replay.Result) (int, error)

	// WriteComparison outputs the rule index differences of two replays.
	WriteComparison(c *Comparison) (int, error)
}

// Comparison holds the rule index differences between two replays.
type Comparison struct {
	Before string               `json:"before"`
	After  string               `json:"after"`
	Diffs  []model.CategoryDiff `json:"diffs"`
}

// NewComparison compares the final states of two replays.
func NewComparison(before, after *replay.Result) *Comparison {
	return &Comparison{
		Before: before.Source,
		After:  after.Source,
		Diffs:  model.CompareRuleIndexes(before.State, after.State),
	}
}

// Changed reports whether any category differs.
func (c *Comparison) Changed() bool {
	for _, d := range c.Diffs {
		if d.Changed() {
			return true
		}
	}
	return false
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all Writers. It stops on the first error.
func (m *MultiWriter) Write(result *replay.Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteComparison outputs the comparison to all Writers.
func (m *MultiWriter) WriteComparison(c *Comparison) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteComparison(c)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// categoryTitle returns a display title such as "Needs Review".
func categoryTitle(c model.Category) string {
	var sb strings.Builder
	for i, r := range c.String() {
		if i > 0 && r >= 'A' && r <= 'Z' {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return cases.Title(language.English).String(sb.String())
}

// requirementTitle returns a display title such as "Keyboard Traps".
func requirementTitle(id model.RequirementID) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id.String(), "-", " "))
}

// statusText returns a one-line status of a replay.
func statusText(result *replay.Result) string {
	switch {
	case result.Cancelled:
		return "CANCELLED (partial state)"
	case result.Error != "":
		return "STOPPED - " + result.Error
	case result.Rejected > 0:
		return "COMPLETE with rejected actions"
	default:
		return "Complete"
	}
}

// truncateString truncates s to maxLen bytes with an ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
