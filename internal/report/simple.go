package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/replay"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether empty sections are shown.
	showEmpty bool

	// verbose adds rule help text and instance descriptions.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

const ruleWidth = 70

// Write outputs the replay result in human-readable format.
func (w *SimpleWriter) Write(result *replay.Result) (int, error) {
	var sb strings.Builder
	summary := result.Summary()

	w.writeHeader(&sb, result)
	w.writeCategories(&sb, result.State, summary)
	w.writeTabStops(&sb, summary)
	w.writeRequirements(&sb, summary)
	w.writeRejected(&sb, result)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *replay.Result) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                     ACCESSIBILITY SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source:         %s\n", result.Source)
	fmt.Fprintf(sb, "Actions:        %d applied, %d rejected, %d skipped\n", result.Applied, result.Rejected, result.Skipped)
	fmt.Fprintf(sb, "Notifications:  %d\n", result.Notifications)
	fmt.Fprintf(sb, "Duration:       %s\n", result.Duration)
	fmt.Fprintf(sb, "Status:         %s\n\n", statusText(result))
}

func (w *SimpleWriter) writeCategories(sb *strings.Builder, state *model.ScanResultData, summary *model.Summary) {
	section(sb, "RULE SUMMARY")

	for _, c := range summary.Categories {
		if !c.Scanned && !w.showEmpty {
			continue
		}
		fmt.Fprintf(sb, "  %-14s %3d element(s) %3d rule(s) %3d failing\n",
			categoryTitle(c.Category)+":", c.ElementCount, c.RuleCount, len(c.FailingRules))

		if len(c.FailingRules) == 0 {
			continue
		}
		cr, _ := state.Category(c.Category) //nolint:errcheck // category comes from the summary
		for _, id := range c.FailingRules {
			rr := cr.RuleIndex[id]
			fmt.Fprintf(sb, "    [!] %s", id)
			if rr.Selector != "" {
				fmt.Fprintf(sb, " at %s", rr.Selector)
			}
			sb.WriteString("\n")
			if w.verbose && rr.Help != "" {
				fmt.Fprintf(sb, "        %s\n", rr.Help)
			}
		}
	}
	fmt.Fprintf(sb, "\n  TOTAL:          %d rule(s), %d failing\n\n", summary.TotalRules(), summary.TotalFailing())
}

func (w *SimpleWriter) writeTabStops(sb *strings.Builder, summary *model.Summary) {
	if !summary.TabStopsRecording && !w.showEmpty {
		return
	}

	section(sb, "TAB STOPS")

	switch {
	case !summary.TabStopsRecording:
		sb.WriteString("  Recording is off\n")
	case summary.TabStopCount == 0:
		sb.WriteString("  No tab stops recorded\n")
	default:
		for _, te := range summary.TabStops {
			fmt.Fprintf(sb, "  %3d. %s\n", te.TabOrder, strings.Join(te.Target, " "))
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeRequirements(sb *strings.Builder, summary *model.Summary) {
	section(sb, "KEYBOARD REQUIREMENTS")

	for _, r := range summary.Requirements {
		fmt.Fprintf(sb, "  [%s] %-20s %d instance(s)\n", statusIndicator(r.Status), requirementTitle(r.Requirement), r.InstanceCount)
		if w.verbose {
			for _, d := range r.Instances {
				fmt.Fprintf(sb, "      * %s\n", d)
			}
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeRejected(sb *strings.Builder, result *replay.Result) {
	if len(result.Errors) == 0 {
		return
	}

	section(sb, "REJECTED ACTIONS")
	for _, e := range result.Errors {
		fmt.Fprintf(sb, "  line %d: %s\n", e.Line, e.Message)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by a11yscan\n")
	sb.WriteString("https://github.com/nao1215/a11yscan\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// WriteComparison outputs the comparison in human-readable format.
func (w *SimpleWriter) WriteComparison(c *Comparison) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Comparing %s -> %s\n\n", c.Before, c.After)
	if !c.Changed() {
		sb.WriteString("  No differences in rule indexes\n")
		return io.WriteString(w.output, sb.String())
	}

	for _, d := range c.Diffs {
		if !d.Changed() && !w.showEmpty {
			continue
		}
		fmt.Fprintf(&sb, "  %s\n", categoryTitle(d.Category))
		for _, id := range d.Added {
			fmt.Fprintf(&sb, "    + %s\n", id)
		}
		for _, id := range d.Removed {
			fmt.Fprintf(&sb, "    - %s\n", id)
		}
	}
	return io.WriteString(w.output, sb.String())
}

func statusIndicator(s model.Status) string {
	switch s {
	case model.StatusPass:
		return "PASS"
	case model.StatusFail:
		return "FAIL"
	case model.StatusUnknown:
		return " ?? "
	default:
		return string(s)
	}
}
