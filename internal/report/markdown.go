package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/a11yscan/internal/log"
	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/replay"
)

// MarkdownWriter outputs reports as GitHub Flavored Markdown with tables,
// alerts and a mermaid pie chart.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the replay result in Markdown format.
func (w *MarkdownWriter) Write(result *replay.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := result.Summary()

	w.writeHeader(md, result)
	w.writeRuleSummary(md, summary)
	w.writeFailingRules(md, result.State, summary)
	w.writeTabStops(md, summary)
	w.writeRequirements(md, summary)
	w.writeRejected(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *replay.Result) {
	md.H1("Accessibility Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + result.Source + "`"},
			{"Store", "`" + orDash(result.StoreID) + "`"},
			{"Applied Actions", strconv.Itoa(result.Applied)},
			{"Rejected Actions", strconv.Itoa(result.Rejected)},
			{"Skipped Actions", strconv.Itoa(result.Skipped)},
			{"Notifications", strconv.Itoa(result.Notifications)},
			{"Duration", result.Duration.String()},
			{"Status", statusText(result)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeRuleSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Rule Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Categories)+1)
	for _, c := range summary.Categories {
		scanned := "-"
		if c.Scanned {
			scanned = "yes"
			if !c.HasScanResult {
				scanned = "disabled"
			}
		}
		rows = append(rows, []string{
			categoryTitle(c.Category),
			scanned,
			strconv.Itoa(c.ElementCount),
			strconv.Itoa(c.RuleCount),
			strconv.Itoa(len(c.FailingRules)),
		})
	}
	rows = append(rows, []string{
		"**Total**", "", "",
		"**" + strconv.Itoa(summary.TotalRules()) + "**",
		"**" + strconv.Itoa(summary.TotalFailing()) + "**",
	})

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Scanned", "Elements", "Rules", "Failing"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.TotalRules() > 0 {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, summary)
}

// writePieChart writes the distribution of indexed rules over categories.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Indexed Rules per Category"),
		piechart.WithShowData(true),
	)
	for _, c := range summary.Categories {
		if c.RuleCount > 0 {
			chart.LabelAndIntValue(categoryTitle(c.Category), uint64(c.RuleCount))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	failedRequirements := 0
	for _, r := range summary.Requirements {
		if r.Status == model.StatusFail {
			failedRequirements++
		}
	}

	switch {
	case failedRequirements > 0:
		md.Cautionf("%d keyboard requirement(s) failed during tab stop assessment.", failedRequirements)
	case summary.TotalFailing() > 0:
		md.Warningf("%d rule(s) failed across all categories.", summary.TotalFailing())
	case summary.TotalRules() == 0:
		md.Note("No scan results were recorded.")
	default:
		md.Tip("No failing rules detected.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailingRules(md *markdown.Markdown, state *model.ScanResultData, summary *model.Summary) {
	md.H2("Failing Rules")
	md.PlainText("")

	if summary.TotalFailing() == 0 {
		md.PlainText("No failing rules.")
		md.PlainText("")
		return
	}

	for _, c := range summary.Categories {
		if len(c.FailingRules) == 0 {
			continue
		}
		cr, _ := state.Category(c.Category) //nolint:errcheck // category comes from the summary

		rows := make([][]string, 0, len(c.FailingRules))
		for _, id := range c.FailingRules {
			rr := cr.RuleIndex[id]
			rows = append(rows, []string{
				"`" + id + "`",
				"`" + orDash(rr.Selector) + "`",
				truncateString(orDash(rr.Help), 60),
			})
		}

		md.H3(categoryTitle(c.Category))
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Rule", "Selector", "Help"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, id := range c.FailingRules {
			if rr := cr.RuleIndex[id]; rr.FailureSummary != "" {
				md.Details(id, rr.FailureSummary)
			}
		}
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeTabStops(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Tab Stops")
	md.PlainText("")

	if !summary.TabStopsRecording {
		md.PlainText("Tab stop recording is off.")
		md.PlainText("")
		return
	}
	if summary.TabStopCount == 0 {
		md.PlainText("No tab stops recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, summary.TabStopCount)
	for _, te := range summary.TabStops {
		rows = append(rows, []string{
			strconv.Itoa(te.TabOrder),
			"`" + orDash(strings.Join(te.Target, " ")) + "`",
			"`" + truncateString(orDash(log.StripValueAttributes(te.HTML)), 50) + "`",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Order", "Target", "HTML"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeRequirements(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Keyboard Requirements")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Requirements))
	for _, r := range summary.Requirements {
		rows = append(rows, []string{
			requirementTitle(r.Requirement),
			statusBadge(r.Status),
			strconv.Itoa(r.InstanceCount),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Requirement", "Status", "Instances"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, r := range summary.Requirements {
		if len(r.Instances) > 0 {
			md.Details(requirementTitle(r.Requirement), strings.Join(r.Instances, "\n\n"))
		}
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeRejected(md *markdown.Markdown, result *replay.Result) {
	if len(result.Errors) == 0 {
		return
	}

	md.H2("Rejected Actions")
	md.PlainText("")

	rows := make([][]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		rows = append(rows, []string{
			strconv.Itoa(e.Line),
			orDash(string(e.Kind)),
			truncateString(e.Message, 80),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Line", "Action", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [a11yscan](https://github.com/nao1215/a11yscan)*")
}

// WriteComparison outputs the comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Accessibility Scan Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Before", "`" + c.Before + "`"},
			{"After", "`" + c.After + "`"},
		},
	})
	md.PlainText("")

	if !c.Changed() {
		md.Tip("The rule indexes are identical.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(c.Diffs))
	for _, d := range c.Diffs {
		if !d.Changed() {
			continue
		}
		rows = append(rows, []string{
			categoryTitle(d.Category),
			orDash(codeList(d.Added)),
			orDash(codeList(d.Removed)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Added", "Removed"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

func statusBadge(s model.Status) string {
	switch s {
	case model.StatusPass:
		return "✅ pass"
	case model.StatusFail:
		return "❌ fail"
	case model.StatusUnknown:
		return "❔ unknown"
	default:
		return fmt.Sprintf("`%s`", s)
	}
}

func codeList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}
