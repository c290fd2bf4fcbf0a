// Package report writes replay results and comparisons.
//
// Three formats are provided:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a pie chart
//
// Writers implement the Writer interface and can be combined with
// MultiWriter.
package report
