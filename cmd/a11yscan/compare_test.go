package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/report"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()
	if !strings.HasPrefix(cmd.Use, "compare") {
		t.Errorf("unexpected use %q", cmd.Use)
	}
	for _, name := range []string{"json", "markdown", "output", "continue-on-error", "fail-on-change"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

// TestRunCompareCmd tests comparing two sessions.
func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("json comparison", func(t *testing.T) {
		t.Parallel()
		before := writeSession(t, "before.jsonl", sessionBefore)
		after := writeSession(t, "after.jsonl", sessionAfter)

		out, err := executeRoot(t, "compare", "--json", before, after)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var c report.Comparison
		if err := json.Unmarshal([]byte(out), &c); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, out)
		}
		if c.Before != before || c.After != after {
			t.Errorf("got sources %q and %q", c.Before, c.After)
		}
		var issues model.CategoryDiff
		for _, d := range c.Diffs {
			if d.Category == model.CategoryIssues {
				issues = d
			}
		}
		if len(issues.Added) != 1 || issues.Added[0] != "image-alt" {
			t.Errorf("expected image-alt added, got %v", issues.Added)
		}
		if len(issues.Removed) != 1 || issues.Removed[0] != "region" {
			t.Errorf("expected region removed, got %v", issues.Removed)
		}
	})

	t.Run("fail on change", func(t *testing.T) {
		t.Parallel()
		before := writeSession(t, "before.jsonl", sessionBefore)
		after := writeSession(t, "after.jsonl", sessionAfter)

		_, err := executeRoot(t, "compare", "--fail-on-change", before, after)
		if !errors.Is(err, errRulesChanged) {
			t.Errorf("expected errRulesChanged, got %v", err)
		}
	})

	t.Run("identical sessions", func(t *testing.T) {
		t.Parallel()
		before := writeSession(t, "before.jsonl", sessionBefore)

		out, err := executeRoot(t, "compare", "--fail-on-change", before, before)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No differences") {
			t.Errorf("expected no differences, got %q", out)
		}
	})

	t.Run("requires two arguments", func(t *testing.T) {
		t.Parallel()
		before := writeSession(t, "before.jsonl", sessionBefore)

		if _, err := executeRoot(t, "compare", before); err == nil {
			t.Error("expected error for a single argument")
		}
	})
}
