package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/a11yscan/internal/config"
	"github.com/nao1215/a11yscan/internal/log"
	"github.com/nao1215/a11yscan/internal/report"
)

// errRulesChanged is returned by compare --fail-on-change when the rule
// indexes differ.
var errRulesChanged = errors.New("rule indexes differ")

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <before.jsonl> <after.jsonl>",
		Short: "Compare the rule indexes of two scan sessions",
		Long: `Compare replays two sessions and lists, per category, the rule ids that
appear only in the second session (added) or only in the first (removed).

Examples:
  # Compare a session before and after a fix
  a11yscan compare before.jsonl after.jsonl

  # Exit with an error if anything changed, for use in CI
  a11yscan compare --fail-on-change baseline.jsonl current.jsonl

  # Output comparison in Markdown format
  a11yscan compare --markdown before.jsonl after.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("continue-on-error", "k", false,
		"Keep replaying a session after an action was rejected")
	cmd.Flags().Bool("fail-on-change", false,
		"Exit with an error if the rule indexes differ")
	addReportFlags(cmd)

	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	cfg.Sources = args
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.BatchSize = len(args)

	var err error
	if cfg.ContinueOnError, err = cmd.Flags().GetBool("continue-on-error"); err != nil {
		return err
	}
	failOnChange, err := cmd.Flags().GetBool("fail-on-change")
	if err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runBatch(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := failedSources(results); err != nil {
		return err
	}

	comparison := report.NewComparison(results[0], results[1])
	if err := writeReports(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteComparison(comparison)
		return err
	}); err != nil {
		return err
	}

	if failOnChange && comparison.Changed() {
		return errRulesChanged
	}
	return nil
}
