package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/a11yscan/internal/config"
	"github.com/nao1215/a11yscan/internal/log"
	"github.com/nao1215/a11yscan/internal/replay"
	"github.com/nao1215/a11yscan/internal/report"
)

// NewReplayCmd creates the replay command.
func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [session.jsonl...]",
		Short: "Replay scan sessions and report the resulting state",
		Long: `Replay feeds every action of a recorded session through a fresh scan
result store and reports the final state. Each file is replayed into its own
store; several files are replayed concurrently.

Use "-" to read a session from stdin.

Examples:
  # Replay one session
  a11yscan replay session.jsonl

  # Replay several sessions, two at a time, as Markdown
  a11yscan replay -b 2 --markdown a.jsonl b.jsonl c.jsonl

  # Keep going after rejected actions and write JSON to a file
  a11yscan replay -k --json -o report/session.json session.jsonl

Configuration file (.a11yscan) example:
  defaults:
    ignoreKinds: [getCurrentState]
  sources:
    session.jsonl:
      continueOnError: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runReplayCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Maximum duration of one replay")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent replays")
	cmd.Flags().BoolP("continue-on-error", "k", false,
		"Keep replaying a session after an action was rejected")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .a11yscan in current, XDG config or home directory)")
	addReportFlags(cmd)

	return cmd
}

// addReportFlags adds the output flags shared by replay and compare.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
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

	if err := writeReports(cmd, cfg, func(w report.Writer) error {
		for _, r := range results {
			if _, err := w.Write(r); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return failedSources(results)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the config file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Sources = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.ContinueOnError, err = cmd.Flags().GetBool("continue-on-error"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	// An explicitly given config file must exist. Otherwise a missing file
	// means no per-source settings.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SourceConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	return cfg, nil
}

func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	return err
}

// runBatch replays every source of cfg with its per-source settings.
func runBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*replay.Result, error) {
	bp := replay.NewBatchProcessor(
		func(source string) *replay.Replayer {
			return newReplayer(cfg, source, logger)
		},
		replay.WithConcurrency(cfg.BatchSize),
		replay.WithBatchLogger(logger),
	)
	return bp.ProcessBatch(ctx, cfg.Sources)
}

// newReplayer creates the replayer for source.
func newReplayer(cfg *config.Config, source string, logger *slog.Logger) *replay.Replayer {
	sc := cfg.SourceConfig(source)

	continueOnError := cfg.ContinueOnError
	if sc.ContinueOnError != nil {
		continueOnError = *sc.ContinueOnError
	}

	return replay.New(
		replay.WithLogger(logger),
		replay.WithContinueOnError(continueOnError),
		replay.WithStoreName(sc.StoreName),
		replay.WithIgnoreKinds(sc.IgnoreKinds...),
		replay.WithTimeout(cfg.Timeout),
	)
}

// writeReports opens the report destination, builds the writer selected by
// cfg and passes it to write.
func writeReports(cmd *cobra.Command, cfg *config.Config, write func(report.Writer) error) error {
	out := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		f, err := createReportFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return write(newWriter(cfg, out))
}

// newWriter returns the report writer selected by cfg.
func newWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// createReportFile creates path and its parent directories. Reports may
// contain page markup, so the file is readable by the owner only.
func createReportFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// errReplayFailed is returned when at least one source stopped early.
var errReplayFailed = errors.New("replay failed")

func failedSources(results []*replay.Result) error {
	var errs []error
	for _, r := range results {
		if r.Error != "" {
			errs = append(errs, fmt.Errorf("%w: %s: %s", errReplayFailed, r.Source, r.Error))
		}
	}
	return errors.Join(errs...)
}
