package replay

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of streams replayed at once when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// Opener opens the stream of a source.
type Opener func(source string) (io.ReadCloser, error)

// OpenFile opens source as a file. The source "-" is stdin, which is
// closed with the stream so that a cancelled replay stops waiting on it.
func OpenFile(source string) (io.ReadCloser, error) {
	if source == "-" {
		return os.Stdin, nil
	}
	return os.Open(source) //nolint:gosec // User-provided stream path is intentional
}

// BatchProcessor replays multiple streams concurrently.
type BatchProcessor struct {
	// replayerFactory creates the replayer for one source, so per-source
	// settings can differ.
	replayerFactory func(source string) *Replayer

	open        Opener
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent replays.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithOpener replaces OpenFile as the way sources are opened.
func WithOpener(open Opener) BatchOption {
	return func(b *BatchProcessor) {
		if open != nil {
			b.open = open
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(replayerFactory func(source string) *Replayer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		replayerFactory: replayerFactory,
		open:            OpenFile,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch replays every source and returns one Result per source, in
// the order of sources. A failing source does not stop the others; its
// error is recorded in its Result. The returned error is only non-nil if
// ctx ended before every source was started.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string) ([]*Result, error) {
	bp.logger.Info("starting batch replay",
		"total_sources", len(sources),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	results := make([]*Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = &Result{Source: source, Cancelled: true, Error: ctx.Err().Error()}
				return ctx.Err()
			default:
			}

			results[i] = bp.replayOne(ctx, source)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch replay complete",
		"total_sources", len(sources),
		"elapsed", time.Since(start),
	)
	return results, err
}

func (bp *BatchProcessor) replayOne(ctx context.Context, source string) *Result {
	in, err := bp.open(source)
	if err != nil {
		bp.logger.Warn("cannot open source", "source", source, "error", err)
		return &Result{Source: source, Error: err.Error()}
	}
	defer in.Close() //nolint:errcheck // read-only stream

	result, err := bp.replayerFactory(source).Replay(ctx, source, in)
	if err != nil {
		bp.logger.Warn("replay failed", "source", source, "error", err)
	}
	return result
}
