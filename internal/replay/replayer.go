package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/nao1215/a11yscan/internal/action"
	"github.com/nao1215/a11yscan/internal/store"
)

// Replayer replays a single action stream.
type Replayer struct {
	logger *slog.Logger

	// continueOnError keeps reading after a rejected line. If false, the
	// first rejected line ends the replay with its error.
	continueOnError bool

	storeName   string
	ignoreKinds []action.Kind
	timeout     time.Duration
}

// Option is a function that configures a Replayer.
type Option func(*Replayer)

// WithLogger sets a custom logger for the replayer and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Replayer) {
		r.logger = logger
	}
}

// WithContinueOnError configures the replayer to keep going after a line
// was rejected. The rejection is still recorded in the Result.
func WithContinueOnError(continueOnError bool) Option {
	return func(r *Replayer) {
		r.continueOnError = continueOnError
	}
}

// WithStoreName sets the name of the store in log output.
func WithStoreName(name string) Option {
	return func(r *Replayer) {
		r.storeName = name
	}
}

// WithIgnoreKinds skips actions of the given kinds.
func WithIgnoreKinds(kinds ...action.Kind) Option {
	return func(r *Replayer) {
		r.ignoreKinds = append(r.ignoreKinds, kinds...)
	}
}

// WithTimeout bounds the duration of a replay. Zero means no limit.
// A read blocked past the deadline is only interrupted if the stream
// passed to Replay is an io.Closer.
func WithTimeout(d time.Duration) Option {
	return func(r *Replayer) {
		r.timeout = d
	}
}

// New creates a new Replayer with the given options.
func New(opts ...Option) *Replayer {
	r := &Replayer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.storeName == "" {
		r.storeName = store.DefaultName
	}
	return r
}

// Replay reads actions from in and publishes them on a new hub bound to a
// new store. The context is checked after every line read. If in is an
// io.Closer it is closed when the context ends.
//
// The returned Result is never nil. The error is non-nil if the replay
// stopped early: the context ended, the stream could not be read, or a line
// was rejected and the replayer does not continue on error.
func (r *Replayer) Replay(ctx context.Context, source string, in io.Reader) (*Result, error) {
	start := time.Now()
	result := &Result{Source: source}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// Closing the stream ends a read blocked on a silent producer.
	if c, ok := in.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() {
			_ = c.Close() //nolint:errcheck // the read reports the failure
		})
		defer stop()
	}

	reader := action.NewReader(in)
	st := store.New(
		store.WithLogger(r.logger.With("source", source)),
		store.WithName(r.storeName),
		store.WithErrorHandler(func(a action.Action, err error) {
			result.reject(reader.Line(), a.Kind(), err)
		}),
	)
	hub := action.NewHub()
	if err := st.Bind(hub); err != nil {
		return result, err
	}
	unsubscribe := st.Subscribe(func() { result.Notifications++ })
	defer unsubscribe()

	r.logger.Debug("replay started", "source", source, "store_id", st.ID().String())

	err := r.run(ctx, reader, hub, result)

	result.StoreID = st.ID().String()
	result.State = st.State()
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err.Error()
	}

	r.logger.Info("replay finished",
		"source", source,
		"applied", result.Applied,
		"rejected", result.Rejected,
		"skipped", result.Skipped,
		"elapsed", result.Duration,
	)
	return result, err
}

func (r *Replayer) run(ctx context.Context, reader *action.Reader, hub *action.Hub, result *Result) error {
	for {
		a, err := reader.Next()

		// Reading can block, so the context is checked after every line.
		// It comes first: a cancelled replay closes the stream, which
		// surfaces as a read error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.logger.Warn("replay cancelled", "source", result.Source, "line", reader.Line(), "reason", ctxErr)
			result.Cancelled = true
			return ctxErr
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			var lineErr *action.LineError
			if !errors.As(err, &lineErr) {
				return fmt.Errorf("read %s: %w", result.Source, err)
			}
			result.reject(lineErr.Line, "", lineErr.Err)
			if !r.continueOnError {
				return err
			}
			continue
		}

		if slices.Contains(r.ignoreKinds, a.Kind()) {
			result.Skipped++
			continue
		}

		if err := hub.Publish(a); err != nil {
			result.reject(reader.Line(), a.Kind(), err)
			if !r.continueOnError {
				return &action.LineError{Line: reader.Line(), Err: err}
			}
			continue
		}
		result.Applied++
	}
}
