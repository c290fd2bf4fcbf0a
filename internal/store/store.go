package store

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nao1215/a11yscan/internal/action"
	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/notify"
)

// DefaultName is the store name used in log output when none is given.
const DefaultName = "VisualizationScanResultStore"

// ErrorHandler receives the error of a queued action. Queued actions are
// applied after their Dispatch call has returned, so their errors cannot be
// returned to the caller.
type ErrorHandler func(a action.Action, err error)

// Store owns the canonical scan result state.
type Store struct {
	// mu guards state. Writers are limited to the draining goroutine.
	mu    sync.RWMutex
	state *model.ScanResultData

	notifier notify.Notifier

	// queueMu guards queue and draining.
	queueMu  sync.Mutex
	queue    []action.Action
	draining bool

	id           uuid.UUID
	name         string
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithName sets the name reported in log output.
func WithName(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// WithErrorHandler sets the handler for errors of queued actions.
// By default they are logged at error level.
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Store) {
		s.errorHandler = h
	}
}

// New creates a Store holding the default state.
func New(opts ...Option) *Store {
	s := &Store{
		state: model.NewDefaultState(),
		id:    uuid.New(),
		name:  DefaultName,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("store", s.name, "store_id", s.id.String())

	if s.errorHandler == nil {
		s.errorHandler = func(a action.Action, err error) {
			s.logger.Error("queued action rejected",
				"action", a.Kind(),
				"error", err,
			)
		}
	}

	return s
}

// ID returns the unique id of this store instance.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.name
}

// DefaultState returns a freshly constructed default state.
func (s *Store) DefaultState() *model.ScanResultData {
	return model.NewDefaultState()
}

// State returns a deep copy of the current state.
// The copy is owned by the caller and is not affected by later actions.
func (s *Store) State() *model.ScanResultData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers an observer that is called after every accepted
// action. It returns a function that removes the observer.
func (s *Store) Subscribe(o notify.Observer) (unsubscribe func()) {
	return s.notifier.Subscribe(o)
}

// Bind subscribes the store to every action kind of hub.
func (s *Store) Bind(hub *action.Hub) error {
	for _, kind := range action.Kinds() {
		if err := hub.Subscribe(kind, s.Dispatch); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch applies a to the state and notifies observers.
//
// If no other action is in progress, a is applied before Dispatch returns
// and its error, if any, is returned. Otherwise a is queued behind the
// current action, Dispatch returns nil, and an error is reported to the
// ErrorHandler instead. In both cases a is validated first, and an invalid
// action is rejected immediately.
func (s *Store) Dispatch(a action.Action) error {
	if a == nil {
		return errNilAction
	}
	if err := a.Validate(); err != nil {
		s.logger.Warn("action rejected", "action", a.Kind(), "error", err)
		return err
	}

	s.queueMu.Lock()
	if s.draining {
		s.queue = append(s.queue, a)
		s.queueMu.Unlock()
		s.logger.Debug("action queued", "action", a.Kind())
		return nil
	}
	s.draining = true
	s.queueMu.Unlock()

	defer func() {
		// An observer panicked. Drop the queue so the next Dispatch starts
		// clean, and let the panic continue.
		if r := recover(); r != nil {
			s.queueMu.Lock()
			s.queue = nil
			s.draining = false
			s.queueMu.Unlock()
			panic(r)
		}
	}()

	err := s.apply(a)
	s.drain()
	return err
}

// drain applies queued actions until the queue is empty.
func (s *Store) drain() {
	for {
		s.queueMu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.queueMu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.queueMu.Unlock()

		if err := s.apply(next); err != nil {
			s.errorHandler(next, err)
		}
	}
}

func (s *Store) mutate(a action.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle(a)
}

// apply runs the handler for a and notifies once if the handler succeeded.
func (s *Store) apply(a action.Action) error {
	err := s.mutate(a)
	if err != nil {
		s.logger.Warn("action rejected", "action", a.Kind(), "error", err)
		return err
	}

	s.logger.Debug("action applied", "action", a.Kind())
	s.notifier.Notify()
	return nil
}
