package action

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Listener handles one published action.
type Listener func(Action) error

// Hub is the event channel: a fixed catalog of action sources, each of which
// accepts listeners. Producers publish, consumers subscribe.
type Hub struct {
	mu        sync.RWMutex
	listeners map[Kind][]Listener
}

// NewHub creates a Hub with no listeners.
func NewHub() *Hub {
	return &Hub{listeners: make(map[Kind][]Listener, len(kinds))}
}

// Subscribe adds l to the listeners of kind.
// It returns ErrUnknownKind if kind is not part of the catalog.
func (h *Hub) Subscribe(kind Kind, l Listener) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if l == nil {
		return errors.New("nil listener")
	}

	h.mu.Lock()
	h.listeners[kind] = append(h.listeners[kind], l)
	h.mu.Unlock()
	return nil
}

// Publish validates a and passes it to every listener of its kind, in
// subscription order. Listener errors are joined; a failing listener does not
// stop the following ones.
func (h *Hub) Publish(a Action) error {
	if a == nil {
		return fmt.Errorf("%w: nil action", ErrInvalidPayload)
	}
	if err := a.Validate(); err != nil {
		return err
	}

	h.mu.RLock()
	listeners := slices.Clone(h.listeners[a.Kind()])
	h.mu.RUnlock()

	var errs []error
	for _, l := range listeners {
		if err := l(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListenerCount returns the number of listeners subscribed to kind.
func (h *Hub) ListenerCount(kind Kind) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[kind])
}
