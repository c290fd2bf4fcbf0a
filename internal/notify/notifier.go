package notify

import (
	"slices"
	"sync"
)

// Observer is called after every state change.
type Observer func()

// Notifier keeps an ordered list of observers.
// The zero value is ready to use.
type Notifier struct {
	mu        sync.Mutex
	observers []subscription
	nextID    uint64
}

type subscription struct {
	id       uint64
	observer Observer
}

// Subscribe registers o and returns a function that removes it again.
// Observers run in registration order. Calling the returned function more
// than once is a no-op. A nil observer is ignored.
func (n *Notifier) Subscribe(o Observer) (unsubscribe func()) {
	if o == nil {
		return func() {}
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.observers = append(n.observers, subscription{id: id, observer: o})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = slices.DeleteFunc(n.observers, func(s subscription) bool {
		return s.id == id
	})
}

// Notify calls every registered observer synchronously, in registration
// order. The list is captured when Notify starts: observers added or removed
// by a callback take effect on the next call.
func (n *Notifier) Notify() {
	n.mu.Lock()
	observers := slices.Clone(n.observers)
	n.mu.Unlock()

	for _, s := range observers {
		s.observer()
	}
}

// Len returns the number of registered observers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.observers)
}
