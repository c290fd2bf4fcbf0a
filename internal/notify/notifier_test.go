package notify

import (
	"reflect"
	"sync"
	"testing"
)

// TestNotifier tests observer fan-out.
func TestNotifier(t *testing.T) {
	t.Parallel()

	t.Run("zero value notifies nobody", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		n.Notify()

		if n.Len() != 0 {
			t.Errorf("expected 0 observers, got %d", n.Len())
		}
	})

	t.Run("calls observers in registration order", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		var calls []string
		n.Subscribe(func() { calls = append(calls, "first") })
		n.Subscribe(func() { calls = append(calls, "second") })
		n.Subscribe(func() { calls = append(calls, "third") })

		n.Notify()

		want := []string{"first", "second", "third"}
		if !reflect.DeepEqual(calls, want) {
			t.Errorf("got %v, expected %v", calls, want)
		}
	})

	t.Run("one notify is one call per observer", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		count := 0
		n.Subscribe(func() { count++ })

		for range 3 {
			n.Notify()
		}

		if count != 3 {
			t.Errorf("expected 3 calls, got %d", count)
		}
	})

	t.Run("unsubscribe removes only that observer", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		var calls []string
		n.Subscribe(func() { calls = append(calls, "a") })
		unsubscribe := n.Subscribe(func() { calls = append(calls, "b") })
		n.Subscribe(func() { calls = append(calls, "c") })

		unsubscribe()
		unsubscribe()
		n.Notify()

		if !reflect.DeepEqual(calls, []string{"a", "c"}) {
			t.Errorf("got %v", calls)
		}
		if n.Len() != 2 {
			t.Errorf("expected 2 observers, got %d", n.Len())
		}
	})

	t.Run("subscription during notify applies next time", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		late := 0
		added := false
		n.Subscribe(func() {
			if !added {
				added = true
				n.Subscribe(func() { late++ })
			}
		})

		n.Notify()
		if late != 0 {
			t.Errorf("expected late observer not to run yet, ran %d", late)
		}

		n.Notify()
		if late != 1 {
			t.Errorf("expected late observer to run once, ran %d", late)
		}
	})

	t.Run("nil observer is ignored", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		n.Subscribe(nil)()
		n.Notify()

		if n.Len() != 0 {
			t.Errorf("expected 0 observers, got %d", n.Len())
		}
	})

	t.Run("concurrent subscribe and notify", func(t *testing.T) {
		t.Parallel()

		var n Notifier
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unsubscribe := n.Subscribe(func() {})
				n.Notify()
				unsubscribe()
			}()
		}
		wg.Wait()

		if n.Len() != 0 {
			t.Errorf("expected 0 observers, got %d", n.Len())
		}
	})
}
