package action

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nao1215/a11yscan/internal/model"
)

// TestHub tests subscription and publishing.
func TestHub(t *testing.T) {
	t.Parallel()

	t.Run("routes by kind in subscription order", func(t *testing.T) {
		t.Parallel()

		h := NewHub()
		var calls []string
		mustSubscribe(t, h, KindDisableIssues, func(Action) error {
			calls = append(calls, "issues-1")
			return nil
		})
		mustSubscribe(t, h, KindDisableTabStop, func(Action) error {
			calls = append(calls, "tabstop")
			return nil
		})
		mustSubscribe(t, h, KindDisableIssues, func(Action) error {
			calls = append(calls, "issues-2")
			return nil
		})

		if err := h.Publish(DisableIssues{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !reflect.DeepEqual(calls, []string{"issues-1", "issues-2"}) {
			t.Errorf("got %v", calls)
		}
		if h.ListenerCount(KindDisableIssues) != 2 {
			t.Errorf("expected 2 listeners, got %d", h.ListenerCount(KindDisableIssues))
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		h := NewHub()
		err := h.Subscribe(Kind("scanStarted"), func(Action) error { return nil })
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("rejects nil listener", func(t *testing.T) {
		t.Parallel()

		if err := NewHub().Subscribe(KindDisableIssues, nil); err == nil {
			t.Error("expected error for nil listener")
		}
	})

	t.Run("invalid action reaches no listener", func(t *testing.T) {
		t.Parallel()

		h := NewHub()
		called := false
		mustSubscribe(t, h, KindScanCompleted, func(Action) error {
			called = true
			return nil
		})

		err := h.Publish(ScanCompleted{Category: model.Category(99)})
		if !errors.Is(err, model.ErrUnknownCategory) {
			t.Errorf("expected ErrUnknownCategory, got %v", err)
		}
		if called {
			t.Error("listener must not run for an invalid action")
		}
	})

	t.Run("nil action", func(t *testing.T) {
		t.Parallel()

		if err := NewHub().Publish(nil); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected ErrInvalidPayload, got %v", err)
		}
	})

	t.Run("joins listener errors and keeps going", func(t *testing.T) {
		t.Parallel()

		h := NewHub()
		errA := errors.New("a")
		errB := errors.New("b")
		ran := 0
		mustSubscribe(t, h, KindExistingTabUpdated, func(Action) error { ran++; return errA })
		mustSubscribe(t, h, KindExistingTabUpdated, func(Action) error { ran++; return errB })

		err := h.Publish(ExistingTabUpdated{})
		if !errors.Is(err, errA) || !errors.Is(err, errB) {
			t.Errorf("expected joined errors, got %v", err)
		}
		if ran != 2 {
			t.Errorf("expected both listeners to run, ran %d", ran)
		}
	})
}

func mustSubscribe(t *testing.T, h *Hub, kind Kind, l Listener) {
	t.Helper()
	if err := h.Subscribe(kind, l); err != nil {
		t.Fatalf("subscribe %s: %v", kind, err)
	}
}
