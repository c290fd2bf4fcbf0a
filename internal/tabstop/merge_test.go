package tabstop

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/nao1215/a11yscan/internal/model"
)

func ev(ts float64, target string) model.TabStopEvent {
	return model.TabStopEvent{Timestamp: ts, Target: []string{target}, HTML: "<" + target + ">"}
}

func el(ts float64, target string, order int) model.TabbedElement {
	return model.TabbedElement{TabStopEvent: ev(ts, target), TabOrder: order}
}

// TestMerge tests merging of tab stop batches.
func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("first merge sorts and ranks", func(t *testing.T) {
		t.Parallel()

		got := Merge(nil, []model.TabStopEvent{ev(5, "b"), ev(1, "a")})
		want := []model.TabbedElement{el(1, "a", 1), el(5, "b", 2)}

		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, expected %+v", got, want)
		}
	})

	t.Run("new element lands between prior ones", func(t *testing.T) {
		t.Parallel()

		prior := Merge(nil, []model.TabStopEvent{ev(5, "b"), ev(1, "a")})
		got := Merge(prior, []model.TabStopEvent{ev(3, "c")})
		want := []model.TabbedElement{el(1, "a", 1), el(3, "c", 2), el(5, "b", 3)}

		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, expected %+v", got, want)
		}
	})

	t.Run("stale ranks are discarded", func(t *testing.T) {
		t.Parallel()

		prior := []model.TabbedElement{el(1, "a", 7), el(2, "b", 7)}
		got := Merge(prior, nil)

		if got[0].TabOrder != 1 || got[1].TabOrder != 2 {
			t.Errorf("got ranks %d, %d", got[0].TabOrder, got[1].TabOrder)
		}
	})

	t.Run("ties keep prior before new", func(t *testing.T) {
		t.Parallel()

		prior := []model.TabbedElement{el(2, "prior-1", 1), el(2, "prior-2", 2)}
		got := Merge(prior, []model.TabStopEvent{ev(2, "new-1"), ev(1, "first"), ev(2, "new-2")})

		var targets []string
		for _, e := range got {
			targets = append(targets, e.Target[0])
		}
		want := []string{"first", "prior-1", "prior-2", "new-1", "new-2"}
		if !reflect.DeepEqual(targets, want) {
			t.Errorf("got %v, expected %v", targets, want)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		got := Merge(nil, nil)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil result, got %#v", got)
		}
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		t.Parallel()

		prior := []model.TabbedElement{el(9, "late", 1)}
		batch := []model.TabStopEvent{ev(1, "early")}

		got := Merge(prior, batch)
		got[0].Target[0] = "changed"

		if prior[0].TabOrder != 1 || prior[0].Timestamp != 9 {
			t.Errorf("prior changed: %+v", prior[0])
		}
		if batch[0].Target[0] != "early" {
			t.Errorf("batch changed: %+v", batch[0])
		}
	})
}

// TestMergeDenseRanking tests that the ranking stays dense over many merges.
func TestMergeDenseRanking(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	var acc []model.TabbedElement

	for round := range 50 {
		batch := make([]model.TabStopEvent, rng.IntN(4))
		for i := range batch {
			batch[i] = ev(float64(rng.IntN(100)), "x")
		}

		acc = Merge(acc, batch)

		for i, e := range acc {
			if e.TabOrder != i+1 {
				t.Fatalf("round %d: position %d has rank %d", round, i, e.TabOrder)
			}
			if i > 0 && acc[i-1].Timestamp > e.Timestamp {
				t.Fatalf("round %d: not sorted at %d", round, i)
			}
		}
	}
}

// TestProject tests rank stripping.
func TestProject(t *testing.T) {
	t.Parallel()

	got := Project([]model.TabbedElement{el(3, "a", 1), el(4, "b", 2)})
	want := []model.TabStopEvent{ev(3, "a"), ev(4, "b")}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, expected %+v", got, want)
	}
}
