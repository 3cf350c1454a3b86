package ecs

import (
	"testing"

	"github.com/milk9111/overworld/ecs/component"
)

type position struct{ X, Y float64 }
type label struct{ Name string }
type marker struct{}

var (
	positionKind = component.NewComponentKind[position]()
	labelKind    = component.NewComponentKind[label]()
	markerKind   = component.NewComponentKind[marker]()
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_destroy_middle", 3, 1, 2},
		{"none_destroyed", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should succeed for a live entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity alive after destroy")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second destroy should report false")
				}
			}
			if got := len(Entities(w)); got != c.wantAlive {
				t.Fatalf("expected %d live entities, got %d", c.wantAlive, got)
			}
		})
	}
}

func TestRecycledSlotInvalidatesStaleHandle(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	if err := Add(w, old, labelKind, &label{Name: "vincent"}); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got id %d vs %d", fresh.id(), old.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if _, ok := Get(w, fresh, labelKind); ok {
		t.Fatalf("components must not survive destruction")
	}
	if err := Add(w, old, labelKind, &label{}); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestComponentAccess(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "nil_value_rejected",
			check: func(t *testing.T) {
				if err := Add[position](w, e, positionKind, nil); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
			},
		},
		{
			name: "get_returns_pointer",
			check: func(t *testing.T) {
				if err := Add(w, e, positionKind, &position{X: 1, Y: 2}); err != nil {
					t.Fatal(err)
				}
				p, ok := Get(w, e, positionKind)
				if !ok {
					t.Fatalf("expected position")
				}
				p.X = 40
				again, _ := Get(w, e, positionKind)
				if again.X != 40 {
					t.Fatalf("mutation through pointer lost: %v", again.X)
				}
			},
		},
		{
			name: "remove",
			check: func(t *testing.T) {
				if !Remove(w, e, positionKind) {
					t.Fatalf("expected remove to succeed")
				}
				if Has(w, e, positionKind) {
					t.Fatalf("component still present")
				}
				if Remove(w, e, positionKind) {
					t.Fatalf("second remove should report false")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.check)
	}
}

func TestQueries(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(Add(w, e1, positionKind, &position{}))
	must(Add(w, e2, positionKind, &position{}))
	must(Add(w, e2, labelKind, &label{Name: "door"}))
	must(Add(w, e3, labelKind, &label{Name: "tree"}))
	must(Add(w, e2, markerKind, &marker{}))

	t.Run("query_intersection", func(t *testing.T) {
		got := Query(w, positionKind, labelKind)
		if len(got) != 1 || got[0] != e2 {
			t.Fatalf("expected only e2, got %v", got)
		}
	})

	t.Run("query_missing_store", func(t *testing.T) {
		unused := component.NewComponentKind[int]()
		if got := Query(w, positionKind, unused); len(got) != 0 {
			t.Fatalf("expected empty, got %v", got)
		}
	})

	t.Run("first_lowest_id", func(t *testing.T) {
		got, ok := First(w, positionKind)
		if !ok || got != e1 {
			t.Fatalf("expected e1, got %v ok=%v", got, ok)
		}
	})

	t.Run("for_each_in_id_order", func(t *testing.T) {
		var names []string
		ForEach(w, labelKind, func(_ Entity, l *label) { names = append(names, l.Name) })
		if len(names) != 2 || names[0] != "door" || names[1] != "tree" {
			t.Fatalf("unexpected order %v", names)
		}
	})

	t.Run("for_each3", func(t *testing.T) {
		var res []Entity
		ForEach3(w, positionKind, labelKind, markerKind, func(e Entity, _ *position, _ *label, _ *marker) {
			res = append(res, e)
		})
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
	})

	t.Run("for_each_skips_destroyed", func(t *testing.T) {
		DestroyEntity(w, e2)
		count := 0
		ForEach2(w, positionKind, labelKind, func(Entity, *position, *label) { count++ })
		if count != 0 {
			t.Fatalf("expected no matches after destroy, got %d", count)
		}
	})
}

type countingSystem struct {
	calls   int
	freezes bool
}

func (c *countingSystem) Update(*World)              { c.calls++ }
func (c *countingSystem) FreezesWithGameplay() bool { return c.freezes }

func TestSchedulerFreeze(t *testing.T) {
	movement := &countingSystem{freezes: true}
	render := &countingSystem{}
	s := NewScheduler(movement, render)
	w := NewWorld()

	s.Update(w)
	s.SetFrozen(true)
	s.Update(w)

	if movement.calls != 1 {
		t.Fatalf("frozen system ran %d times, want 1", movement.calls)
	}
	if render.calls != 2 {
		t.Fatalf("unfrozen system ran %d times, want 2", render.calls)
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Kind: EventDoorOpened})
	w.Events().Push(Event{Kind: EventDoorClosed})
	got := w.Events().Drain()
	if len(got) != 2 || got[0].Kind != EventDoorOpened {
		t.Fatalf("unexpected events %v", got)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("queue not cleared")
	}
}
