package common

import (
	"testing"
	"time"
)

func TestSchedulerAfter(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(1000*time.Millisecond, func() { fired++ })

	s.Advance(999 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	s.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected one call, got %d", fired)
	}
	s.Advance(5 * time.Second)
	if fired != 1 {
		t.Fatalf("one-shot timer fired again")
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	ticks := 0
	s.Every(30*time.Millisecond, func() { ticks++ })
	s.Advance(100 * time.Millisecond)
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(10*time.Millisecond, func() { fired = true })
	if !s.Pending(id) {
		t.Fatalf("timer should be pending")
	}
	if !s.Cancel(id) {
		t.Fatalf("cancel should report true")
	}
	s.Advance(time.Second)
	if fired {
		t.Fatalf("cancelled timer fired")
	}
}

func TestSchedulerOrderAndNestedScheduling(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "b") })
	s.After(10*time.Millisecond, func() {
		order = append(order, "a")
		s.After(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	s.Advance(50 * time.Millisecond)
	want := []string{"a", "a2", "b"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}
