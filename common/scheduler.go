package common

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration
	fn       func()
}

// Scheduler runs delayed and repeating callbacks on the game thread. Time
// only moves when Advance is called from Update, so callbacks never race
// with gameplay state.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers []*timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// After schedules fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every schedules fn repeatedly at the given interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		return 0
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) TimerID {
	if s == nil || fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, due: s.now + d, interval: interval, fn: fn})
	return s.nextID
}

// Cancel removes a pending timer. It reports whether one was removed.
func (s *Scheduler) Cancel(id TimerID) bool {
	if s == nil || id == 0 {
		return false
	}
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether the timer is still scheduled.
func (s *Scheduler) Pending(id TimerID) bool {
	if s == nil {
		return false
	}
	for _, t := range s.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

// Advance moves the clock by dt and fires every timer that came due, in due
// order. A repeating timer fires once per elapsed interval.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil || dt < 0 {
		return
	}
	target := s.now + dt
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			s.Cancel(next.id)
		}
		next.fn()
	}
	s.now = target
}

func (s *Scheduler) nextDue(limit time.Duration) *timer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].due < s.timers[j].due })
	if s.timers[0].due > limit {
		return nil
	}
	return s.timers[0]
}

// Clear drops every pending timer.
func (s *Scheduler) Clear() {
	if s == nil {
		return
	}
	s.timers = nil
}
