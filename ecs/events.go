package ecs

// EventKind identifies gameplay events raised by systems during a tick.
type EventKind string

const (
	EventDoorOpened         EventKind = "door_opened"
	EventDoorClosed         EventKind = "door_closed"
	EventInteractionZone    EventKind = "interaction_zone"
	EventEncounter          EventKind = "encounter"
	EventTalkRequested      EventKind = "talk_requested"
	EventPassThroughChanged EventKind = "pass_through_changed"
)

// Event is raised by one system and consumed by the scene after the tick.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
