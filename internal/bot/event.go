package bot

import "time"

// EventRingCapacity bounds how many lifecycle/serial events a bot retains
// (original_source crates/kartoffels-world/src/bot/events.rs: "const
// LENGTH: usize = 128").
const EventRingCapacity = 128

// Event is one entry in a bot's event ring: a human-readable message with
// a timestamp, surfaced in snapshots as events_tail.
type Event struct {
	At  time.Time
	Msg string
}

// EventRing is a fixed-capacity, oldest-drops-first log.
type EventRing struct {
	entries []Event
}

func (r *EventRing) Add(msg string) {
	if len(r.entries) >= EventRingCapacity {
		r.entries = r.entries[1:]
	}
	r.entries = append(r.entries, Event{At: time.Now(), Msg: msg})
}

// Tail returns the most recent n events, oldest first.
func (r *EventRing) Tail(n int) []Event {
	if n >= len(r.entries) {
		out := make([]Event, len(r.entries))
		copy(out, r.entries)
		return out
	}
	out := make([]Event, n)
	copy(out, r.entries[len(r.entries)-n:])
	return out
}

func (r *EventRing) Len() int { return len(r.entries) }

// Snapshot returns every retained event, oldest first, for persistence.
func (r *EventRing) Snapshot() []Event {
	out := make([]Event, len(r.entries))
	copy(out, r.entries)
	return out
}

// RestoreEventRing rebuilds a ring from a previously captured Snapshot,
// trimming to EventRingCapacity if the persisted record somehow exceeds
// it (e.g. after lowering the capacity constant).
func RestoreEventRing(events []Event) EventRing {
	if len(events) > EventRingCapacity {
		events = events[len(events)-EventRingCapacity:]
	}
	entries := make([]Event, len(events))
	copy(entries, events)
	return EventRing{entries: entries}
}
