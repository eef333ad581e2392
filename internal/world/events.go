package world

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tinyrange/botarena/internal/bot"
)

// EventStreamCapacity bounds each event subscriber's buffer
// (original_source's config.rs: "EVENT_STREAM_CAPACITY = 128").
const EventStreamCapacity = 128

// EventKind discriminates an Event's payload.
type EventKind uint8

const (
	EventSpawned EventKind = iota
	EventKilled
	EventLagged
)

// Event is one lifecycle notification published to event subscribers.
type Event struct {
	Kind EventKind
	At   time.Time

	// Spawned / Killed
	BotID bot.ID

	// Killed only
	Reason string
	Killer *bot.ID

	// Lagged only: how many events this subscriber missed.
	Dropped uint64
}

// EventBus fans a stream of Events out to any number of subscribers, each
// with its own bounded buffer. A subscriber that falls behind doesn't
// block publication or other subscribers; it instead observes a single
// EventLagged marker carrying how many events it missed, once there's
// room to deliver it (spec.md 5: "lagging subscribers observe a 'lagged
// by N' marker rather than unbounded memory growth"), grounded on the
// teacher's internal/chipset/lineset.go mutex-guarded subscriber registry
// pattern (register/broadcast under one mutex, deliver outside it).
type EventBus struct {
	mu   sync.Mutex
	subs map[*EventSubscription]struct{}
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[*EventSubscription]struct{})}
}

// EventSubscription is one subscriber's view of the bus.
type EventSubscription struct {
	ch      chan Event
	dropped atomic.Uint64

	bus *EventBus
}

// Subscribe registers a new subscriber with its own bounded buffer.
func (b *EventBus) Subscribe() *EventSubscription {
	sub := &EventSubscription{ch: make(chan Event, EventStreamCapacity), bus: b}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes sub from the bus. Safe to call more than once.
func (b *EventBus) Unsubscribe(sub *EventSubscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// Publish delivers ev to every current subscriber, non-blocking; a
// subscriber whose buffer is full has its drop counter incremented
// instead of blocking the publisher.
func (b *EventBus) Publish(ev Event) {
	b.mu.Lock()
	subs := make([]*EventSubscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		select {
		case s.ch <- ev:
		default:
			s.dropped.Add(1)
		}
	}
}

// Recv returns the next event for this subscriber, blocking until one
// arrives or done is closed. Events already buffered are returned first;
// once the buffer is empty, if events were dropped since the last marker,
// Recv returns a synthetic EventLagged marker carrying the drop count
// before waiting for the next real event.
func (s *EventSubscription) Recv(done <-chan struct{}) (Event, bool) {
	select {
	case ev := <-s.ch:
		return ev, true
	default:
	}
	if n := s.dropped.Swap(0); n > 0 {
		return Event{Kind: EventLagged, At: time.Now(), Dropped: n}, true
	}
	select {
	case ev := <-s.ch:
		return ev, true
	case <-done:
		return Event{}, false
	}
}

func (s *EventSubscription) Close() {
	s.bus.Unsubscribe(s)
}
