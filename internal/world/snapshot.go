package world

import (
	"sync"

	"github.com/tinyrange/botarena/internal/bot"
	"github.com/tinyrange/botarena/internal/geom"
	"github.com/tinyrange/botarena/internal/worldmap"
)

// BotSnapshot is one alive bot's publicly visible state (spec.md 6:
// "bots: [ { id, pos, dir, age, serial_tail, events_tail } ]").
type BotSnapshot struct {
	ID         bot.ID
	Pos        geom.Vec2
	Facing     geom.Dir
	Age        uint64
	SerialTail []uint32
	EventsTail []bot.Event
}

// DeadSnapshot is one dead-history entry (spec.md 6: "dead: [ { id,
// reason, killer } ]").
type DeadSnapshot struct {
	ID     bot.ID
	Reason string
	Killer *bot.ID
}

// Snapshot is the immutable, shareable description of a world at the end
// of one tick (spec.md 6).
type Snapshot struct {
	Clock uint64
	Map   *worldmap.Map
	Bots  []BotSnapshot
	Queue []bot.ID
	Dead  []DeadSnapshot
}

// SnapshotBus is a latest-wins broadcast: every subscriber sees only the
// most recently published snapshot, and a brand-new subscriber
// immediately receives whatever was last published (spec.md 4.7:
// "new subscribers immediately receive the most recent snapshot"),
// grounded on the same mutex-guarded-registry shape as EventBus /
// internal/chipset/lineset.go, specialized to hold one value instead of
// fanning out a stream.
type SnapshotBus struct {
	mu      sync.Mutex
	latest  *Snapshot
	waiters map[chan *Snapshot]struct{}
}

func NewSnapshotBus() *SnapshotBus {
	return &SnapshotBus{waiters: make(map[chan *Snapshot]struct{})}
}

// Publish stores snap as the latest value and wakes every current
// subscriber.
func (b *SnapshotBus) Publish(snap *Snapshot) {
	b.mu.Lock()
	b.latest = snap
	waiters := make([]chan *Snapshot, 0, len(b.waiters))
	for ch := range b.waiters {
		waiters = append(waiters, ch)
	}
	b.mu.Unlock()

	for _, ch := range waiters {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Latest returns the most recently published snapshot, or nil if nothing
// has been published yet.
func (b *SnapshotBus) Latest() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

// SnapshotSubscription delivers the latest snapshot on every publish,
// replacing any value the subscriber hasn't yet consumed.
type SnapshotSubscription struct {
	ch  chan *Snapshot
	bus *SnapshotBus
}

// Subscribe registers a new subscription, seeded with whatever snapshot
// is currently latest (if any).
func (b *SnapshotBus) Subscribe() *SnapshotSubscription {
	ch := make(chan *Snapshot, 1)
	b.mu.Lock()
	b.waiters[ch] = struct{}{}
	if b.latest != nil {
		ch <- b.latest
	}
	b.mu.Unlock()
	return &SnapshotSubscription{ch: ch, bus: b}
}

func (s *SnapshotSubscription) C() <-chan *Snapshot { return s.ch }

func (s *SnapshotSubscription) Close() {
	s.bus.mu.Lock()
	delete(s.bus.waiters, s.ch)
	s.bus.mu.Unlock()
}
