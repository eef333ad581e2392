package bot

import (
	"github.com/tinyrange/botarena/internal/firmware"
	"github.com/tinyrange/botarena/internal/geom"
)

// Queued is a bot waiting for a free alive slot: its firmware, an
// optional fixed spawn position, and whether it must not outlive the
// world process (spec.md 3.1).
type Queued struct {
	ID        ID
	Firmware  *firmware.Firmware
	Pos       *geom.Vec2
	Ephemeral bool
}

// QueuedBots is a FIFO of bots waiting to be spawned. PushBack is the
// normal entry point (new spawns, respawns); PushFront exists only for
// handing a bot back to the head of the line after a spawn attempt fails,
// so it gets first crack at the next dequeue pass rather than going to
// the back (spec.md 4.5: "push_front supports returning a rejected bot
// after a failed spawn"), grounded on original_source's
// hellbots bots/queued.rs push/pop shape, generalized from a Vec-as-stack
// into a proper two-ended queue.
type QueuedBots struct {
	entries []Queued
}

func (q *QueuedBots) Len() int { return len(q.entries) }

func (q *QueuedBots) Contains(id ID) bool {
	for _, e := range q.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// PushBack appends qb, replacing any existing entry with the same id
// in place rather than duplicating it.
func (q *QueuedBots) PushBack(qb Queued) {
	for i, e := range q.entries {
		if e.ID == qb.ID {
			q.entries[i] = qb
			return
		}
	}
	q.entries = append(q.entries, qb)
}

// PushFront inserts qb at the head of the queue.
func (q *QueuedBots) PushFront(qb Queued) {
	q.entries = append([]Queued{qb}, q.entries...)
}

// PopFront removes and returns the head of the queue.
func (q *QueuedBots) PopFront() (Queued, bool) {
	if len(q.entries) == 0 {
		return Queued{}, false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, true
}

func (q *QueuedBots) Remove(id ID) {
	for i, e := range q.entries {
		if e.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// IDs returns the ids currently queued, head first.
func (q *QueuedBots) IDs() []ID {
	out := make([]ID, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.ID
	}
	return out
}

// All returns every queued entry, head first, for persistence.
func (q *QueuedBots) All() []Queued {
	out := make([]Queued, len(q.entries))
	copy(out, q.entries)
	return out
}
