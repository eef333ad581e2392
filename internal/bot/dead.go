package bot

import "time"

// DeadBotHistoryCapacity bounds how many dead bots a world remembers
// (spec.md: "DeadBots keeps a bounded history (<=128)").
const DeadBotHistoryCapacity = 128

// Dead is the tombstone left behind when a bot leaves AliveBots: who it
// was, why it died, who (if anyone) killed it, and its final events.
type Dead struct {
	ID        ID
	Reason    string
	Killer    *ID
	At        time.Time
	Serial    []uint32
	Events    []Event
	Ephemeral bool
}

// DeadBots is a bounded, oldest-drops-first history of bots that have
// died, grounded on original_source's kartoffels-world bots.rs dead
// table, which caps retained corpses the same way.
type DeadBots struct {
	entries []Dead
}

func (d *DeadBots) Len() int { return len(d.entries) }

func (d *DeadBots) Contains(id ID) bool {
	for _, e := range d.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (d *DeadBots) Get(id ID) (Dead, bool) {
	for _, e := range d.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Dead{}, false
}

// Push records a death, evicting the oldest entry if the history is
// already at capacity.
func (d *DeadBots) Push(db Dead) {
	if len(d.entries) >= DeadBotHistoryCapacity {
		d.entries = d.entries[1:]
	}
	d.entries = append(d.entries, db)
}

func (d *DeadBots) Remove(id ID) {
	for i, e := range d.entries {
		if e.ID == id {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return
		}
	}
}

// All returns the retained history, oldest first.
func (d *DeadBots) All() []Dead {
	out := make([]Dead, len(d.entries))
	copy(out, d.entries)
	return out
}
