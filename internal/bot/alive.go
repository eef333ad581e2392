package bot

import (
	"math/rand/v2"
	"sort"

	"github.com/tinyrange/botarena/internal/geom"
)

// AliveBots is the table of currently-running bots, indexed both by id
// and by position so a tick can resolve "who, if anyone, stands at this
// cell" in O(1) without scanning every bot (original_source
// kartoffels-world bots/alive.rs keeps the same dual index).
type AliveBots struct {
	byID  map[ID]*AliveBot
	byPos map[geom.Vec2]ID
}

func NewAliveBots() *AliveBots {
	return &AliveBots{
		byID:  make(map[ID]*AliveBot),
		byPos: make(map[geom.Vec2]ID),
	}
}

func (a *AliveBots) Len() int { return len(a.byID) }

func (a *AliveBots) Contains(id ID) bool {
	_, ok := a.byID[id]
	return ok
}

func (a *AliveBots) Get(id ID) (*AliveBot, bool) {
	b, ok := a.byID[id]
	return b, ok
}

func (a *AliveBots) GetByPos(pos geom.Vec2) (*AliveBot, bool) {
	id, ok := a.byPos[pos]
	if !ok {
		return nil, false
	}
	return a.byID[id], true
}

// Insert adds bot to the table. The caller must ensure no other alive
// bot already occupies bot.Pos.
func (a *AliveBots) Insert(b *AliveBot) {
	a.byID[b.ID] = b
	a.byPos[b.Pos] = b.ID
}

// Remove drops id from both indices, returning the removed bot if it was
// present.
func (a *AliveBots) Remove(id ID) (*AliveBot, bool) {
	b, ok := a.byID[id]
	if !ok {
		return nil, false
	}
	delete(a.byID, id)
	if cur, ok := a.byPos[b.Pos]; ok && cur == id {
		delete(a.byPos, b.Pos)
	}
	return b, true
}

// Move relocates a live bot's position index entry. The caller has
// already updated bot.Pos; this just keeps byPos consistent.
func (a *AliveBots) Move(b *AliveBot, from geom.Vec2) {
	if cur, ok := a.byPos[from]; ok && cur == b.ID {
		delete(a.byPos, from)
	}
	a.byPos[b.Pos] = b.ID
}

// All returns every alive bot sorted by id, for callers (snapshot
// publication) that need a stable, RNG-independent order rather than
// PickIDs' per-call fairness shuffle.
func (a *AliveBots) All() []*AliveBot {
	ids := make([]ID, 0, len(a.byID))
	for id := range a.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*AliveBot, len(ids))
	for i, id := range ids {
		out[i] = a.byID[id]
	}
	return out
}

// PickIDs returns every alive bot id in a fresh random order, so a tick's
// CPU-stepping and action-arbitration passes don't always favor
// whichever bot happens to iterate first in Go's randomized map order
// (original_source bots/alive.rs pick_ids(rng), which exists precisely
// to make traversal order reproducible from the world's own RNG rather
// than left to the host language's map iteration).
func (a *AliveBots) PickIDs(rng *rand.Rand) []ID {
	ids := make([]ID, 0, len(a.byID))
	for id := range a.byID {
		ids = append(ids, id)
	}
	// Sort first so the shuffle below starts from a deterministic base
	// order; Go's map iteration order is randomized per-process and
	// would otherwise leak into tick-to-tick reproducibility.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids
}
