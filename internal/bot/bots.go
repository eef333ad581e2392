package bot

// Bots aggregates the three tables a bot passes through over its
// lifetime: Queued (waiting for a slot), Alive (running), and Dead
// (bounded history), mirroring original_source's kartoffels-world
// bots.rs, which keeps the same three-table split and the same
// cross-table Contains/Remove convenience.
type Bots struct {
	Alive  *AliveBots
	Dead   *DeadBots
	Queued *QueuedBots
}

func NewBots() *Bots {
	return &Bots{
		Alive:  NewAliveBots(),
		Dead:   &DeadBots{},
		Queued: &QueuedBots{},
	}
}

// Contains reports whether id is known in any of the three tables.
func (b *Bots) Contains(id ID) bool {
	return b.Alive.Contains(id) || b.Dead.Contains(id) || b.Queued.Contains(id)
}

// Remove drops id from whichever table currently holds it. It is a
// no-op if id is unknown.
func (b *Bots) Remove(id ID) {
	b.Alive.Remove(id)
	b.Dead.Remove(id)
	b.Queued.Remove(id)
}
