package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/tinyrange/botarena/internal/action"
	"github.com/tinyrange/botarena/internal/bot"
	"github.com/tinyrange/botarena/internal/cpu"
	"github.com/tinyrange/botarena/internal/firmware"
	"github.com/tinyrange/botarena/internal/geom"
	"github.com/tinyrange/botarena/internal/worldmap"
)

// ErrQueueFull is returned by Spawn when the queued table is already at
// Policy.MaxQueuedBots (spec.md 4.5, 4.7).
var ErrQueueFull = errors.New("world: queue is full")

// pendingKill is one bot slated to die at the next reaping step, whether
// from a CPU fault, an ArmStab resolved during this tick's arbitration,
// or an external Handle.Kill request drained before the tick began.
type pendingKill struct {
	id     bot.ID
	reason string
	killer *bot.ID
}

// World owns everything spec.md 3 names: map, bot tables, clock, RNG,
// policy, and the pub-sub endpoints external collaborators subscribe to.
// Only the scheduler goroutine (the one calling Tick, normally driven by
// a Handle's request loop) may mutate a World; see Handle for the
// single-owner access pattern spec.md 4.7/5 requires.
type World struct {
	ID     ID
	Name   string
	Policy Policy
	Map    *worldmap.Map
	Bots   *bot.Bots
	RNG    *rand.Rand

	// RNGSource is the same stream RNG draws from, kept alongside it
	// because *rand.Rand has no accessor back to its Source: persistence
	// needs to marshal/unmarshal the ChaCha8 stream's exact position,
	// not just reseed from the original 32-byte key (spec.md 6, 9:
	// "one seeded ChaCha8 stream per world so replays are exact").
	RNGSource *rand.ChaCha8

	Clock *Clock
	Log   *slog.Logger

	Metrics *Metrics

	bus    *SnapshotBus
	events *EventBus

	paused       bool
	pendingKills []pendingKill
}

// NewWorld builds a fresh world on m, seeded from seed so every draw
// (bot ids, traversal order, spawn sampling, peripheral jitter) derives
// from one deterministic ChaCha8 stream (spec.md 9).
func NewWorld(id ID, name string, m *worldmap.Map, policy Policy, seed [32]byte, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	src := rand.NewChaCha8(seed)
	w := &World{
		ID:        id,
		Name:      name,
		Policy:    policy,
		Map:       m,
		Bots:      bot.NewBots(),
		RNG:       rand.New(src),
		RNGSource: src,
		Clock:     NewClock(policy.TickRate, policy.Overclock),
		Log:       log,
		Metrics:   NewMetrics(id.String()),
		bus:       NewSnapshotBus(),
		events:    NewEventBus(),
	}
	return w
}

// Spawn validates and enqueues a new bot, returning the id it will run
// under once dequeued (spec.md 4.7: "validates firmware size, enqueues").
func (w *World) Spawn(fw *firmware.Firmware, pos *geom.Vec2, ephemeral bool) (bot.ID, error) {
	if fw == nil {
		return 0, fmt.Errorf("world: spawn: nil firmware")
	}
	if w.Bots.Queued.Len() >= w.Policy.MaxQueuedBots {
		return 0, ErrQueueFull
	}
	id := bot.NewID(w.RNG)
	w.Bots.Queued.PushBack(bot.Queued{ID: id, Firmware: fw, Pos: pos, Ephemeral: ephemeral})
	return id, nil
}

// RequestKill schedules id to die at the next reaping step. It is a
// no-op if id is not currently alive when the reaping step runs
// (spec.md 4.7: "kill(id, reason) schedules a kill for next tick").
func (w *World) RequestKill(id bot.ID, reason string) {
	w.pendingKills = append(w.pendingKills, pendingKill{id: id, reason: reason})
}

// Delete removes id from whichever table currently holds it, immediately
// (spec.md 4.7).
func (w *World) Delete(id bot.ID) {
	w.Bots.Remove(id)
}

func (w *World) SetPaused(p bool) { w.paused = p }
func (w *World) Paused() bool     { return w.paused }

func (w *World) SetOverclock(factor float64) {
	w.Policy.Overclock = factor
	w.Clock.SetOverclock(factor)
}

// Snapshots returns a latest-wins subscription (spec.md 4.7).
func (w *World) Snapshots() *SnapshotSubscription { return w.bus.Subscribe() }

// Events returns a bounded lifecycle-event subscription (spec.md 4.7).
func (w *World) Events() *EventSubscription { return w.events.Subscribe() }

// LatestSnapshot returns whatever was last published, or nil.
func (w *World) LatestSnapshot() *Snapshot { return w.bus.Latest() }

type ownedAction struct {
	ownerID bot.ID
	order   int
	act     action.BotAction
}

// Tick runs one full simulation step: time base, CPU stepping, peripheral
// ticking, action arbitration, reaping, dequeue, publish (spec.md 4.6).
// A paused world only advances its clock's wall-clock pacing, not the
// simulation itself.
func (w *World) Tick(now time.Time) {
	if w.paused {
		return
	}
	w.Clock.Advance()

	traversal := w.Bots.Alive.PickIDs(w.RNG)

	kills := w.drainPendingKills()
	var pending []ownedAction

	for i, id := range traversal {
		ab, ok := w.Bots.Alive.Get(id)
		if !ok {
			continue
		}
		if w.stepCPU(ab, &kills) {
			continue
		}
		for _, act := range w.tickPeripherals(ab) {
			pending = append(pending, ownedAction{ownerID: id, order: i, act: act})
		}
	}

	w.arbitrate(pending, &kills)
	w.reap(kills, now)
	w.dequeue(now)
	w.publish()
}

func (w *World) drainPendingKills() []pendingKill {
	kills := w.pendingKills
	w.pendingKills = nil
	return kills
}

// stepCPU runs ab's CPU for the policy's step budget. It reports true if
// ab faulted (or panicked) this tick, in which case a pendingKill has
// been appended to kills and ab's peripherals should not tick this round.
// EBREAK (cpu.ErrHalt) just ends the step loop early; it is not a fault
// and never kills the bot (spec.md 4.1 only lists Fault kinds as killing;
// EBREAK is listed separately as "halts").
func (w *World) stepCPU(ab *bot.AliveBot, kills *[]pendingKill) (faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			*kills = append(*kills, pendingKill{id: ab.ID, reason: fmt.Sprintf("panic: %v", r)})
			faulted = true
		}
	}()

	err := ab.RunCPU(w.Policy.CPUStepsPerTick)
	if err == nil || errors.Is(err, cpu.ErrHalt) {
		return false
	}

	var f *cpu.Fault
	if errors.As(err, &f) {
		if w.Metrics != nil {
			w.Metrics.Faults.WithLabelValues(f.Kind.String()).Inc()
		}
		*kills = append(*kills, pendingKill{id: ab.ID, reason: f.Error()})
		return true
	}

	*kills = append(*kills, pendingKill{id: ab.ID, reason: err.Error()})
	return true
}

func (w *World) tickPeripherals(ab *bot.AliveBot) []action.BotAction {
	return ab.TickPeripherals(w.RNG, w.scan)
}

// arbitrate applies pending in spec.md 4.6's fixed priority order
// (ArmStab > ArmDrop > ArmPick > MotorMove), breaking same-priority,
// same-cell ties by each action's already-sampled traversal order. Only
// the first action to claim a cell wins; the rest are dropped silently,
// their cooldown already spent (spec.md 4.6: "the chosen, documented
// policy").
func (w *World) arbitrate(pending []ownedAction, kills *[]pendingKill) {
	sort.SliceStable(pending, func(i, j int) bool {
		pi, pj := pending[i].act.Kind.Priority(), pending[j].act.Kind.Priority()
		if pi != pj {
			return pi < pj
		}
		return pending[i].order < pending[j].order
	})

	claimed := make(map[geom.Vec2]bool)
	for _, pa := range pending {
		if claimed[pa.act.At] {
			continue
		}
		switch pa.act.Kind {
		case action.ArmStab:
			occ, ok := w.Bots.Alive.GetByPos(pa.act.At)
			if !ok {
				continue
			}
			claimed[pa.act.At] = true
			killer := pa.ownerID
			*kills = append(*kills, pendingKill{id: occ.ID, reason: "stabbed", killer: &killer})

		case action.ArmDrop:
			tile := w.Map.Get(pa.act.At)
			if !tile.Kind.Walkable() || tile.Object != 0 {
				continue
			}
			claimed[pa.act.At] = true
			w.Map.PlaceObject(pa.act.At, worldmap.ObjectItem)

		case action.ArmPick:
			if _, ok := w.Map.RemoveObject(pa.act.At); !ok {
				continue
			}
			claimed[pa.act.At] = true

		case action.MotorMove:
			tile := w.Map.Get(pa.act.At)
			if !tile.Kind.Walkable() {
				continue
			}
			if _, occupied := w.Bots.Alive.GetByPos(pa.act.At); occupied {
				continue
			}
			ab, ok := w.Bots.Alive.Get(pa.ownerID)
			if !ok {
				continue
			}
			claimed[pa.act.At] = true
			old := ab.Pos
			ab.Pos = pa.act.At
			w.Bots.Alive.Move(ab, old)
		}
	}
}

// reap moves every still-alive bot in kills from Alive to Dead, respawning
// it if policy allows (spec.md 4.6 step 5, spec.md 3's state machine).
func (w *World) reap(kills []pendingKill, now time.Time) {
	seen := make(map[bot.ID]bool)
	for _, k := range kills {
		if seen[k.id] {
			continue
		}
		seen[k.id] = true

		ab, ok := w.Bots.Alive.Get(k.id)
		if !ok {
			continue
		}
		w.Bots.Alive.Remove(k.id)

		w.Bots.Dead.Push(bot.Dead{
			ID:        k.id,
			Reason:    k.reason,
			Killer:    k.killer,
			At:        now,
			Serial:    ab.SerialTail(8),
			Events:    ab.Events.Tail(8),
			Ephemeral: ab.Ephemeral,
		})

		w.events.Publish(Event{Kind: EventKilled, At: now, BotID: k.id, Reason: k.reason, Killer: k.killer})
		if w.Metrics != nil {
			w.Metrics.Kills.Inc()
		}
		w.Log.Info("bot killed", "id", k.id, "reason", k.reason)

		if w.Policy.AutoRespawn && !ab.Ephemeral {
			w.Bots.Queued.PushBack(bot.Queued{ID: k.id, Firmware: ab.Firmware, Pos: nil, Ephemeral: false})
		}
	}
}

// dequeue pops queued bots into alive slots while there's room, following
// spec.md 4.6 step 6's "push back to the head and stop" failure policy.
func (w *World) dequeue(now time.Time) {
	for w.Bots.Alive.Len() < w.Policy.MaxAliveBots {
		q, ok := w.Bots.Queued.PopFront()
		if !ok {
			return
		}

		pos, ok := w.trySpawnPosition(q)
		if !ok {
			w.Bots.Queued.PushFront(q)
			return
		}

		ab := bot.NewAliveBot(q.ID, q.Firmware, pos, geom.North, q.Ephemeral, w.Policy.PeripheralConfig(), w.RNG)
		w.Bots.Alive.Insert(ab)

		w.events.Publish(Event{Kind: EventSpawned, At: now, BotID: q.ID})
		if w.Metrics != nil {
			w.Metrics.Spawns.Inc()
		}
		w.Log.Info("bot spawned", "id", q.ID, "pos", pos)
	}
}

func (w *World) trySpawnPosition(q bot.Queued) (geom.Vec2, bool) {
	if q.Pos != nil {
		tile := w.Map.Get(*q.Pos)
		if !tile.Kind.Walkable() {
			return geom.Vec2{}, false
		}
		if _, occupied := w.Bots.Alive.GetByPos(*q.Pos); occupied {
			return geom.Vec2{}, false
		}
		return *q.Pos, true
	}

	for i := 0; i < w.Policy.SpawnAttempts; i++ {
		pos, ok := w.Map.SampleRandomFloor(w.RNG)
		if !ok {
			return geom.Vec2{}, false
		}
		if _, occupied := w.Bots.Alive.GetByPos(pos); !occupied {
			return pos, true
		}
	}
	return geom.Vec2{}, false
}

// publish builds and broadcasts this tick's snapshot (spec.md 4.6 step 7,
// spec.md 6's schema).
func (w *World) publish() {
	alive := w.Bots.Alive.All()
	bots := make([]BotSnapshot, len(alive))
	for i, ab := range alive {
		bots[i] = BotSnapshot{
			ID:         ab.ID,
			Pos:        ab.Pos,
			Facing:     ab.Facing,
			Age:        ab.Age,
			SerialTail: ab.SerialTail(8),
			EventsTail: ab.Events.Tail(8),
		}
	}

	deadAll := w.Bots.Dead.All()
	dead := make([]DeadSnapshot, len(deadAll))
	for i, d := range deadAll {
		dead[i] = DeadSnapshot{ID: d.ID, Reason: d.Reason, Killer: d.Killer}
	}

	if w.Metrics != nil {
		w.Metrics.AliveBots.Set(float64(len(bots)))
		w.Metrics.QueuedBots.Set(float64(w.Bots.Queued.Len()))
		w.Metrics.DeadBots.Set(float64(len(dead)))
	}

	w.bus.Publish(&Snapshot{
		Clock: w.Clock.Ticks,
		Map:   w.Map.Clone(),
		Bots:  bots,
		Queue: w.Bots.Queued.IDs(),
		Dead:  dead,
	})
}

// scan samples the n x n neighbourhood centered on center for the radar
// peripheral, encoding each cell as a word: bits 0-7 the tile kind, bit 8
// set if the cell carries a placed object, bit 9 set if an alive bot
// currently occupies it. Spec.md 6 doesn't pin a radar wire format beyond
// "tile symbols and, where present, object marks", so this encoding is
// this implementation's own choice.
func (w *World) scan(center geom.Vec2, n int) []uint32 {
	half := n / 2
	out := make([]uint32, 0, n*n)
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			pos := geom.Vec2{X: center.X + int32(dx), Y: center.Y + int32(dy)}
			tile := w.Map.Get(pos)
			word := uint32(tile.Kind)
			if tile.Object != 0 {
				word |= 1 << 8
			}
			if _, occupied := w.Bots.Alive.GetByPos(pos); occupied {
				word |= 1 << 9
			}
			out = append(out, word)
		}
	}
	return out
}
