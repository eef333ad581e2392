package persist

import (
	"log/slog"
	"math/rand/v2"

	"github.com/tinyrange/botarena/internal/bot"
	"github.com/tinyrange/botarena/internal/cpu"
	"github.com/tinyrange/botarena/internal/firmware"
	"github.com/tinyrange/botarena/internal/geom"
	"github.com/tinyrange/botarena/internal/world"
	"github.com/tinyrange/botarena/internal/worldconfig"
	"github.com/tinyrange/botarena/internal/worldmap"
)

// BotRecord is the persistable form of one alive bot: enough to resume its
// CPU exactly where a save left off (spec.md 6, 9: "persistence migrations...
// keeps old save files compatible"). Peripheral state (cooldowns, pending
// commands, serial log) is not recorded; a restored bot gets fresh
// peripherals.
type BotRecord struct {
	ID        bot.ID
	Firmware  *firmware.Firmware
	CPU       cpu.State
	Pos       geom.Vec2
	Facing    geom.Dir
	Age       uint64
	Ephemeral bool
	Events    []bot.Event
}

// BotsRecord mirrors bot.Bots{Alive, Dead, Queued} field for field.
type BotsRecord struct {
	Alive  []BotRecord
	Dead   []bot.Dead
	Queued []bot.Queued
}

// Record is the typed value a Load decodes into after migrations have run,
// matching spec.md 6's "CBOR-encoded {bots, map, name, policy, rng,
// theme}" persisted record, grounded on original_source's
// storage.rs:SerializedWorld{bots, map, name, policy, rng, theme}.
type Record struct {
	WorldID  string
	Name     string
	Policy   world.Policy
	Theme    worldconfig.ThemeConfig
	Map      worldmap.State
	Bots     BotsRecord
	RNGState []byte
}

// BuildRecord captures w's full persistable state.
func BuildRecord(w *world.World, theme worldconfig.ThemeConfig) (Record, error) {
	rngState, err := w.RNGSource.MarshalBinary()
	if err != nil {
		return Record{}, err
	}

	alive := w.Bots.Alive.All()
	aliveRecs := make([]BotRecord, len(alive))
	for i, ab := range alive {
		aliveRecs[i] = BotRecord{
			ID: ab.ID, Firmware: ab.Firmware, CPU: ab.CPUState(),
			Pos: ab.Pos, Facing: ab.Facing, Age: ab.Age, Ephemeral: ab.Ephemeral,
			Events: ab.Events.Snapshot(),
		}
	}

	return Record{
		WorldID: w.ID.String(),
		Name:    w.Name,
		Policy:  w.Policy,
		Theme:   theme,
		Map:     w.Map.State(),
		Bots: BotsRecord{
			Alive:  aliveRecs,
			Dead:   w.Bots.Dead.All(),
			Queued: w.Bots.Queued.All(),
		},
		RNGState: rngState,
	}, nil
}

// Restore rebuilds a *world.World from rec. The zero seed passed to
// NewWorld is immediately discarded in favor of the persisted ChaCha8
// stream position, so replay continues exactly where the save left off
// rather than restarting the stream from a fresh key (spec.md 9).
func Restore(rec Record, log *slog.Logger) (*world.World, error) {
	id, err := world.IDFromString(rec.WorldID)
	if err != nil {
		return nil, err
	}

	src := new(rand.ChaCha8)
	if err := src.UnmarshalBinary(rec.RNGState); err != nil {
		return nil, err
	}

	m := worldmap.FromState(rec.Map)
	w := world.NewWorld(id, rec.Name, m, rec.Policy, [32]byte{}, log)
	w.RNG = rand.New(src)
	w.RNGSource = src

	cfg := rec.Policy.PeripheralConfig()
	for _, br := range rec.Bots.Alive {
		ab := bot.RestoreAliveBot(br.ID, br.Firmware, br.CPU, br.Pos, br.Facing, br.Age, br.Ephemeral, cfg, w.RNG)
		ab.Events = bot.RestoreEventRing(br.Events)
		w.Bots.Alive.Insert(ab)
	}
	for _, d := range rec.Bots.Dead {
		w.Bots.Dead.Push(d)
	}
	for _, q := range rec.Bots.Queued {
		w.Bots.Queued.PushBack(q)
	}

	return w, nil
}
