package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tinyrange/botarena/internal/bot"
	"github.com/tinyrange/botarena/internal/firmware"
	"github.com/tinyrange/botarena/internal/geom"
	"github.com/tinyrange/botarena/internal/world"
	"github.com/tinyrange/botarena/internal/worldconfig"
	"github.com/tinyrange/botarena/internal/worldmap"
)

func smallMap() *worldmap.Map {
	m := worldmap.New(geom.Vec2{X: 5, Y: 5})
	for y := int32(1); y < 4; y++ {
		for x := int32(1); x < 4; x++ {
			m.Set(geom.Vec2{X: x, Y: y}, worldmap.Tile{Kind: worldmap.Floor})
		}
	}
	m.PlaceObject(geom.Vec2{X: 2, Y: 2}, worldmap.ObjectItem)
	return m
}

func TestSaveLoadRoundTripsWorldState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.bin")

	id := world.NewID()
	policy := world.DefaultPolicy()
	m := smallMap()

	w := world.NewWorld(id, "arena-1", m, policy, [32]byte{9}, nil)

	fw := &firmware.Firmware{Entry: firmware.RAMBase}
	ab := bot.NewAliveBot(bot.NewID(w.RNG), fw, geom.Vec2{X: 2, Y: 1}, geom.East, false, policy.PeripheralConfig(), w.RNG)
	ab.CPU.Regs[5] = 0xdeadbeef
	ab.CPU.PC = firmware.RAMBase + 16
	ab.Age = 42
	w.Bots.Alive.Insert(ab)

	killer := ab.ID
	w.Bots.Dead.Push(bot.Dead{ID: bot.NewID(w.RNG), Reason: "stabbed", Killer: &killer, At: time.Unix(0, 0)})

	qID := bot.NewID(w.RNG)
	w.Bots.Queued.PushBack(bot.Queued{ID: qID, Firmware: fw, Ephemeral: true})

	theme := worldconfig.ThemeConfig{Kind: "arena", Radius: 2}
	rec, err := BuildRecord(w, theme)
	if err != nil {
		t.Fatalf("BuildRecord: %v", err)
	}

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Name != "arena-1" {
		t.Errorf("Name = %q, want arena-1", loaded.Name)
	}
	if loaded.WorldID != id.String() {
		t.Errorf("WorldID = %q, want %q", loaded.WorldID, id.String())
	}
	if loaded.Map.Width != 5 || loaded.Map.Height != 5 {
		t.Errorf("map dims = %dx%d, want 5x5", loaded.Map.Width, loaded.Map.Height)
	}
	if len(loaded.Map.Objects) != 1 {
		t.Errorf("map objects = %d, want 1", len(loaded.Map.Objects))
	}
	if len(loaded.Bots.Alive) != 1 {
		t.Fatalf("alive bots = %d, want 1", len(loaded.Bots.Alive))
	}
	if loaded.Bots.Alive[0].CPU.Regs[5] != 0xdeadbeef {
		t.Errorf("x5 = %#x, want 0xdeadbeef", loaded.Bots.Alive[0].CPU.Regs[5])
	}
	if loaded.Bots.Alive[0].Age != 42 {
		t.Errorf("Age = %d, want 42", loaded.Bots.Alive[0].Age)
	}
	if len(loaded.Bots.Dead) != 1 || loaded.Bots.Dead[0].Reason != "stabbed" {
		t.Errorf("dead history = %+v, want one stabbed entry", loaded.Bots.Dead)
	}
	if len(loaded.Bots.Queued) != 1 || loaded.Bots.Queued[0].ID != qID {
		t.Errorf("queued = %+v, want one entry with id %v", loaded.Bots.Queued, qID)
	}
	if loaded.Theme.Radius != 2 {
		t.Errorf("Theme.Radius = %d, want 2", loaded.Theme.Radius)
	}

	restored, err := Restore(loaded, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Name != "arena-1" {
		t.Errorf("restored.Name = %q, want arena-1", restored.Name)
	}
	if restored.Bots.Alive.Len() != 1 {
		t.Fatalf("restored alive bots = %d, want 1", restored.Bots.Alive.Len())
	}
	restoredBot, ok := restored.Bots.Alive.Get(ab.ID)
	if !ok {
		t.Fatalf("restored bot %v not found", ab.ID)
	}
	if restoredBot.CPU.Regs[5] != 0xdeadbeef {
		t.Errorf("restored x5 = %#x, want 0xdeadbeef", restoredBot.CPU.Regs[5])
	}
	if restoredBot.CPU.PC != firmware.RAMBase+16 {
		t.Errorf("restored PC = %#x, want %#x", restoredBot.CPU.PC, firmware.RAMBase+16)
	}
	if restored.Map.Get(geom.Vec2{X: 2, Y: 2}).Object == 0 {
		t.Errorf("restored map lost its placed object")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	if err := Save(path, Record{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Corrupt the first byte of the header's magic.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	data[0] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("rewrite corrupted file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error loading a file with a corrupted magic")
	}
}
