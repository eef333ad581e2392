package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/tinyrange/botarena/internal/geom"
)

func TestAliveBotsInsertGetRemove(t *testing.T) {
	table := NewAliveBots()
	b := &AliveBot{ID: 1, Pos: geom.Vec2{X: 2, Y: 3}}
	table.Insert(b)

	if !table.Contains(1) {
		t.Fatalf("expected table to contain id 1")
	}
	got, ok := table.Get(1)
	if !ok || got != b {
		t.Fatalf("get(1) = %v, ok = %v, want %v, true", got, ok, b)
	}
	byPos, ok := table.GetByPos(geom.Vec2{X: 2, Y: 3})
	if !ok || byPos != b {
		t.Fatalf("getByPos = %v, ok = %v, want %v, true", byPos, ok, b)
	}

	removed, ok := table.Remove(1)
	if !ok || removed != b {
		t.Fatalf("remove(1) = %v, ok = %v", removed, ok)
	}
	if table.Contains(1) {
		t.Fatalf("id 1 should be gone after remove")
	}
	if _, ok := table.GetByPos(geom.Vec2{X: 2, Y: 3}); ok {
		t.Fatalf("position index should be cleared after remove")
	}
}

func TestAliveBotsMoveUpdatesPositionIndex(t *testing.T) {
	table := NewAliveBots()
	b := &AliveBot{ID: 1, Pos: geom.Vec2{X: 0, Y: 0}}
	table.Insert(b)

	old := b.Pos
	b.Pos = geom.Vec2{X: 1, Y: 0}
	table.Move(b, old)

	if _, ok := table.GetByPos(old); ok {
		t.Fatalf("old position should no longer resolve")
	}
	got, ok := table.GetByPos(geom.Vec2{X: 1, Y: 0})
	if !ok || got != b {
		t.Fatalf("new position should resolve to moved bot")
	}
}

func TestAliveBotsPickIDsIsAPermutation(t *testing.T) {
	table := NewAliveBots()
	for i := ID(1); i <= 10; i++ {
		table.Insert(&AliveBot{ID: i})
	}
	rng := rand.New(rand.NewChaCha8([32]byte{7}))
	picked := table.PickIDs(rng)

	if len(picked) != 10 {
		t.Fatalf("len = %d, want 10", len(picked))
	}
	seen := make(map[ID]bool)
	for _, id := range picked {
		seen[id] = true
	}
	if len(seen) != 10 {
		t.Fatalf("picked ids not a permutation: %v", picked)
	}
}

func TestAliveBotsPickIDsDeterministicFromSeed(t *testing.T) {
	table := NewAliveBots()
	for i := ID(1); i <= 20; i++ {
		table.Insert(&AliveBot{ID: i})
	}
	rng1 := rand.New(rand.NewChaCha8([32]byte{3}))
	rng2 := rand.New(rand.NewChaCha8([32]byte{3}))

	a := table.PickIDs(rng1)
	b := table.PickIDs(rng2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different traversal order at index %d: %d vs %d", i, a[i], b[i])
		}
	}
}
