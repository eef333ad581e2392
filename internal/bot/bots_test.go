package bot

import "testing"

func TestBotsContainsAcrossTables(t *testing.T) {
	b := NewBots()
	b.Alive.Insert(&AliveBot{ID: 1})
	b.Queued.PushBack(Queued{ID: 2})
	b.Dead.Push(Dead{ID: 3})

	for _, id := range []ID{1, 2, 3} {
		if !b.Contains(id) {
			t.Fatalf("expected Contains(%d) to be true", id)
		}
	}
	if b.Contains(4) {
		t.Fatalf("id 4 was never added")
	}
}

func TestBotsRemoveSpansAllTables(t *testing.T) {
	b := NewBots()
	b.Alive.Insert(&AliveBot{ID: 1})
	b.Queued.PushBack(Queued{ID: 1})
	b.Dead.Push(Dead{ID: 1})

	b.Remove(1)

	if b.Alive.Contains(1) || b.Queued.Contains(1) || b.Dead.Contains(1) {
		t.Fatalf("id 1 should be gone from every table after Remove")
	}
}
