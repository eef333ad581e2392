package bot

import "testing"

func TestDeadBotsBoundedHistory(t *testing.T) {
	var d DeadBots
	for i := 0; i < DeadBotHistoryCapacity+10; i++ {
		d.Push(Dead{ID: ID(i), Reason: "killed"})
	}
	if d.Len() != DeadBotHistoryCapacity {
		t.Fatalf("len = %d, want %d", d.Len(), DeadBotHistoryCapacity)
	}
	if d.Contains(ID(5)) {
		t.Fatalf("oldest entries should have been evicted")
	}
	if !d.Contains(ID(DeadBotHistoryCapacity + 9)) {
		t.Fatalf("most recent entry should still be present")
	}
}

func TestDeadBotsGetAndRemove(t *testing.T) {
	var d DeadBots
	killer := ID(42)
	d.Push(Dead{ID: 1, Reason: "stabbed", Killer: &killer})

	got, ok := d.Get(1)
	if !ok || got.Reason != "stabbed" || got.Killer == nil || *got.Killer != 42 {
		t.Fatalf("get(1) = %+v, ok = %v", got, ok)
	}

	d.Remove(1)
	if d.Contains(1) {
		t.Fatalf("id 1 should have been removed")
	}
}

func TestDeadBotsAllPreservesOrder(t *testing.T) {
	var d DeadBots
	d.Push(Dead{ID: 1})
	d.Push(Dead{ID: 2})
	d.Push(Dead{ID: 3})

	all := d.All()
	if len(all) != 3 || all[0].ID != 1 || all[2].ID != 3 {
		t.Fatalf("all = %+v, want ids in push order", all)
	}
}
