package world

import (
	"testing"

	"github.com/tinyrange/botarena/internal/bot"
)

func TestSnapshotBusNewSubscriberGetsLatestImmediately(t *testing.T) {
	bus := NewSnapshotBus()
	bus.Publish(&Snapshot{Clock: 7})

	sub := bus.Subscribe()
	defer sub.Close()

	select {
	case snap := <-sub.C():
		if snap.Clock != 7 {
			t.Fatalf("clock = %d, want 7", snap.Clock)
		}
	default:
		t.Fatalf("expected the new subscriber to be seeded with the latest snapshot")
	}
}

func TestSnapshotBusSubscriberBeforePublish(t *testing.T) {
	bus := NewSnapshotBus()
	sub := bus.Subscribe()
	defer sub.Close()

	select {
	case <-sub.C():
		t.Fatalf("subscriber should not receive anything before the first publish")
	default:
	}

	bus.Publish(&Snapshot{Clock: 1})

	select {
	case snap := <-sub.C():
		if snap.Clock != 1 {
			t.Fatalf("clock = %d, want 1", snap.Clock)
		}
	default:
		t.Fatalf("expected the publish to reach the subscriber")
	}
}

func TestSnapshotBusOverflowKeepsOnlyLatest(t *testing.T) {
	bus := NewSnapshotBus()
	sub := bus.Subscribe()
	defer sub.Close()

	// Two publishes without a read in between should never block the
	// publisher, and the subscriber should end up seeing only the second.
	bus.Publish(&Snapshot{Clock: 1})
	bus.Publish(&Snapshot{Clock: 2})

	snap := <-sub.C()
	if snap.Clock != 2 {
		t.Fatalf("clock = %d, want 2 (latest-wins)", snap.Clock)
	}

	select {
	case extra := <-sub.C():
		t.Fatalf("unexpected extra snapshot %+v", extra)
	default:
	}
}

func TestSnapshotBusLatestAccessor(t *testing.T) {
	bus := NewSnapshotBus()
	if bus.Latest() != nil {
		t.Fatalf("latest should be nil before any publish")
	}

	bus.Publish(&Snapshot{Clock: 3, Queue: []bot.ID{1, 2}})
	latest := bus.Latest()
	if latest == nil || latest.Clock != 3 {
		t.Fatalf("latest = %+v, want clock 3", latest)
	}
}

func TestSnapshotBusCloseStopsDelivery(t *testing.T) {
	bus := NewSnapshotBus()
	sub := bus.Subscribe()
	sub.Close()

	// Publishing after close should not panic or block.
	bus.Publish(&Snapshot{Clock: 9})
}
