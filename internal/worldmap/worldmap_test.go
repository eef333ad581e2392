package worldmap

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/tinyrange/botarena/internal/geom"
)

func TestGetOutOfBoundsIsVoid(t *testing.T) {
	m := New(geom.Vec2{X: 4, Y: 4})
	if k := m.Get(geom.Vec2{X: -1, Y: 0}).Kind; k != Void {
		t.Fatalf("out-of-bounds kind = %v, want Void", k)
	}
	if k := m.Get(geom.Vec2{X: 4, Y: 0}).Kind; k != Void {
		t.Fatalf("out-of-bounds kind = %v, want Void", k)
	}
}

func TestSetThenGetRoundTrips(t *testing.T) {
	m := New(geom.Vec2{X: 4, Y: 4})
	pos := geom.Vec2{X: 2, Y: 1}
	m.Set(pos, Tile{Kind: Floor})
	if k := m.Get(pos).Kind; k != Floor {
		t.Fatalf("got = %v, want Floor", k)
	}
}

func TestLineDrawsWall(t *testing.T) {
	m := New(geom.Vec2{X: 5, Y: 5})
	m.Line(geom.Vec2{X: 0, Y: 2}, geom.Vec2{X: 4, Y: 2}, WallHorizontal)
	for x := int32(0); x < 5; x++ {
		if k := m.Get(geom.Vec2{X: x, Y: 2}).Kind; k != WallHorizontal {
			t.Fatalf("(%d,2) = %v, want WallHorizontal", x, k)
		}
	}
	if k := m.Get(geom.Vec2{X: 0, Y: 0}).Kind; k != Void {
		t.Fatalf("untouched cell = %v, want Void", k)
	}
}

func TestSampleRandomFloorOnlyReturnsFloor(t *testing.T) {
	m := New(geom.Vec2{X: 3, Y: 3})
	m.Set(geom.Vec2{X: 1, Y: 1}, Tile{Kind: Floor})
	rng := rand.New(rand.NewChaCha8([32]byte{2}))
	pos, ok := m.SampleRandomFloor(rng)
	if !ok || pos != (geom.Vec2{X: 1, Y: 1}) {
		t.Fatalf("pos = %v, ok = %v, want (1,1)/true", pos, ok)
	}
}

func TestSampleRandomFloorEmptyMap(t *testing.T) {
	m := New(geom.Vec2{X: 3, Y: 3})
	rng := rand.New(rand.NewChaCha8([32]byte{3}))
	_, ok := m.SampleRandomFloor(rng)
	if ok {
		t.Fatalf("expected no floor cells")
	}
}

func TestPlaceAndRemoveObject(t *testing.T) {
	m := New(geom.Vec2{X: 3, Y: 3})
	pos := geom.Vec2{X: 1, Y: 1}
	id := m.PlaceObject(pos, ObjectItem)
	if m.Get(pos).Object != id {
		t.Fatalf("tile doesn't reference placed object")
	}
	obj, ok := m.Object(id)
	if !ok || obj.Kind != ObjectItem || obj.Pos != pos {
		t.Fatalf("object = %+v, ok = %v", obj, ok)
	}

	removed, ok := m.RemoveObject(pos)
	if !ok || removed.ID != id {
		t.Fatalf("remove failed: %+v, %v", removed, ok)
	}
	if m.Get(pos).Object != 0 {
		t.Fatalf("tile still references removed object")
	}
	if _, ok := m.Object(id); ok {
		t.Fatalf("object still indexed after removal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New(geom.Vec2{X: 2, Y: 2})
	m.Set(geom.Vec2{X: 0, Y: 0}, Tile{Kind: Floor})
	clone := m.Clone()
	m.Set(geom.Vec2{X: 0, Y: 0}, Tile{Kind: WallHorizontal})
	if k := clone.Get(geom.Vec2{X: 0, Y: 0}).Kind; k != Floor {
		t.Fatalf("clone mutated alongside original, got %v", k)
	}
}

func TestArenaThemeCarvesCircleAndWallsBoundary(t *testing.T) {
	theme := NewArenaTheme(3)
	m, err := theme.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Width() != 7 || m.Height() != 7 {
		t.Fatalf("size = %dx%d, want 7x7", m.Width(), m.Height())
	}
	center := m.Center()
	if k := m.Get(center).Kind; k != Floor {
		t.Fatalf("center kind = %v, want Floor", k)
	}
	corner := geom.Vec2{X: 0, Y: 0}
	if k := m.Get(corner).Kind; k != WallHorizontal && k != WallVertical {
		t.Fatalf("corner kind = %v, want a wall", k)
	}
	for x := int32(1); x < m.Width()-1; x++ {
		if k := m.Get(geom.Vec2{X: x, Y: 0}).Kind; k != WallHorizontal {
			t.Fatalf("boundary cell (%d,0) = %v, want WallHorizontal", x, k)
		}
	}
}

func TestArenaThemeRespectsCancellation(t *testing.T) {
	theme := NewArenaTheme(50)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := theme.Build(ctx, nil); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestMapBuilderStreamsProgressAndCompletes(t *testing.T) {
	theme := NewArenaTheme(4)
	b := Build(context.Background(), theme)

	var lastSnapshot *Map
	for {
		select {
		case m := <-b.Snapshots():
			lastSnapshot = m
		case result, ok := <-b.Done():
			if !ok {
				t.Fatalf("done channel closed without a result")
			}
			if result.Err != nil {
				t.Fatalf("build error: %v", result.Err)
			}
			if result.Map.Width() != 9 {
				t.Fatalf("final width = %d, want 9", result.Map.Width())
			}
			_ = lastSnapshot
			return
		}
	}
}
