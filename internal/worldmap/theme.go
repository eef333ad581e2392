package worldmap

import (
	"context"

	"github.com/tinyrange/botarena/internal/geom"
)

// Theme builds a Map. Build must call progress periodically with a
// snapshot of work so far so a MapBuilder can stream it without blocking
// the scheduler, and must check ctx so a world shutdown can abort a
// long-running generation (spec.md 4.4).
type Theme interface {
	Build(ctx context.Context, progress func(*Map)) (*Map, error)
}

// ArenaTheme carves a circular floor of the given radius into a
// (radius*2+1) square map, walling the boundary. Grounded on
// original_source's theme/arena.rs: "map.map(|pos, tile| if
// center.distance(pos) < radius { FLOOR } else { tile })".
type ArenaTheme struct {
	Radius int32
}

func NewArenaTheme(radius int32) *ArenaTheme {
	return &ArenaTheme{Radius: radius}
}

func (t *ArenaTheme) Build(ctx context.Context, progress func(*Map)) (*Map, error) {
	side := t.Radius*2 + 1
	m := New(geom.Vec2{X: side, Y: side})
	center := m.Center()
	radiusSq := float64(t.Radius) * float64(t.Radius)

	for y := int32(0); y < side; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := int32(0); x < side; x++ {
			pos := geom.Vec2{X: x, Y: y}
			dx := float64(pos.X - center.X)
			dy := float64(pos.Y - center.Y)
			if dx*dx+dy*dy < radiusSq {
				m.Set(pos, Tile{Kind: Floor})
			}
		}
		if progress != nil {
			progress(m.Clone())
		}
	}

	t.wallBoundary(m)
	return m, nil
}

// wallBoundary enforces spec.md 4.4's invariant that "the outer boundary
// of a finished map must be walls" unconditionally: the carved circle
// never reaches the very edge for any sane radius, but a generator can't
// rely on that, so the border is stamped explicitly.
func (t *ArenaTheme) wallBoundary(m *Map) {
	for x := int32(0); x < m.width; x++ {
		m.Set(geom.Vec2{X: x, Y: 0}, Tile{Kind: WallHorizontal})
		m.Set(geom.Vec2{X: x, Y: m.height - 1}, Tile{Kind: WallHorizontal})
	}
	for y := int32(0); y < m.height; y++ {
		m.Set(geom.Vec2{X: 0, Y: y}, Tile{Kind: WallVertical})
		m.Set(geom.Vec2{X: m.width - 1, Y: y}, Tile{Kind: WallVertical})
	}
}
