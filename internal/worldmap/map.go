// Package worldmap implements the 2-D tile grid and placed-object model
// bots move around in (spec.md 4.4), plus the async, yielding map builder
// and ArenaTheme generator that create one.
package worldmap

import (
	"math/rand/v2"

	"github.com/tinyrange/botarena/internal/geom"
)

// Map is a rectangular grid of tiles, addressed by signed Vec2 so reads
// outside [0,Width)x[0,Height) are representable rather than a panic:
// spec.md 4.4 requires out-of-bounds reads to yield Void.
type Map struct {
	width, height int32
	tiles         []Tile

	objects      map[ObjectID]*Object
	nextObjectID ObjectID
}

// New builds an all-Void map of the given size.
func New(size geom.Vec2) *Map {
	w, h := size.X, size.Y
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Map{
		width:   w,
		height:  h,
		tiles:   make([]Tile, int(w)*int(h)),
		objects: make(map[ObjectID]*Object),
	}
}

func (m *Map) Width() int32  { return m.width }
func (m *Map) Height() int32 { return m.height }

func (m *Map) inBounds(pos geom.Vec2) bool {
	return pos.X >= 0 && pos.X < m.width && pos.Y >= 0 && pos.Y < m.height
}

func (m *Map) index(pos geom.Vec2) int {
	return int(pos.Y)*int(m.width) + int(pos.X)
}

// Get returns the tile at pos, or a Void tile if pos is out of bounds.
func (m *Map) Get(pos geom.Vec2) Tile {
	if !m.inBounds(pos) {
		return Tile{Kind: Void}
	}
	return m.tiles[m.index(pos)]
}

// Set writes the tile at pos. Out-of-bounds writes are silently ignored,
// matching Get's out-of-bounds-is-Void posture rather than faulting.
func (m *Map) Set(pos geom.Vec2, t Tile) {
	if !m.inBounds(pos) {
		return
	}
	m.tiles[m.index(pos)] = t
}

// Center returns the map's midpoint, used by themes like ArenaTheme to
// carve shapes relative to the middle of the grid.
func (m *Map) Center() geom.Vec2 {
	return geom.Vec2{X: m.width / 2, Y: m.height / 2}
}

// Line draws kind along every cell on the straight line from a to b
// (inclusive), using integer Bresenham so it needs no floating point.
func (m *Map) Line(a, b geom.Vec2, kind Kind) {
	dx := abs32(b.X - a.X)
	dy := -abs32(b.Y - a.Y)
	sx := int32(1)
	if a.X >= b.X {
		sx = -1
	}
	sy := int32(1)
	if a.Y >= b.Y {
		sy = -1
	}
	err := dx + dy

	pos := a
	for {
		m.Set(pos, Tile{Kind: kind})
		if pos == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			pos.X += sx
		}
		if e2 <= dx {
			err += dx
			pos.Y += sy
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// SampleRandomFloor returns a uniformly random walkable floor cell, or
// false if the map has none. Used at bot spawn time (spec.md 4.4, 4.5).
func (m *Map) SampleRandomFloor(rng *rand.Rand) (geom.Vec2, bool) {
	var candidates []geom.Vec2
	for y := int32(0); y < m.height; y++ {
		for x := int32(0); x < m.width; x++ {
			pos := geom.Vec2{X: x, Y: y}
			if m.Get(pos).Kind == Floor {
				candidates = append(candidates, pos)
			}
		}
	}
	if len(candidates) == 0 {
		return geom.Vec2{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// PlaceObject creates a new object of the given kind at pos and references
// it from that cell's tile. It overwrites any object already referenced
// there (the caller is expected to have checked the cell is empty first,
// per ArmDrop's contract in spec.md 4.6).
func (m *Map) PlaceObject(pos geom.Vec2, kind ObjectKind) ObjectID {
	m.nextObjectID++
	id := m.nextObjectID
	m.objects[id] = &Object{ID: id, Kind: kind, Pos: pos}
	t := m.Get(pos)
	t.Object = id
	m.Set(pos, t)
	return id
}

// RemoveObject deletes the object at pos, clearing its cell's reference,
// and returns it. The second return is false if the cell had no object.
func (m *Map) RemoveObject(pos geom.Vec2) (Object, bool) {
	t := m.Get(pos)
	if t.Object == 0 {
		return Object{}, false
	}
	obj, ok := m.objects[t.Object]
	if !ok {
		return Object{}, false
	}
	delete(m.objects, t.Object)
	t.Object = 0
	m.Set(pos, t)
	return *obj, true
}

// Object looks up a placed object by id.
func (m *Map) Object(id ObjectID) (Object, bool) {
	obj, ok := m.objects[id]
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// State is the persistable form of a Map: every field Map itself keeps
// unexported, flattened for encoding (spec.md 6: the persisted record's
// `map` field). internal/persist builds one of these to put in a Record
// and rebuilds a Map from it with FromState.
type State struct {
	Width, Height int32
	Tiles         []Tile
	Objects       []Object
	NextObjectID  ObjectID
}

// State snapshots m for persistence.
func (m *Map) State() State {
	tiles := make([]Tile, len(m.tiles))
	copy(tiles, m.tiles)

	objects := make([]Object, 0, len(m.objects))
	for _, obj := range m.objects {
		objects = append(objects, *obj)
	}
	return State{
		Width: m.width, Height: m.height,
		Tiles: tiles, Objects: objects,
		NextObjectID: m.nextObjectID,
	}
}

// FromState rebuilds a Map from a previously captured State.
func FromState(s State) *Map {
	m := &Map{
		width: s.Width, height: s.Height,
		tiles:        make([]Tile, len(s.Tiles)),
		objects:      make(map[ObjectID]*Object, len(s.Objects)),
		nextObjectID: s.NextObjectID,
	}
	copy(m.tiles, s.Tiles)
	for _, obj := range s.Objects {
		cp := obj
		m.objects[obj.ID] = &cp
	}
	return m
}

// Clone returns a deep copy, used to hand out immutable progress snapshots
// during async building and to publish world snapshots without letting a
// subscriber observe in-progress mutation.
func (m *Map) Clone() *Map {
	out := &Map{
		width:        m.width,
		height:       m.height,
		tiles:        make([]Tile, len(m.tiles)),
		objects:      make(map[ObjectID]*Object, len(m.objects)),
		nextObjectID: m.nextObjectID,
	}
	copy(out.tiles, m.tiles)
	for id, obj := range m.objects {
		cp := *obj
		out.objects[id] = &cp
	}
	return out
}
