// Package geom holds the small coordinate and direction types shared by the
// map, peripherals, bots and the world scheduler.
package geom

// Vec2 is a signed 2-D grid coordinate. Maps are addressed with Vec2 so that
// out-of-bounds reads (negative or beyond width/height) are representable
// without a separate wrapping type.
type Vec2 struct {
	X, Y int32
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Dir is a facing direction around the four cardinal points.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// String renders the direction's single-letter symbol.
func (d Dir) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// delta returns the unit step taken by a forward move while facing d.
func (d Dir) delta() Vec2 {
	switch d {
	case North:
		return Vec2{X: 0, Y: -1}
	case East:
		return Vec2{X: 1, Y: 0}
	case South:
		return Vec2{X: 0, Y: 1}
	case West:
		return Vec2{X: -1, Y: 0}
	default:
		return Vec2{}
	}
}

// Forward returns the cell one step ahead of pos when facing d.
func (d Dir) Forward(pos Vec2) Vec2 {
	return pos.Add(d.delta())
}

// TurnLeft returns the direction one quarter-turn counter-clockwise.
func (d Dir) TurnLeft() Dir {
	return (d + 3) % 4
}

// TurnRight returns the direction one quarter-turn clockwise.
func (d Dir) TurnRight() Dir {
	return (d + 1) % 4
}

// CompassCode returns the wire encoding used by the compass peripheral:
// N=0, E=1, S=2, W=3 (see original_source bot/compass.rs).
func (d Dir) CompassCode() uint32 {
	return uint32(d)
}
