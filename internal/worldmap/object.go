package worldmap

import "github.com/tinyrange/botarena/internal/geom"

// ObjectID indexes an Object within a Map. The zero value means "no
// object" (spec.md 4.4: "a map cell references at most one object").
type ObjectID uint32

// ObjectKind discriminates what an Object represents. Spec.md 2/4.4 only
// names flags and generic items ("placed objects (flags, items)"); new
// kinds can be added here as scenarios need them.
type ObjectKind uint8

const (
	ObjectFlag ObjectKind = iota
	ObjectItem
)

// Object is a placed, pickable/droppable thing living in one map cell.
type Object struct {
	ID   ObjectID
	Kind ObjectKind
	Pos  geom.Vec2
}
