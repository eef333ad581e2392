package worldmap

// Kind discriminates the variants a tile can take (spec.md 4.4: "a tagged
// variant with kinds {Void, Floor, WallHorizontal, WallVertical, Flag}").
type Kind uint8

const (
	// Void is the tile outside any finished map, and anywhere a map
	// generator hasn't carved yet.
	Void Kind = iota
	Floor
	WallHorizontal
	WallVertical
	Flag
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Floor:
		return "floor"
	case WallHorizontal:
		return "wall_h"
	case WallVertical:
		return "wall_v"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// Walkable reports whether a bot can step onto this tile kind. Only the
// kind matters here; whether the cell is already occupied by another bot
// is the world scheduler's concern during action arbitration.
func (k Kind) Walkable() bool {
	return k == Floor || k == Flag
}

// Tile is one cell of the map: its kind, plus at most one placed object.
type Tile struct {
	Kind   Kind
	Object ObjectID // zero means no object
}
