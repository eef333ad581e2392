package bot

import "math/rand/v2"

// ID is a 64-bit opaque identifier, unique within a world and stable
// across a bot's queued -> alive -> dead -> (queued) lifecycle (spec.md
// 3.1: "drawn from the world RNG").
type ID uint64

// NewID draws a fresh id from the world's RNG. Callers are responsible
// for re-drawing on the astronomically unlikely event of a collision.
func NewID(rng *rand.Rand) ID {
	return ID(rng.Uint64())
}
