package peripheral

import "math/rand/v2"

// Timer exposes a per-bot random seed and a free-running tick counter.
// Grounded on original_source's kartoffels-world bot/timer.rs: the seed is
// drawn once at construction and never changes, ticks counts every Tick
// call, and both registers are read-only.
type Timer struct {
	seed  uint32
	ticks uint64
}

// NewTimer draws a fresh seed from rng. Each bot gets its own Timer built
// from the shared world RNG so seeds stay deterministic across a run with a
// fixed world seed.
func NewTimer(rng *rand.Rand) *Timer {
	return &Timer{seed: rng.Uint32()}
}

func (t *Timer) Tick() { t.ticks++ }

func (t *Timer) Ticks() uint64 { return t.ticks }

func (t *Timer) MMIOLoad(addr uint32) (uint32, error) {
	switch addr {
	case TimerBase:
		return t.seed, nil
	case TimerBase + 4:
		return uint32(t.ticks), nil
	default:
		return 0, errNoSuchRegister{addr}
	}
}

func (t *Timer) MMIOStore(addr uint32, val uint32) error {
	return errReadOnly{}
}
