// Package peripheral implements the seven MMIO peripherals every alive bot
// exposes to its CPU: timer, battery, serial, compass, motor, arm and radar
// (spec.md 4.3). Each peripheral is addressed through the same two-method
// MMIODevice capability, mirroring how the teacher's internal/chipset
// registry treats every interrupt source as interchangeable behind a single
// narrow interface rather than a class hierarchy.
package peripheral

import (
	"math/rand/v2"

	"github.com/tinyrange/botarena/internal/geom"
)

// Base addresses for each peripheral's 1KiB MMIO window (spec.md 6).
const (
	TimerBase   uint32 = 0x0800_0000
	BatteryBase uint32 = 0x0800_0400
	SerialBase  uint32 = 0x0800_0800
	MotorBase   uint32 = 0x0800_0C00
	ArmBase     uint32 = 0x0800_1000
	RadarBase   uint32 = 0x0800_1400
	CompassBase uint32 = 0x0800_1800

	// WindowSize is the size of every peripheral's address window. A bot
	// routes an MMIO access to a device by finding which [Base, Base+
	// WindowSize) range it falls into.
	WindowSize uint32 = 0x0400
)

// MMIODevice is the capability every peripheral exposes for CPU-initiated
// loads and stores. Both methods receive addresses already known to fall
// inside the device's own window; an out-of-window address is a caller bug.
type MMIODevice interface {
	MMIOLoad(addr uint32) (uint32, error)
	MMIOStore(addr uint32, val uint32) error
}

// TickContext carries the per-bot, per-tick facts that the motion-related
// peripherals (compass, motor, arm, radar) need to advance their own state.
// Timer, battery and serial need none of this and tick without arguments.
type TickContext struct {
	Facing geom.Dir
	Pos    geom.Vec2
	RNG    *rand.Rand

	// Scan samples an n x n neighbourhood centered on Pos, encoding each
	// cell as one word. Only the radar calls it, and only once a pending
	// scan's cooldown expires; the other peripherals ignore it, and it may
	// be nil when no radar scan can resolve.
	Scan func(center geom.Vec2, n int) []uint32
}

// errReadOnly is returned by a store to a read-only register.
type errReadOnly struct{}

func (errReadOnly) Error() string { return "register is read-only" }

// errWriteOnly is returned by a load from a write-only register.
type errWriteOnly struct{}

func (errWriteOnly) Error() string { return "register is write-only" }

// errNoSuchRegister is returned for any address inside a device's window
// that the device doesn't recognize.
type errNoSuchRegister struct{ addr uint32 }

func (e errNoSuchRegister) Error() string { return "no such register" }
