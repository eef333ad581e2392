package cpu

import "github.com/tinyrange/botarena/internal/firmware"

// State is the persistable snapshot of a CPU's register file, program
// counter, RAM contents and outstanding LR/SC reservation (spec.md 6: the
// persisted record must resume a bot exactly where a save left off, not
// just reboot its firmware).
type State struct {
	Regs       [32]uint32
	PC         uint32
	RAM        [firmware.RAMSize]byte
	Reserved   bool
	ReservedPC uint32
}

// Snapshot captures c's current state.
func (c *CPU) Snapshot() State {
	return State{Regs: c.Regs, PC: c.PC, RAM: c.RAM, Reserved: c.reserved, ReservedPC: c.reservedPC}
}

// Restore rebuilds a CPU from a previously captured State.
func Restore(s State) *CPU {
	return &CPU{Regs: s.Regs, PC: s.PC, RAM: s.RAM, reserved: s.Reserved, reservedPC: s.ReservedPC}
}
