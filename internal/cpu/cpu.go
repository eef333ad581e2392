// Package cpu implements the RV32IMA interpreter at the heart of a bot: one
// instruction fetched, decoded and executed per Tick against private RAM
// and a caller-supplied MMIO callback (spec.md 4.1).
package cpu

import (
	"encoding/binary"

	"github.com/tinyrange/botarena/internal/firmware"
)

// MMIOBase and MMIOSize bound the memory-mapped peripheral window
// (spec.md 4.1, 6).
const (
	MMIOBase uint32 = 0x0800_0000
	MMIOSize uint32 = 0x8000
)

// nullPageSize is the first-4KiB region that always faults NullAccess
// regardless of what (if anything) else is mapped there.
const nullPageSize uint32 = 0x1000

// MMIO is the callback pair the world supplies on every Tick so the CPU can
// reach a bot's peripherals. Both methods only ever see 4-byte, aligned
// accesses inside [MMIOBase, MMIOBase+MMIOSize); the CPU itself enforces
// that before calling either.
type MMIO interface {
	Load(addr uint32) (uint32, error)
	Store(addr uint32, val uint32) error
}

// CPU is one bot's RISC-V register file, program counter, private RAM and
// LR/SC reservation state (spec.md 3).
type CPU struct {
	Regs [32]uint32
	PC   uint32
	RAM  [firmware.RAMSize]byte

	reserved    bool
	reservedPC  uint32
	reservedVal uint32 // unused, kept for symmetry/debug
}

// New builds a CPU with RAM preloaded from fw and PC at fw's entry point.
func New(fw *firmware.Firmware) *CPU {
	c := &CPU{PC: fw.Entry}
	c.RAM = fw.RAM
	return c
}

// Reg reads general register i; x0 always reads zero.
func (c *CPU) Reg(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return c.Regs[i]
}

// SetReg writes general register i; writes to x0 are ignored.
func (c *CPU) SetReg(i uint32, v uint32) {
	if i == 0 {
		return
	}
	c.Regs[i] = v
}

// clearReservation invalidates any outstanding LR.W reservation. Spec.md 4.1
// requires this on every store "from any source, including MMIO".
func (c *CPU) clearReservation() {
	c.reserved = false
}

// inRAM reports whether [addr, addr+width) lies entirely inside private RAM.
func inRAM(addr uint32, width int) bool {
	if addr < firmware.RAMBase {
		return false
	}
	end := uint64(addr) + uint64(width)
	return end <= uint64(firmware.RAMBase)+uint64(firmware.RAMSize)
}

// inMMIO reports whether addr starts inside the MMIO window.
func inMMIO(addr uint32) bool {
	return addr >= MMIOBase && addr < MMIOBase+MMIOSize
}

// readMem performs a width-byte little-endian load at addr, dispatching to
// RAM or MMIO per spec.md 4.1's address space table.
func (c *CPU) readMem(addr uint32, width int, mmio MMIO) (uint32, error) {
	if addr < nullPageSize {
		return 0, &Fault{Kind: NullAccess, Addr: addr, Width: width}
	}

	if inRAM(addr, width) {
		off := addr - firmware.RAMBase
		switch width {
		case 1:
			return uint32(c.RAM[off]), nil
		case 2:
			return uint32(binary.LittleEndian.Uint16(c.RAM[off : off+2])), nil
		case 4:
			return binary.LittleEndian.Uint32(c.RAM[off : off+4]), nil
		}
	}

	if inMMIO(addr) {
		if width != 4 {
			return 0, &Fault{Kind: MissizedMmio, Addr: addr, Width: width}
		}
		if addr%4 != 0 {
			return 0, &Fault{Kind: Unaligned, Addr: addr, Width: width}
		}
		val, err := mmio.Load(addr)
		if err != nil {
			return 0, &Fault{Kind: NullAccess, Addr: addr, Width: width}
		}
		return val, nil
	}

	return 0, &Fault{Kind: NullAccess, Addr: addr, Width: width}
}

// writeMem performs a width-byte little-endian store at addr, dispatching to
// RAM or MMIO, and clears any LR.W reservation on success.
func (c *CPU) writeMem(addr uint32, width int, val uint32, mmio MMIO) error {
	if addr < nullPageSize {
		return &Fault{Kind: NullAccess, Addr: addr, Width: width}
	}

	if inRAM(addr, width) {
		off := addr - firmware.RAMBase
		switch width {
		case 1:
			c.RAM[off] = byte(val)
		case 2:
			binary.LittleEndian.PutUint16(c.RAM[off:off+2], uint16(val))
		case 4:
			binary.LittleEndian.PutUint32(c.RAM[off:off+4], val)
		}
		c.clearReservation()
		return nil
	}

	if inMMIO(addr) {
		if width != 4 {
			return &Fault{Kind: MissizedMmio, Addr: addr, Width: width}
		}
		if addr%4 != 0 {
			return &Fault{Kind: Unaligned, Addr: addr, Width: width}
		}
		if err := mmio.Store(addr, val); err != nil {
			return &Fault{Kind: NullAccess, Addr: addr, Width: width}
		}
		c.clearReservation()
		return nil
	}

	return &Fault{Kind: NullAccess, Addr: addr, Width: width}
}

// fetchInsn reads the 32-bit instruction word at PC. Code only ever
// executes from RAM.
func (c *CPU) fetchInsn() (uint32, error) {
	if !inRAM(c.PC, 4) || c.PC%4 != 0 {
		return 0, &Fault{Kind: InvalidInstruction, Addr: c.PC, Width: 4}
	}
	off := c.PC - firmware.RAMBase
	return binary.LittleEndian.Uint32(c.RAM[off : off+4]), nil
}

// Tick fetches, decodes and executes one instruction. It returns ErrHalt on
// EBREAK, a *Fault on any of the fault kinds in spec.md 4.1, or nil to
// continue.
func (c *CPU) Tick(mmio MMIO) error {
	insn, err := c.fetchInsn()
	if err != nil {
		return err
	}
	return c.execute(insn, mmio)
}
