package cpu

import (
	"errors"
	"fmt"
)

// ErrHalt is returned by Tick when the program executes EBREAK.
var ErrHalt = errors.New("cpu: halted (ebreak)")

// FaultKind enumerates the fault taxonomy of spec.md 4.1. DivisionPolicy is
// deliberately absent: RISC-V's divide-by-zero/overflow results are not a
// fault, they are handled inline by the divide instructions themselves.
type FaultKind int

const (
	// NullAccess covers any load/store to an address in the first 4 KiB,
	// any other address outside the RAM and MMIO windows, and an MMIO
	// access the addressed peripheral rejects.
	NullAccess FaultKind = iota
	// Unaligned covers an MMIO access (or, per spec.md 9's resolved open
	// question, an AMO on RAM) whose address is not aligned to Width.
	Unaligned
	// MissizedMmio covers an MMIO load/store whose width is not 4 bytes.
	MissizedMmio
	// UnsupportedAtomicMmio covers any AMO (including LR.W/SC.W) targeting
	// the MMIO window.
	UnsupportedAtomicMmio
	// InvalidInstruction covers a decode failure or unsupported opcode.
	InvalidInstruction
)

func (k FaultKind) String() string {
	switch k {
	case NullAccess:
		return "NullAccess"
	case Unaligned:
		return "Unaligned"
	case MissizedMmio:
		return "MissizedMmio"
	case UnsupportedAtomicMmio:
		return "UnsupportedAtomicMmio"
	case InvalidInstruction:
		return "InvalidInstruction"
	default:
		return "UnknownFault"
	}
}

// Fault is the error type Tick returns for every fault kind; it carries the
// effective address and access width so the world scheduler can record a
// human-readable kill reason (spec.md 4.1, 7).
type Fault struct {
	Kind  FaultKind
	Addr  uint32
	Width int
}

func (f *Fault) Error() string {
	switch f.Kind {
	case Unaligned:
		return fmt.Sprintf("%s(%d) at 0x%08x", f.Kind, f.Width, f.Addr)
	case InvalidInstruction:
		return fmt.Sprintf("%s at pc=0x%08x", f.Kind, f.Addr)
	default:
		return fmt.Sprintf("%s at 0x%08x width=%d", f.Kind, f.Addr, f.Width)
	}
}
