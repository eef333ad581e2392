package cpu

// execAtomic implements the RV32A word subset: LR.W, SC.W and the AMO*.W
// family. Per spec.md 4.1 these only operate on RAM; any target inside the
// MMIO window is UnsupportedAtomicMmio, regardless of which AMO op it is.
func (c *CPU) execAtomic(insn uint32, funct3, rd, rs1, rs2 uint32, mmio MMIO) error {
	if funct3 != 2 { // word-width AMOs only
		return c.invalid(insn)
	}

	addr := c.Reg(rs1)
	funct5 := insn >> 27

	if inMMIO(addr) {
		return &Fault{Kind: UnsupportedAtomicMmio, Addr: addr, Width: 4}
	}

	if addr%4 != 0 {
		return &Fault{Kind: Unaligned, Addr: addr, Width: 4}
	}

	switch funct5 {
	case 0b00010: // LR.W
		val, err := c.readMem(addr, 4, mmio)
		if err != nil {
			return err
		}
		c.SetReg(rd, val)
		c.reserved = true
		c.reservedPC = addr
		c.PC += 4
		return nil

	case 0b00011: // SC.W
		rs2val := c.Reg(rs2)
		if c.reserved && c.reservedPC == addr {
			if err := c.writeMem(addr, 4, rs2val, mmio); err != nil {
				return err
			}
			c.SetReg(rd, 0)
		} else {
			c.SetReg(rd, 1)
		}
		c.reserved = false
		c.PC += 4
		return nil
	}

	old, err := c.readMem(addr, 4, mmio)
	if err != nil {
		return err
	}
	rs2val := c.Reg(rs2)

	var next uint32
	switch funct5 {
	case 0b00001: // AMOSWAP.W
		next = rs2val
	case 0b00000: // AMOADD.W
		next = old + rs2val
	case 0b00100: // AMOXOR.W
		next = old ^ rs2val
	case 0b01100: // AMOAND.W
		next = old & rs2val
	case 0b01000: // AMOOR.W
		next = old | rs2val
	case 0b10000: // AMOMIN.W
		if int32(old) < int32(rs2val) {
			next = old
		} else {
			next = rs2val
		}
	case 0b10100: // AMOMAX.W
		if int32(old) > int32(rs2val) {
			next = old
		} else {
			next = rs2val
		}
	case 0b11000: // AMOMINU.W
		if old < rs2val {
			next = old
		} else {
			next = rs2val
		}
	case 0b11100: // AMOMAXU.W
		if old > rs2val {
			next = old
		} else {
			next = rs2val
		}
	default:
		return c.invalid(insn)
	}

	if err := c.writeMem(addr, 4, next, mmio); err != nil {
		return err
	}
	c.SetReg(rd, old)
	c.PC += 4
	return nil
}
