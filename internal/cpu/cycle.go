package cpu

import "nesgo/internal/bits"

// StepCycle advances the CPU by exactly one clock cycle and reports
// whether that cycle completed an instruction (or interrupt sequence).
// It is the single authoritative executor: Step (instruction-stepped)
// is a thin loop around it, so the two modes can never disagree about
// bus timing (spec §4.3).
func (c *CPU) StepCycle() bool {
	c.Cycles++

	if c.step == 0 {
		return c.dispatch()
	}

	switch c.class {
	case classInterrupt:
		return c.stepInterrupt()
	case classKIL:
		// Jammed: re-read the same opcode byte forever, never progressing.
		c.read(c.PC)
		return true

	case classImm:
		return c.stepImm()
	case classZP:
		return c.stepZP(false)
	case classZPX:
		return c.stepZPIndexed(c.X, false)
	case classZPY:
		return c.stepZPIndexed(c.Y, false)
	case classAbs:
		return c.stepAbs(false)
	case classAbsX:
		return c.stepAbsIndexed(c.X, false)
	case classAbsY:
		return c.stepAbsIndexed(c.Y, false)
	case classIndX:
		return c.stepIndX(false)
	case classIndY:
		return c.stepIndY(false)

	case classZPWrite:
		return c.stepZP(true)
	case classZPXWrite:
		return c.stepZPIndexed(c.X, true)
	case classZPYWrite:
		return c.stepZPIndexed(c.Y, true)
	case classAbsWrite:
		return c.stepAbs(true)
	case classAbsXWrite:
		return c.stepAbsIndexed(c.X, true)
	case classAbsYWrite:
		return c.stepAbsIndexed(c.Y, true)
	case classIndXWrite:
		return c.stepIndX(true)
	case classIndYWrite:
		return c.stepIndY(true)

	case classZPRMW:
		return c.stepZPRMW(false)
	case classZPXRMW:
		return c.stepZPIndexedRMW(c.X)
	case classAbsRMW:
		return c.stepAbsRMW(false)
	case classAbsXRMW:
		return c.stepAbsIndexedRMW(c.X)
	case classAbsYRMW:
		return c.stepAbsIndexedRMW(c.Y)
	case classIndXRMW:
		return c.stepIndXRMW()
	case classIndYRMW:
		return c.stepIndYRMW()
	case classAccumulator:
		return c.stepAccumulator()

	case classImplied:
		return c.stepImplied()
	case classBranch:
		return c.stepBranch()
	case classPush:
		return c.stepPush()
	case classPull:
		return c.stepPull()
	case classJSR:
		return c.stepJSR()
	case classRTS:
		return c.stepRTS()
	case classRTI:
		return c.stepRTI()
	case classBRK:
		return c.stepBRK()
	case classJMPAbs:
		return c.stepJMPAbs()
	case classJMPInd:
		return c.stepJMPInd()
	}

	// Unreached for a fully populated table; treat as a silent one-cycle
	// no-op rather than panicking on a malformed entry.
	c.step = 0
	return true
}

// Step runs one full instruction (or one interrupt-service sequence, or
// one jammed-CPU tick) and returns the number of cycles it took.
func (c *CPU) Step() int {
	start := c.Cycles
	for !c.StepCycle() {
	}
	return int(c.Cycles - start)
}

// dispatch runs at an instruction boundary: it samples the interrupt
// lines and either begins servicing one or fetches the next opcode.
func (c *CPU) dispatch() bool {
	if c.IllegalOpcode {
		c.read(c.PC)
		return true
	}

	if c.nmiPending {
		c.nmiPending = false
		c.servicingInterrupt = true
		c.interruptVector = vectorNMI
		c.class = classInterrupt
		c.step = 2
		c.read(c.PC) // first of two dummy opcode-fetch reads
		return false
	}
	if c.irqLine && !c.I {
		c.servicingInterrupt = true
		c.interruptVector = vectorIRQ
		c.class = classInterrupt
		c.step = 2
		c.read(c.PC)
		return false
	}

	c.servicingInterrupt = false
	c.opcode = c.read(c.PC)
	c.PC++
	c.info = opcodeTable[c.opcode]
	c.class = c.info.class
	c.crossed = false

	if c.class == classKIL {
		c.IllegalOpcode = true
		c.step = 0
		return true
	}
	c.step = 1
	return false
}

func (c *CPU) stepInterrupt() bool {
	switch c.step {
	case 2:
		c.read(c.PC)
		c.step = 3
	case 3:
		c.push(bits.Hi(c.PC))
		c.step = 4
	case 4:
		c.push(bits.Lo(c.PC))
		c.step = 5
	case 5:
		c.push(c.status(false))
		c.I = true
		c.step = 6
	case 6:
		c.lo = c.read(c.interruptVector)
		c.step = 7
	case 7:
		c.hi = c.read(c.interruptVector + 1)
		c.PC = bits.Word(c.hi, c.lo)
		c.step = 0
		return true
	}
	return false
}

// --- Immediate ---

func (c *CPU) stepImm() bool {
	v := c.read(c.PC)
	c.PC++
	c.info.read(c, v)
	c.step = 0
	return true
}

// --- Zero page ---

func (c *CPU) stepZP(write bool) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
		return false
	case 2:
		addr := uint16(c.lo)
		if write {
			c.addr = addr
			c.write(addr, c.info.write(c))
		} else {
			c.info.read(c, c.read(addr))
		}
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepZPIndexed(index uint8, write bool) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
		return false
	case 2:
		c.read(uint16(c.lo)) // dummy read before indexing
		c.lo += index
		c.step = 3
		return false
	case 3:
		addr := uint16(c.lo)
		if write {
			c.addr = addr
			c.write(addr, c.info.write(c))
		} else {
			c.info.read(c, c.read(addr))
		}
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepZPRMW(_ bool) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.addr = uint16(c.lo)
		c.data = c.read(c.addr)
		c.step = 3
	case 3:
		c.write(c.addr, c.data) // dummy write of unmodified value
		c.step = 4
	case 4:
		c.write(c.addr, c.info.rmw(c, c.data))
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepZPIndexedRMW(index uint8) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.read(uint16(c.lo))
		c.lo += index
		c.step = 3
	case 3:
		c.addr = uint16(c.lo)
		c.data = c.read(c.addr)
		c.step = 4
	case 4:
		c.write(c.addr, c.data)
		c.step = 5
	case 5:
		c.write(c.addr, c.info.rmw(c, c.data))
		c.step = 0
		return true
	}
	return false
}

// --- Absolute ---

func (c *CPU) stepAbs(write bool) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.hi = c.read(c.PC)
		c.PC++
		c.addr = bits.Word(c.hi, c.lo)
		c.step = 3
	case 3:
		if write {
			c.write(c.addr, c.info.write(c))
		} else {
			c.info.read(c, c.read(c.addr))
		}
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepAbsRMW(_ bool) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.hi = c.read(c.PC)
		c.PC++
		c.addr = bits.Word(c.hi, c.lo)
		c.step = 3
	case 3:
		c.data = c.read(c.addr)
		c.step = 4
	case 4:
		c.write(c.addr, c.data)
		c.step = 5
	case 5:
		c.write(c.addr, c.info.rmw(c, c.data))
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepAbsIndexed(index uint8, write bool) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.hi = c.read(c.PC)
		c.PC++
		base := bits.Word(c.hi, c.lo)
		c.addr = base + uint16(index)
		c.crossed = bits.Hi(base) != bits.Hi(c.addr)
		c.step = 3
	case 3:
		provisional := bits.Word(c.hi, c.lo+index)
		v := c.read(provisional)
		if write {
			c.step = 4
			return false
		}
		if !c.crossed {
			c.info.read(c, v)
			c.step = 0
			return true
		}
		c.step = 4
	case 4:
		if write {
			c.write(c.addr, c.info.write(c))
		} else {
			c.info.read(c, c.read(c.addr))
		}
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepAbsIndexedRMW(index uint8) bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.hi = c.read(c.PC)
		c.PC++
		base := bits.Word(c.hi, c.lo)
		c.addr = base + uint16(index)
		c.step = 3
	case 3:
		c.read(bits.Word(c.hi, c.lo+index)) // unconditional dummy read
		c.step = 4
	case 4:
		c.data = c.read(c.addr)
		c.step = 5
	case 5:
		c.write(c.addr, c.data)
		c.step = 6
	case 6:
		c.write(c.addr, c.info.rmw(c, c.data))
		c.step = 0
		return true
	}
	return false
}

// --- Indexed indirect: (zp,X) ---

func (c *CPU) stepIndX(write bool) bool {
	switch c.step {
	case 1:
		c.ptr = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.read(uint16(c.ptr))
		c.ptr += c.X
		c.step = 3
	case 3:
		c.lo = c.read(uint16(c.ptr))
		c.step = 4
	case 4:
		c.hi = c.read(uint16(c.ptr + 1))
		c.addr = bits.Word(c.hi, c.lo)
		c.step = 5
	case 5:
		if write {
			c.write(c.addr, c.info.write(c))
		} else {
			c.info.read(c, c.read(c.addr))
		}
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepIndXRMW() bool {
	switch c.step {
	case 1:
		c.ptr = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.read(uint16(c.ptr))
		c.ptr += c.X
		c.step = 3
	case 3:
		c.lo = c.read(uint16(c.ptr))
		c.step = 4
	case 4:
		c.hi = c.read(uint16(c.ptr + 1))
		c.addr = bits.Word(c.hi, c.lo)
		c.step = 5
	case 5:
		c.data = c.read(c.addr)
		c.step = 6
	case 6:
		c.write(c.addr, c.data)
		c.step = 7
	case 7:
		c.write(c.addr, c.info.rmw(c, c.data))
		c.step = 0
		return true
	}
	return false
}

// --- Indirect indexed: (zp),Y ---

func (c *CPU) stepIndY(write bool) bool {
	switch c.step {
	case 1:
		c.ptr = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.lo = c.read(uint16(c.ptr))
		c.step = 3
	case 3:
		c.hi = c.read(uint16(c.ptr + 1))
		base := bits.Word(c.hi, c.lo)
		c.addr = base + uint16(c.Y)
		c.crossed = bits.Hi(base) != bits.Hi(c.addr)
		c.step = 4
	case 4:
		provisional := bits.Word(c.hi, c.lo+c.Y)
		v := c.read(provisional)
		if write {
			c.step = 5
			return false
		}
		if !c.crossed {
			c.info.read(c, v)
			c.step = 0
			return true
		}
		c.step = 5
	case 5:
		if write {
			c.write(c.addr, c.info.write(c))
		} else {
			c.info.read(c, c.read(c.addr))
		}
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepIndYRMW() bool {
	switch c.step {
	case 1:
		c.ptr = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.lo = c.read(uint16(c.ptr))
		c.step = 3
	case 3:
		c.hi = c.read(uint16(c.ptr + 1))
		base := bits.Word(c.hi, c.lo)
		c.addr = base + uint16(c.Y)
		c.step = 4
	case 4:
		c.read(bits.Word(c.hi, c.lo+c.Y)) // unconditional dummy read
		c.step = 5
	case 5:
		c.data = c.read(c.addr)
		c.step = 6
	case 6:
		c.write(c.addr, c.data)
		c.step = 7
	case 7:
		c.write(c.addr, c.info.rmw(c, c.data))
		c.step = 0
		return true
	}
	return false
}

// --- Accumulator / implied ---

func (c *CPU) stepAccumulator() bool {
	c.read(c.PC) // dummy fetch of the following byte, PC not advanced
	c.A = c.info.rmw(c, c.A)
	c.step = 0
	return true
}

func (c *CPU) stepImplied() bool {
	c.read(c.PC)
	c.info.implied(c)
	c.step = 0
	return true
}

// --- Branch ---

func (c *CPU) stepBranch() bool {
	switch c.step {
	case 1:
		offset := c.read(c.PC)
		c.PC++
		c.data = offset
		if !c.info.branch(c) {
			c.step = 0
			return true
		}
		c.step = 2
	case 2:
		c.read(c.PC)
		target := uint16(int32(c.PC) + int32(bits.SignedByte(c.data)))
		c.addr = target
		if bits.Hi(target) == bits.Hi(c.PC) {
			c.PC = target
			c.step = 0
			return true
		}
		c.step = 3
	case 3:
		wrong := bits.Word(bits.Hi(c.PC), bits.Lo(c.addr))
		c.read(wrong)
		c.PC = c.addr
		c.step = 0
		return true
	}
	return false
}

// --- Stack ---

func (c *CPU) stepPush() bool {
	switch c.step {
	case 1:
		c.read(c.PC)
		c.step = 2
	case 2:
		c.push(c.info.write(c))
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepPull() bool {
	switch c.step {
	case 1:
		c.read(c.PC)
		c.step = 2
	case 2:
		c.read(stackBase + uint16(c.SP))
		c.step = 3
	case 3:
		c.info.read(c, c.pull())
		c.step = 0
		return true
	}
	return false
}

// --- JSR / RTS / RTI / BRK / JMP ---

func (c *CPU) stepJSR() bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.read(stackBase + uint16(c.SP))
		c.step = 3
	case 3:
		c.push(bits.Hi(c.PC))
		c.step = 4
	case 4:
		c.push(bits.Lo(c.PC))
		c.step = 5
	case 5:
		c.hi = c.read(c.PC)
		c.PC++
		c.PC = bits.Word(c.hi, c.lo)
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepRTS() bool {
	switch c.step {
	case 1:
		c.read(c.PC)
		c.step = 2
	case 2:
		c.read(stackBase + uint16(c.SP))
		c.step = 3
	case 3:
		c.lo = c.pull()
		c.step = 4
	case 4:
		c.hi = c.pull()
		c.step = 5
	case 5:
		c.PC = bits.Word(c.hi, c.lo) + 1
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepRTI() bool {
	switch c.step {
	case 1:
		c.read(c.PC)
		c.step = 2
	case 2:
		c.read(stackBase + uint16(c.SP))
		c.step = 3
	case 3:
		c.setStatus(c.pull())
		c.step = 4
	case 4:
		c.lo = c.pull()
		c.step = 5
	case 5:
		c.hi = c.pull()
		c.PC = bits.Word(c.hi, c.lo)
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepBRK() bool {
	switch c.step {
	case 1:
		c.read(c.PC) // padding byte, discarded
		c.PC++
		c.step = 2
	case 2:
		c.push(bits.Hi(c.PC))
		c.step = 3
	case 3:
		c.push(bits.Lo(c.PC))
		c.step = 4
	case 4:
		c.push(c.status(true))
		c.step = 5
	case 5:
		c.lo = c.read(vectorIRQ)
		c.I = true
		c.step = 6
	case 6:
		c.hi = c.read(vectorIRQ + 1)
		c.PC = bits.Word(c.hi, c.lo)
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepJMPAbs() bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.hi = c.read(c.PC)
		c.PC++
		c.PC = bits.Word(c.hi, c.lo)
		c.step = 0
		return true
	}
	return false
}

func (c *CPU) stepJMPInd() bool {
	switch c.step {
	case 1:
		c.lo = c.read(c.PC)
		c.PC++
		c.step = 2
	case 2:
		c.hi = c.read(c.PC)
		c.PC++
		c.addr = bits.Word(c.hi, c.lo)
		c.step = 3
	case 3:
		c.lo = c.read(c.addr)
		c.step = 4
	case 4:
		// The infamous page-wrap bug: if the pointer's low byte is $FF, the
		// high byte is fetched from the start of the same page rather than
		// the next page, per spec §4.3.
		hiAddr := bits.Word(bits.Hi(c.addr), bits.Lo(c.addr)+1)
		c.hi = c.read(hiAddr)
		c.PC = bits.Word(c.hi, c.lo)
		c.step = 0
		return true
	}
	return false
}
