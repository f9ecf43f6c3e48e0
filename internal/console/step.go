package console

// StepInstruction executes exactly one CPU instruction, ticks PPU/APU the
// proportional 3:1/1:1 amount afterward, and services any due OAM-DMA
// stall and interrupt delivery at the resulting instruction boundary
// (spec §4.8, §5 "an instruction's cycles are applied to PPU/APU after
// the instruction completes in instruction-stepped mode").
func (c *Console) StepInstruction() StepResult {
	if c.halted {
		return StepResult{IllegalOpcode: true}
	}

	c.deliverInterrupts()

	cycles := c.CPU.Step()
	c.tickPeripherals(cycles)
	c.resolveDMAStall()
	c.drainDMAStall()

	if c.CPU.IllegalOpcode {
		c.halted = true
	}
	return StepResult{Cycles: cycles, IllegalOpcode: c.CPU.IllegalOpcode}
}

// TickCycle advances the system by exactly one CPU cycle, three PPU
// cycles, and one APU cycle, reporting whether that cycle completed a
// CPU instruction (spec §4.8 tick_cycle).
func (c *Console) TickCycle() (instructionCompleted bool, result StepResult) {
	if c.halted {
		return true, StepResult{IllegalOpcode: true}
	}

	if c.CPU.AtInstructionBoundary() {
		c.deliverInterrupts()
	}

	wasBoundary := c.CPU.AtInstructionBoundary()
	done := c.CPU.StepCycle()
	c.tickPeripherals(1)

	if done {
		c.resolveDMAStall()
	}
	c.drainDMAStall()

	if c.CPU.IllegalOpcode {
		c.halted = true
	}
	_ = wasBoundary
	return done, StepResult{Cycles: 1, IllegalOpcode: c.CPU.IllegalOpcode}
}

// RunFrame steps instructions until the PPU completes one full frame.
func (c *Console) RunFrame() {
	target := c.PPU.FrameCount() + 1
	for c.PPU.FrameCount() < target && !c.halted {
		c.StepInstruction()
	}
}

// tickPeripherals advances the PPU 3x and the APU 1x per CPU cycle
// consumed, and clocks the mapper's scanline IRQ hook at PPU cycle 260 of
// every visible/pre-render scanline while rendering is enabled (spec
// §4.2, §4.4).
func (c *Console) tickPeripherals(cpuCycles int) {
	for i := 0; i < cpuCycles; i++ {
		for ppuStep := 0; ppuStep < 3; ppuStep++ {
			scanline, cycle := c.PPU.Scanline(), c.PPU.Cycle()
			c.PPU.Step()
			if cycle == 259 && c.PPU.Cycle() == 260 && scanline >= -1 && scanline < 240 && c.PPU.RenderingEnabled() {
				c.Mapper.ScanlineTick()
			}
		}
		c.APU.Step()
		c.CPU.SetIRQLine(c.APU.IRQ() || c.Mapper.IRQPending())
	}
}

// deliverInterrupts samples the PPU NMI line for a rising edge and
// handles the one-instruction software-trigger delay (spec §4.8).
func (c *Console) deliverInterrupts() {
	nmiLine := c.ppuNMILine()
	if nmiLine && !c.prevNMILine {
		c.CPU.TriggerNMI()
	}
	c.prevNMILine = nmiLine
}

func (c *Console) ppuNMILine() bool {
	return c.PPU.NMILine()
}

// drainDMAStall burns every pending CPU stall cycle, one at a time, by
// counting it on the CPU cycle counter and ticking PPU/APU without
// advancing the CPU program counter, matching real hardware where OAM DMA
// (and any nested DMC DMA) stalls CPU instruction fetch while PPU/APU
// continue (spec §4.6).
func (c *Console) drainDMAStall() {
	for c.dmaStall > 0 {
		c.dmaStall--
		c.CPU.Cycles++
		c.tickPeripheralsOneCycle()
		c.dmaStall += c.APU.TakeStallCycles()
	}
}

func (c *Console) tickPeripheralsOneCycle() {
	c.tickPeripherals(1)
}
