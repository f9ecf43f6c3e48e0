// Package console implements the master scheduler (spec §4.8): it wires
// the CPU, PPU, APU, mapper, and controllers together over a shared
// address bus, advances them at the correct 1:3:1 ratio, and delivers
// NMI/IRQ with the documented edge/level semantics.
package console

import (
	"nesgo/internal/apu"
	"nesgo/internal/bus"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/ppu"
)

// StepResult is returned by StepInstruction/TickCycle instead of an error:
// per spec §7, the only CPU condition the scheduler ever surfaces is an
// illegal opcode, and it is reported as data, not as a Go error.
type StepResult struct {
	Cycles        int
	IllegalOpcode bool
}

// AudioSample pairs a mixed audio sample with a CPU cycle count. Console
// has no audio callback and does not produce AudioSample values; the APU
// buffers its own samples (apu.APU.GetSamples).
type AudioSample struct {
	Value       float32
	CPUCycles   uint64
}

// Console is the complete wired system: CPU/PPU/APU/mapper/controllers
// plus the bookkeeping the scheduler owns directly (spec §3 "Scheduler
// state" and "OAM DMA state").
type Console struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Mapper cartridge.Mapper
	Pad1   *input.Controller
	Pad2   *input.Controller

	bus *bus.Bus
	ram [2048]uint8

	dmaPending bool
	dmaPage    uint8
	dmaStall   int

	// prevNMILine holds the NMI line's value as of the last instruction
	// boundary. Sampling it only at boundaries (rather than every PPU
	// cycle) is what gives the software-triggered case - enabling NMI in
	// PPUCTRL while VBlank is already active - its one-instruction delay:
	// the edge can only be observed at the start of the instruction after
	// the one that wrote PPUCTRL (spec §4.8, §9 design note).
	prevNMILine bool

	halted bool
}

// New wires a complete console around mapper. Call Reset before use.
func New(mapper cartridge.Mapper) *Console {
	c := &Console{
		PPU:    ppu.New(),
		APU:    apu.New(),
		Mapper: mapper,
		Pad1:   input.New(),
		Pad2:   input.New(),
	}
	c.PPU.SetMapper(mapperAdapter{mapper})
	c.bus = bus.New(func() uint8 { return c.CPU.OpenBus() })
	c.CPU = cpu.New(c.bus)
	c.APU.SetMemoryReader(func(addr uint16) uint8 { return c.bus.Read(addr) })
	c.registerHandlers()
	return c
}

// mapperAdapter narrows cartridge.Mapper to ppu.Mapper.
type mapperAdapter struct{ m cartridge.Mapper }

func (a mapperAdapter) PPURead(addr uint16) uint8       { return a.m.PPURead(addr) }
func (a mapperAdapter) PPUWrite(addr uint16, v uint8)   { a.m.PPUWrite(addr, v) }
func (a mapperAdapter) Mirroring() cartridge.Mirror     { return a.m.Mirroring() }

func (c *Console) registerHandlers() {
	c.bus.Register(&bus.Handler{
		Name: "ram", Start: 0x0000, End: 0x1FFF, MirrorSize: 0x0800,
		Read:  func(addr uint16) uint8 { return c.ram[addr] },
		Write: func(addr uint16, v uint8) { c.ram[addr] = v },
	})
	c.bus.Register(&bus.Handler{
		Name: "ppu", Start: 0x2000, End: 0x3FFF, MirrorSize: 8,
		Read:  func(addr uint16) uint8 { return c.PPU.ReadRegister(addr) },
		Write: func(addr uint16, v uint8) { c.PPU.WriteRegister(addr, v) },
	})
	c.bus.Register(&bus.Handler{
		Name: "apu-io", Start: 0x4000, End: 0x4017,
		Read:  c.readAPUOrInput,
		Write: c.writeAPUOrInput,
	})
	c.bus.Register(&bus.Handler{
		Name: "cart", Start: 0x4020, End: 0xFFFF,
		Read: func(addr uint16) uint8 {
			if v, ok := c.Mapper.CPURead(addr); ok {
				return v
			}
			return c.CPU.OpenBus()
		},
		Write: func(addr uint16, v uint8) { c.Mapper.CPUWrite(addr, v) },
	})
}

func (c *Console) readAPUOrInput(addr uint16) uint8 {
	switch {
	case addr == 0x4015:
		return c.APU.ReadStatus()
	case addr == 0x4016:
		return c.Pad1.Read() | 0x40
	case addr == 0x4017:
		return c.Pad2.Read() | 0x40
	default:
		return c.CPU.OpenBus()
	}
}

func (c *Console) writeAPUOrInput(addr uint16, v uint8) {
	switch {
	case addr == 0x4014:
		c.triggerOAMDMA(v)
	case addr == 0x4016:
		c.Pad1.Write(v)
		c.Pad2.Write(v)
	default:
		c.APU.WriteRegister(addr, v)
	}
}

// SetButton sets one of the eight buttons (A=0..Right=7, spec §6) on the
// given controller (1 or 2).
func (c *Console) SetButton(controller, index int, pressed bool) {
	pad := c.Pad1
	if controller == 2 {
		pad = c.Pad2
	}
	buttons := [8]input.Button{
		input.ButtonA, input.ButtonB, input.ButtonSelect, input.ButtonStart,
		input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight,
	}
	if index < 0 || index >= len(buttons) {
		return
	}
	pad.SetButton(buttons[index], pressed)
}

// Reset resets CPU, PPU, APU, and scheduler bookkeeping (spec §4.8).
func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.APU.Reset()
	c.Pad1.Reset()
	c.Pad2.Reset()
	c.dmaPending = false
	c.dmaStall = 0
	c.prevNMILine = false
	c.halted = false
}

func (c *Console) triggerOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		c.PPU.WriteOAM(uint8(i), c.bus.Read(base+uint16(i)))
	}
	c.dmaPending = true
	c.dmaPage = page
}

// resolveDMAStall computes the 513/514-cycle stall once the triggering
// instruction has finished, per spec §4.6/§8 scenario 2: 514 if the CPU
// cycle count at that point is odd, else 513.
func (c *Console) resolveDMAStall() {
	if !c.dmaPending {
		return
	}
	c.dmaPending = false
	if c.CPU.Cycles%2 == 1 {
		c.dmaStall += 514
	} else {
		c.dmaStall += 513
	}
}
