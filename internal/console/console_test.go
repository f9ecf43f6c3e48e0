package console

import (
	"testing"

	"nesgo/internal/cartridge"
)

// stubMapper is a minimal cartridge.Mapper double: a flat 32KB PRG image
// mapped straight into $8000-$FFFF, fixed horizontal CHR mirroring, and no
// mapper IRQ. Good enough to drive the scheduler through known programs.
type stubMapper struct {
	prg [0x8000]uint8
	chr [0x2000]uint8
	irq bool
}

func newStubMapper() *stubMapper { return &stubMapper{} }

func (m *stubMapper) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	return m.prg[addr-0x8000], true
}

func (m *stubMapper) CPUWrite(addr uint16, v uint8) {}

func (m *stubMapper) PPURead(addr uint16) uint8     { return m.chr[addr&0x1FFF] }
func (m *stubMapper) PPUWrite(addr uint16, v uint8) { m.chr[addr&0x1FFF] = v }
func (m *stubMapper) Mirroring() cartridge.Mirror   { return cartridge.MirrorHorizontal }
func (m *stubMapper) ScanlineTick()                 {}
func (m *stubMapper) IRQPending() bool              { return m.irq }

// setResetVector points the reset/NMI/IRQ vectors at addr within the PRG
// window so a fresh Console boots straight into a known program.
func (m *stubMapper) setVector(vector uint16, addr uint16) {
	m.prg[vector-0x8000] = uint8(addr)
	m.prg[vector-0x8000+1] = uint8(addr >> 8)
}

func newTestConsole() (*Console, *stubMapper) {
	m := newStubMapper()
	m.setVector(0xFFFC, 0x8000) // reset vector
	m.setVector(0xFFFA, 0x9000) // NMI vector
	m.setVector(0xFFFE, 0x9100) // IRQ/BRK vector
	c := New(m)
	c.Reset()
	return c, m
}

func TestResetBootsFromMapperResetVector(t *testing.T) {
	c, _ := newTestConsole()
	if c.CPU.PC != 0x8000 {
		t.Fatalf("PC after reset = %#04x, want $8000", c.CPU.PC)
	}
}

func TestStepInstructionRunsSingleInstruction(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0xEA // NOP at $8000
	m.prg[1] = 0xEA
	result := c.StepInstruction()
	if result.IllegalOpcode {
		t.Fatal("NOP should not be reported as illegal")
	}
	if c.CPU.PC != 0x8001 {
		t.Fatalf("PC after one NOP = %#04x, want $8001", c.CPU.PC)
	}
}

func TestStepInstructionReportsIllegalOpcode(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0x02 // KIL
	result := c.StepInstruction()
	if !result.IllegalOpcode {
		t.Fatal("KIL should be reported as an illegal opcode")
	}
	if !c.halted {
		t.Fatal("console should latch halted after an illegal opcode")
	}
	again := c.StepInstruction()
	if !again.IllegalOpcode {
		t.Fatal("further StepInstruction calls after halt should keep reporting illegal")
	}
}

func TestOAMDMAStallIsOddEvenParitySensitive(t *testing.T) {
	// Spec §8 scenario 2: STA $4014 itself costs 4 CPU cycles, and the
	// DMA stall added on top is 513 if the CPU's cycle count is even at
	// that point, 514 if odd.
	c, m := newTestConsole()
	m.prg[0] = 0xA9 // LDA #$00
	m.prg[1] = 0x00
	m.prg[2] = 0x8D // STA $4014
	m.prg[3] = 0x14
	m.prg[4] = 0x40
	c.StepInstruction() // LDA #$00, 2 cycles

	before := c.CPU.Cycles
	c.StepInstruction() // STA $4014: triggers OAM DMA
	after := c.CPU.Cycles

	delta := after - before
	want := uint64(4)
	if before%2 == 1 {
		want += 514
	} else {
		want += 513
	}
	if delta != want {
		t.Fatalf("cycles consumed by STA $4014 = %d, want %d (before cycle count %d)", delta, want, before)
	}
}

func TestNMIEdgeDeliveredAtNextInstructionBoundary(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0xEA // NOP
	m.prg[1] = 0xEA // NOP
	c.PPU.WriteRegister(0x2000, 0x80) // enable NMI in PPUCTRL

	// Force VBlank by running the PPU up to scanline 241 cycle 1.
	for c.PPU.Scanline() != 241 || c.PPU.Cycle() != 1 {
		c.PPU.Step()
	}
	if !c.PPU.NMILine() {
		t.Fatal("PPU NMI line should be high once VBlank is set with NMI enabled")
	}

	c.StepInstruction() // first instruction boundary after the edge: services NMI
	if c.CPU.PC != 0x9000 {
		t.Fatalf("PC after NMI service = %#04x, want $9000 (NMI vector)", c.CPU.PC)
	}
}

func TestControllerPortsOpenBusAndStrobeFanOut(t *testing.T) {
	c, _ := newTestConsole()
	c.SetButton(1, 0, true) // P1 A
	c.SetButton(2, 1, true) // P2 B

	if v := c.bus.Read(0x4016); v&0x40 == 0 {
		t.Fatal("$4016 reads should have bit 6 set (open bus)")
	}
	if v := c.bus.Read(0x4017); v&0x40 == 0 {
		t.Fatal("$4017 reads should have bit 6 set (open bus)")
	}

	c.bus.Write(0x4016, 1) // strobe high: reload both pads
	c.bus.Write(0x4016, 0) // falling edge: latch both pads

	if v := c.bus.Read(0x4016) & 1; v != 1 {
		t.Fatalf("P1 first bit = %d, want 1 (A pressed)", v)
	}
	if v := c.bus.Read(0x4017) & 1; v != 0 {
		t.Fatalf("P2 first bit = %d, want 0 (A not pressed)", v)
	}
}

func TestIRQLineReflectsMapperAndServicesWhenEnabled(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0x58 // CLI
	m.prg[1] = 0xEA // NOP
	m.irq = true

	c.StepInstruction() // CLI: clears I, mapper IRQ line already asserted
	c.StepInstruction() // next boundary: IRQ is serviced instead of the NOP
	if c.CPU.PC != 0x9100 {
		t.Fatalf("PC after IRQ service = %#04x, want $9100 (IRQ/BRK vector)", c.CPU.PC)
	}
}
