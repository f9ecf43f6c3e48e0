package cartridge

import "testing"

func prgFilled(banks int, fill func(bank int) uint8) []uint8 {
	p := make([]uint8, banks*0x4000)
	for b := 0; b < banks; b++ {
		v := fill(b)
		for i := 0; i < 0x4000; i++ {
			p[b*0x4000+i] = v
		}
	}
	return p
}

func TestNROMMirrorsSingleBank(t *testing.T) {
	cfg := Config{MapperID: 0, PRG: prgFilled(1, func(int) uint8 { return 0x42 })}
	m, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, addr := range []uint16{0x8000, 0xC000, 0xFFFF} {
		if v, ok := m.CPURead(addr); !ok || v != 0x42 {
			t.Errorf("CPURead(%#04x) = %#02x,%v want 0x42,true", addr, v, ok)
		}
	}
}

func TestNROMSRAM(t *testing.T) {
	cfg := Config{MapperID: 0, PRG: prgFilled(2, func(b int) uint8 { return uint8(b) })}
	m, _ := New(cfg)
	m.CPUWrite(0x6000, 0x55)
	if v, ok := m.CPURead(0x6000); !ok || v != 0x55 {
		t.Fatalf("sram round-trip failed: %#02x,%v", v, ok)
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	cfg := Config{MapperID: 2, PRG: prgFilled(4, func(b int) uint8 { return uint8(b) })}
	m, _ := New(cfg)

	if v, _ := m.CPURead(0xC000); v != 3 {
		t.Fatalf("fixed upper bank should be last bank (3), got %d", v)
	}
	m.CPUWrite(0x8000, 2)
	if v, _ := m.CPURead(0x8000); v != 2 {
		t.Fatalf("switchable bank should read bank 2, got %d", v)
	}
	if v, _ := m.CPURead(0xC000); v != 3 {
		t.Fatalf("upper bank must stay fixed at 3, got %d", v)
	}
}

func TestCNROMChrBankMasked(t *testing.T) {
	chr := make([]uint8, 0x2000*2)
	for i := range chr[0x2000:] {
		chr[0x2000+i] = 0xAA
	}
	cfg := Config{MapperID: 3, PRG: prgFilled(1, func(int) uint8 { return 0 }), CHR: chr}
	m, _ := New(cfg)

	m.CPUWrite(0x8000, 1)
	if got := m.PPURead(0x0000); got != 0xAA {
		t.Fatalf("bank 1 select should read 0xAA, got %#02x", got)
	}
	m.CPUWrite(0x8000, 5) // masked to bank count (2) -> bank 1
	if got := m.PPURead(0x0000); got != 0xAA {
		t.Fatalf("out-of-range bank select should mask, got %#02x", got)
	}
}

func TestMMC1ShiftRegisterAndPRGMode(t *testing.T) {
	cfg := Config{MapperID: 1, PRG: prgFilled(4, func(b int) uint8 { return uint8(b) })}
	m, _ := New(cfg)

	// Power-on default is PRG mode 3 (fix last at $C000).
	if v, _ := m.CPURead(0xC000); v != 3 {
		t.Fatalf("power-on fixed bank should be 3, got %d", v)
	}

	writeShift := func(addr uint16, val uint8) {
		for i := 0; i < 5; i++ {
			m.CPUWrite(addr, (val>>uint(i))&1)
		}
	}

	// Select bank 1 for the $8000 window (register 3, any $E000-range addr).
	writeShift(0xE000, 1)
	if v, _ := m.CPURead(0x8000); v != 1 {
		t.Fatalf("switchable $8000 bank should be 1, got %d", v)
	}
	if v, _ := m.CPURead(0xC000); v != 3 {
		t.Fatalf("$C000 should stay fixed at last bank 3, got %d", v)
	}
}

func TestMMC1ResetForcesFixLastMode(t *testing.T) {
	cfg := Config{MapperID: 1, PRG: prgFilled(2, func(b int) uint8 { return uint8(b) })}
	m, _ := New(cfg)
	mm := m.(*mmc1)
	mm.control = 0 // force 32KB mode
	m.CPUWrite(0x8000, 0x80)
	if mm.prgMode() != 3 {
		t.Fatalf("reset write should force PRG mode 3, got %d", mm.prgMode())
	}
}

func TestMMC3BankingAndMirroring(t *testing.T) {
	cfg := Config{MapperID: 4, PRG: prgFilled(4, func(b int) uint8 { return uint8(b) })}
	m, _ := New(cfg)

	m.CPUWrite(0x8000, 6) // select R6
	m.CPUWrite(0x8001, 2) // R6 = 8KB bank 2, the first half of 16KB fill bank 1
	if v, _ := m.CPURead(0x8000); v != 1 {
		t.Fatalf("R6 should map to $8000 in mode 0, got %d", v)
	}
	if v, _ := m.CPURead(0xE000); v != 3 {
		t.Fatalf("$E000 should be fixed to last bank (3), got %d", v)
	}

	m.CPUWrite(0xA000, 1) // horizontal
	if m.Mirroring() != MirrorHorizontal {
		t.Fatalf("expected horizontal mirroring, got %v", m.Mirroring())
	}
}

func TestMMC3IRQFifthEdge(t *testing.T) {
	cfg := Config{MapperID: 4, PRG: prgFilled(2, func(int) uint8 { return 0 })}
	m, _ := New(cfg)

	m.CPUWrite(0xC000, 4) // latch = 4
	m.CPUWrite(0xC001, 0) // reload flag
	m.CPUWrite(0xE001, 0) // enable

	for i := 0; i < 4; i++ {
		m.ScanlineTick()
		if m.IRQPending() {
			t.Fatalf("IRQ should not fire before the 5th edge (fired on edge %d)", i+1)
		}
	}
	m.ScanlineTick()
	if !m.IRQPending() {
		t.Fatal("IRQ should fire on the 5th A12 edge")
	}
}

func TestUnsupportedMapperErrors(t *testing.T) {
	_, err := New(Config{MapperID: 99, PRG: prgFilled(1, func(int) uint8 { return 0 })})
	if err == nil {
		t.Fatal("expected an error for an unsupported mapper number")
	}
}
