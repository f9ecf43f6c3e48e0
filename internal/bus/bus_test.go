package bus

import "testing"

func TestFirstHandlerWins(t *testing.T) {
	b := New(nil)
	var hits []string
	b.Register(&Handler{
		Name: "ram", Start: 0x0000, End: 0x1FFF, MirrorSize: 0x0800,
		Read: func(addr uint16) uint8 { hits = append(hits, "ram"); return uint8(addr) },
		Write: func(addr uint16, val uint8) {},
	})
	b.Register(&Handler{
		Name: "overlap", Start: 0x0000, End: 0xFFFF,
		Read: func(addr uint16) uint8 { hits = append(hits, "overlap"); return 0xFF },
		Write: func(addr uint16, val uint8) {},
	})

	if got := b.Read(0x0010); got != 0x10 {
		t.Fatalf("Read(0x0010) = %#02x, want 0x10 (ram handler should win)", got)
	}
	if got := b.Read(0x5000); got != 0xFF {
		t.Fatalf("Read(0x5000) = %#02x, want 0xFF (overlap handler covers untaken range)", got)
	}
	if len(hits) != 2 || hits[0] != "ram" || hits[1] != "overlap" {
		t.Fatalf("unexpected dispatch order: %v", hits)
	}
}

func TestMirroring(t *testing.T) {
	var ram [0x800]uint8
	b := New(nil)
	b.Register(&Handler{
		Name: "ram", Start: 0x0000, End: 0x1FFF, MirrorSize: 0x0800,
		Read:  func(addr uint16) uint8 { return ram[addr] },
		Write: func(addr uint16, val uint8) { ram[addr] = val },
	})

	b.Write(0x0042, 0x99)
	for _, mirror := range []uint16{0x0042, 0x0842, 0x1042, 0x1842} {
		if got := b.Read(mirror); got != 0x99 {
			t.Errorf("Read(%#04x) = %#02x, want 0x99 (mirror of $0042)", mirror, got)
		}
	}
}

func TestUnmappedReturnsOpenBus(t *testing.T) {
	b := New(func() uint8 { return 0xAB })
	if got := b.Read(0x5000); got != 0xAB {
		t.Fatalf("Read(unmapped) = %#02x, want open-bus value 0xAB", got)
	}
	// Write to an unmapped address must not panic and must be a no-op.
	b.Write(0x5000, 0x11)
}

func TestHandlerAt(t *testing.T) {
	b := New(nil)
	b.Register(&Handler{Name: "ppu", Start: 0x2000, End: 0x3FFF,
		Read: func(uint16) uint8 { return 0 }, Write: func(uint16, uint8) {}})
	if got := b.HandlerAt(0x2007); got != "ppu" {
		t.Fatalf("HandlerAt(0x2007) = %q, want \"ppu\"", got)
	}
	if got := b.HandlerAt(0x4000); got != "" {
		t.Fatalf("HandlerAt(0x4000) = %q, want \"\"", got)
	}
}
