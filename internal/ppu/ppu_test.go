package ppu

import (
	"testing"

	"nesgo/internal/cartridge"
)

// stubMapper is a minimal Mapper double for isolated PPU tests.
type stubMapper struct {
	chr    [0x2000]uint8
	mirror cartridge.Mirror
}

func (m *stubMapper) PPURead(addr uint16) uint8     { return m.chr[addr&0x1FFF] }
func (m *stubMapper) PPUWrite(addr uint16, v uint8) { m.chr[addr&0x1FFF] = v }
func (m *stubMapper) Mirroring() cartridge.Mirror   { return m.mirror }

func newTestPPU() (*PPU, *stubMapper) {
	m := &stubMapper{mirror: cartridge.MirrorVertical}
	p := New()
	p.SetMapper(m)
	p.Reset()
	return p, m
}

func TestPPUSTATUSClearsVBlankAndWriteToggle(t *testing.T) {
	p, _ := newTestPPU()
	p.status = 0x80
	p.w = true
	v := p.ReadRegister(0x2002)
	if v&0x80 == 0 {
		t.Fatal("PPUSTATUS read should report VBlank was set")
	}
	if p.status&0x80 != 0 {
		t.Fatal("reading PPUSTATUS should clear the VBlank flag")
	}
	if p.w {
		t.Fatal("reading PPUSTATUS should clear the write toggle")
	}
}

func TestPPUSCROLLLatchesXThenY(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	if p.x != 5 {
		t.Fatalf("fine X = %d, want 5", p.x)
	}
	if p.t&0x001F != 15 {
		t.Fatalf("coarse X in t = %d, want 15", p.t&0x001F)
	}
	p.WriteRegister(0x2005, 0x5E) // second write: Y scroll
	if p.w {
		t.Fatal("write toggle should be false after second PPUSCROLL write")
	}
}

func TestPPUADDRTwoWriteSequenceLoadsV(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	if p.v != 0x2108 {
		t.Fatalf("v = %#04x, want $2108", p.v)
	}
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p, _ := newTestPPU()
	p.vram[0] = 0x42
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Fatalf("first PPUDATA read should return stale buffer (0), got %#02x", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0x42 {
		t.Fatalf("second PPUDATA read should return buffered value $42, got %#02x", second)
	}
}

func TestPPUDATAIncrementsByRuleFromPPUCTRL(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2000, 0x04) // vertical increment mode
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	start := p.v
	p.ReadRegister(0x2007)
	if p.v != start+32 {
		t.Fatalf("v after PPUDATA read with +32 mode = %#04x, want %#04x", p.v, start+32)
	}
}

func TestNMITriggersAtScanline241Cycle1(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2000, 0x80) // enable NMI on VBlank
	p.scanline = 241
	p.cycle = 0
	if p.NMILine() {
		t.Fatal("NMI line should be low before VBlank is set")
	}
	p.Step()
	if p.status&0x80 == 0 {
		t.Fatal("VBlank flag should be set at scanline 241 cycle 1")
	}
	if !p.NMILine() {
		t.Fatal("NMI line should be high once VBlank is set with NMI enabled in PPUCTRL")
	}
}

func TestNMILineLowWhenNMIDisabledInCtrl(t *testing.T) {
	p, _ := newTestPPU()
	p.scanline = 241
	p.cycle = 0
	p.Step()
	if p.status&0x80 == 0 {
		t.Fatal("VBlank flag should still be set at scanline 241 cycle 1")
	}
	if p.NMILine() {
		t.Fatal("NMI line should stay low when PPUCTRL bit 7 is clear")
	}
}

func TestVBlankClearedAtPreRenderCycle1(t *testing.T) {
	p, _ := newTestPPU()
	p.status = 0xE0
	p.scanline = preRenderScanline
	p.cycle = 0
	p.Step()
	if p.status&0xE0 != 0 {
		t.Fatalf("status = %#02x, want VBlank/sprite0/overflow cleared", p.status)
	}
}

func TestIncrementYWrapsAtCoarseY29WithNametableFlip(t *testing.T) {
	p, _ := newTestPPU()
	p.v = 0x7000 | 29<<5 // coarseY = 29, fineY = 7
	p.incrementY()
	if p.coarseY() != 0 {
		t.Fatalf("coarseY after wrap = %d, want 0", p.coarseY())
	}
	if p.v&0x0800 == 0 {
		t.Fatal("incrementY should flip vertical nametable bit when coarseY wraps from 29")
	}
}

func TestIncrementYSilentWrapAtCoarseY31(t *testing.T) {
	p, _ := newTestPPU()
	p.v = 0x7000 | 31<<5 // coarseY = 31, fineY = 7
	before := p.v & 0x0800
	p.incrementY()
	if p.coarseY() != 0 {
		t.Fatalf("coarseY after silent wrap = %d, want 0", p.coarseY())
	}
	if p.v&0x0800 != before {
		t.Fatal("incrementY should NOT flip nametable bit on the coarseY=31 silent wrap")
	}
}

func TestCopyXRestoresOnlyHorizontalBits(t *testing.T) {
	p, _ := newTestPPU()
	p.t = 0x041F
	p.v = 0
	p.copyX()
	if p.v != 0x041F {
		t.Fatalf("v = %#04x, want $041F after copyX", p.v)
	}
}

func TestCopyYRestoresOnlyVerticalBits(t *testing.T) {
	p, _ := newTestPPU()
	p.t = 0x7BE0
	p.v = 0
	p.copyY()
	if p.v != 0x7BE0 {
		t.Fatalf("v = %#04x, want $7BE0 after copyY", p.v)
	}
}

func TestSprite0HitDetection(t *testing.T) {
	p, m := newTestPPU()
	p.WriteRegister(0x2001, 0x1E) // show background + sprites, leftmost 8 px included
	p.oam[0] = 10                // Y
	p.oam[1] = 0                 // tile 0
	p.oam[2] = 0                 // attribute, palette 0, front
	p.oam[3] = 0                 // X
	m.chr[0] = 0xFF              // solid tile plane 0 for tile index 0
	p.vram[0] = 0                // nametable tile 0 -> also solid via CHR pattern 0

	p.evaluateSprites(10)
	if !p.sprite0OnLine {
		t.Fatal("sprite 0 should be on line 10")
	}
	p.renderScanline(10, p.v, p.x)
	if p.status&0x40 == 0 {
		t.Fatal("sprite-0 hit flag should be set when opaque bg and sprite pixels overlap")
	}
}

func TestSpriteOverflowBugSetsFlagOnNinePlusSprites(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 9; i++ {
		p.oam[i*4+0] = 50 // all on the same line
	}
	p.evaluateSprites(50)
	if p.spriteCount != 8 {
		t.Fatalf("secondary OAM should cap at 8 sprites, got %d", p.spriteCount)
	}
	if p.status&0x20 == 0 {
		t.Fatal("overflow flag should be set when a 9th in-range sprite is scanned")
	}
}

func TestSpriteOverflowBugDriftsIntoAttributeByte(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 8; i++ {
		p.oam[i*4+0] = 50 // first 8 sprites fill secondary OAM normally
	}
	// 9th sprite's real Y (200) is out of range for line 50, so the m=0
	// check correctly misses. The hardware bug then tests the 9th
	// sprite's own tile byte (m=1, out of range here) and attribute byte
	// (m=2) against the Y range instead of moving on to a 10th sprite,
	// and the attribute byte happens to fall in range - a false-positive
	// overflow the real hardware reproduces.
	p.oam[8*4+0] = 200
	p.oam[8*4+2] = 50

	p.evaluateSprites(50)

	if p.spriteCount != 8 {
		t.Fatalf("secondary OAM should cap at 8 sprites, got %d", p.spriteCount)
	}
	if p.status&0x20 == 0 {
		t.Fatal("overflow flag should be falsely set by the attribute-byte drift")
	}
}

func TestSpriteOverflowBugAdvancesSpriteIndexOnlyWhenMWraps(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 8; i++ {
		p.oam[i*4+0] = 50
	}
	// 9th sprite: none of its four bytes (Y, tile, attribute, X)
	// fall in range for line 50, so the scan must drift through all of
	// m=0..3 on n=8 before n finally advances to 9, where the real Y
	// (50) would be found. If n advanced on every step (the original
	// bug), it would skip past sprite 9 and miss this overflow.
	p.oam[8*4+0] = 200
	p.oam[8*4+1] = 201
	p.oam[8*4+2] = 202
	p.oam[8*4+3] = 203
	p.oam[9*4+0] = 50

	p.evaluateSprites(50)

	if p.status&0x20 == 0 {
		t.Fatal("overflow flag should be set once the scan reaches sprite 9's real Y byte")
	}
}

// fourScreenStubMapper extends stubMapper with the optional
// cartridge.FourScreenVRAM interface the PPU type-asserts for.
type fourScreenStubMapper struct {
	stubMapper
	extra [0x800]uint8
}

func (m *fourScreenStubMapper) FourScreenVRAM() []uint8 { return m.extra[:] }

func TestFourScreenMirroringRoutesThroughMapperVRAM(t *testing.T) {
	p := New()
	m := &fourScreenStubMapper{stubMapper: stubMapper{mirror: cartridge.MirrorFourScreen}}
	p.SetMapper(m)
	p.Reset()

	p.busWrite(0x2000, 0x11) // nametable 0: PPU's own VRAM
	p.busWrite(0x2400, 0x22) // nametable 1: PPU's own VRAM
	p.busWrite(0x2800, 0x33) // nametable 2: mapper's extra VRAM
	p.busWrite(0x2C00, 0x44) // nametable 3: mapper's extra VRAM

	if v := p.busRead(0x2000); v != 0x11 {
		t.Fatalf("nametable 0 = %#02x, want $11", v)
	}
	if v := p.busRead(0x2400); v != 0x22 {
		t.Fatalf("nametable 1 = %#02x, want $22", v)
	}
	if v := p.busRead(0x2800); v != 0x33 {
		t.Fatalf("nametable 2 = %#02x, want $33", v)
	}
	if v := p.busRead(0x2C00); v != 0x44 {
		t.Fatalf("nametable 3 = %#02x, want $44", v)
	}
	if m.extra[0] != 0x33 || m.extra[0x400] != 0x44 {
		t.Fatal("nametables 2-3 should have been written into the mapper's own extra VRAM")
	}
}

func TestFourScreenMirroringFallsBackToSingleScreen0(t *testing.T) {
	p, m := newTestPPU()
	m.mirror = cartridge.MirrorFourScreen // stubMapper doesn't implement FourScreenVRAM

	p.busWrite(0x2000, 0x55)
	if v := p.busRead(0x2C00); v != 0x55 {
		t.Fatalf("without a mapper-supplied extra VRAM, four-screen should fall back to single-screen-0: got %#02x, want $55", v)
	}
}

func TestMirrorNametableVertical(t *testing.T) {
	p, m := newTestPPU()
	m.mirror = cartridge.MirrorVertical
	if p.mirrorNametable(0x2000) != p.mirrorNametable(0x2800) {
		t.Fatal("vertical mirroring should map $2000 and $2800 to the same VRAM offset")
	}
	if p.mirrorNametable(0x2000) == p.mirrorNametable(0x2400) {
		t.Fatal("vertical mirroring should NOT map $2000 and $2400 together")
	}
}

func TestMirrorPaletteBackdropAlias(t *testing.T) {
	p, _ := newTestPPU()
	if p.mirrorPalette(0x3F10) != p.mirrorPalette(0x3F00) {
		t.Fatal("$3F10 should mirror $3F00")
	}
	if p.mirrorPalette(0x3F11) == p.mirrorPalette(0x3F01) {
		t.Fatal("$3F11 should NOT mirror $3F01 (only the backdrop slots alias)")
	}
}
