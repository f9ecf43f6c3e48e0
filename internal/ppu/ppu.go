// Package ppu implements the Picture Processing Unit (the Ricoh 2C02):
// its CPU-visible register file, scroll-address internals, nametable and
// palette RAM, OAM and sprite evaluation, and the NTSC frame timer that
// drives VBlank/NMI (spec §4.4).
package ppu

import "nesgo/internal/cartridge"

// Mapper is the narrow view of a cartridge the PPU needs: CHR access and
// the mirroring mode it should apply to nametable addresses.
type Mapper interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirror
}

const (
	cyclesPerScanline = 341
	lastScanline      = 260
	preRenderScanline = -1
	visibleScanlines  = 240
)

// PPU holds all 2C02 state.
type PPU struct {
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002
	oamAddr uint8

	v, t uint16 // current/temporary VRAM address, 15 bits (spec §4.4 bit layout)
	x    uint8  // fine X scroll, 3 bits
	w    bool   // write toggle

	readBuffer uint8 // buffered $2007 read
	openBus    uint8 // PPU I/O bus latch, decays to register semantics on the CPU side

	oam          [256]uint8
	secondaryOAM [32]uint8
	spriteCount  int
	spriteIndex  [8]uint8 // original OAM index of each secondary-OAM entry, for sprite-0 tracking
	sprite0OnLine bool

	vram    [2048]uint8
	palette [32]uint8

	// scrollCaptureV/X snapshot v/x at cycle 0 of each visible scanline so
	// the per-scanline renderer uses the scroll state that was actually
	// current for that line even if a mid-frame PPUSCROLL/PPUADDR write
	// changes t before the line finishes rendering (spec §9 design note).
	scrollCaptureV [240]uint16
	scrollCaptureX [240]uint8

	mapper Mapper

	scanline int
	cycle    int
	frame    uint64
	oddFrame bool

	frameReady func()

	frameBuffer [256 * 240]uint32

	backgroundEnabled bool
	spritesEnabled    bool
}

// New creates a PPU. Call SetMapper before ticking it against a ROM.
func New() *PPU {
	p := &PPU{scanline: preRenderScanline}
	return p
}

// SetMapper wires the cartridge the PPU reads CHR data and mirroring from.
func (p *PPU) SetMapper(m Mapper) { p.mapper = m }

// SetFrameCompleteCallback installs the function invoked once per
// finished frame, when scanline 260 wraps to the pre-render scanline.
func (p *PPU) SetFrameCompleteCallback(f func()) { p.frameReady = f }

// Reset returns the PPU to its power-on state.
func (p *PPU) Reset() {
	p.ctrl, p.mask = 0, 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline = preRenderScanline
	p.cycle = 0
	p.frame = 0
	p.oddFrame = false
	p.spriteCount = 0
	p.sprite0OnLine = false
	p.backgroundEnabled = false
	p.spritesEnabled = false
	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// Frame/state accessors used by the scheduler, test ROM harness and
// graphics front end.
func (p *PPU) FrameBuffer() *[256 * 240]uint32 { return &p.frameBuffer }
func (p *PPU) FrameCount() uint64              { return p.frame }
func (p *PPU) Scanline() int                   { return p.scanline }
func (p *PPU) Cycle() int                      { return p.cycle }
func (p *PPU) RenderingEnabled() bool          { return p.backgroundEnabled || p.spritesEnabled }

// WriteOAM writes OAM directly at an arbitrary index; the scheduler's OAM
// DMA uses this instead of going through OAMADDR/OAMDATA (spec §8).
func (p *PPU) WriteOAM(index uint8, v uint8) { p.oam[index] = v }
