package ppu

// The loopy v/t registers pack a nametable address as:
//   yyy NN YYYYY XXXXX
//   fine Y | nametable select | coarse Y | coarse X
// copyX/copyY/incrementY/incrementX reproduce the real PPU's per-cycle
// scroll-address updates (spec §4.4).

// copyX copies the horizontal scroll bits (coarse X and nametable-select
// bit 0) from t into v. Happens every visible/pre-render scanline at
// cycle 257.
func (p *PPU) copyX() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

// copyY copies the vertical scroll bits (fine Y, coarse Y, nametable
// bit 1) from t into v. Happens on the pre-render scanline during
// cycles 280-304.
func (p *PPU) copyY() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// incrementY advances v's coarse-Y/fine-Y fields, including the
// nametable-flip wrap at coarse Y 29 and the out-of-range silent wrap at
// coarse Y 31. Happens every rendered scanline at cycle 256.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v & 0x03E0) >> 5
	switch coarseY {
	case 29:
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		coarseY = 0
	default:
		coarseY++
	}
	p.v = (p.v &^ 0x03E0) | (coarseY << 5)
}

// incrementX advances v's coarse-X field, wrapping into the adjacent
// nametable at coarse X 31. Not driven tile-by-tile by the per-scanline
// renderer; kept for completeness and used by anything that wants
// single-tile-accurate scroll stepping.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) coarseX() uint16 { return p.v & 0x001F }
func (p *PPU) coarseY() uint16 { return (p.v & 0x03E0) >> 5 }
func (p *PPU) fineY() uint16   { return (p.v & 0x7000) >> 12 }
func (p *PPU) nametableSelect() uint16 { return (p.v & 0x0C00) >> 10 }
