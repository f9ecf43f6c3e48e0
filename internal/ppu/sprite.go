package ppu

// evaluateSprites reproduces the real PPU's sprite evaluation for the
// scanline about to be rendered (it runs during cycles 65-256 of the
// previous scanline on real hardware; here it runs as one pass so the
// per-scanline renderer has secondaryOAM ready). It also reproduces the
// hardware's sprite-overflow bug: once 8 sprites have been copied, the
// evaluation keeps scanning OAM with a single linear counter (n*4+m)
// but only advances the sprite index n when the in-sprite byte index m
// wraps from 3 back to 0, so after the first false read it drifts into
// testing a sprite's tile/attribute/X bytes as if they were Y, and can both
// miss a real overflow and falsely flag one (spec §4.4 sprite overflow).
func (p *PPU) evaluateSprites(line int) {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteCount = 0
	p.sprite0OnLine = false
	height := p.spriteHeight()

	n := 0
	for n < 64 && p.spriteCount < 8 {
		y := int(p.oam[n*4])
		if line >= y && line < y+height {
			base := p.spriteCount * 4
			p.secondaryOAM[base+0] = p.oam[n*4+0]
			p.secondaryOAM[base+1] = p.oam[n*4+1]
			p.secondaryOAM[base+2] = p.oam[n*4+2]
			p.secondaryOAM[base+3] = p.oam[n*4+3]
			p.spriteIndex[p.spriteCount] = uint8(n)
			if n == 0 {
				p.sprite0OnLine = true
			}
			p.spriteCount++
		}
		n++
	}

	// Overflow-check phase: the buggy scan. m starts at 0 and increments
	// on every failed comparison instead of staying on the Y byte; n
	// advances only when m wraps from 3 to 0, so after the first false
	// read it tests tile/attribute/X bytes as if they were Y.
	m := 0
	for n < 64 {
		y := int(p.oam[n*4+m])
		if line >= y && line < y+height {
			p.status |= 0x20
			break
		}
		m++
		if m == 4 {
			m = 0
			n++
		}
	}
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}
