package ppu

// renderScanline composites one full row of background and sprite
// pixels. Real hardware fetches one tile every 8 dots interleaved with
// sprite fetches; this renders a whole scanline at once from the
// scroll/OAM state captured for it, a documented simplification that
// keeps per-pixel scroll and priority semantics exact while skipping
// dot-by-dot tile-fetch emulation.
func (p *PPU) renderScanline(line int, v uint16, x8 uint8) {
	leftClipBG := p.mask&0x02 == 0
	leftClipSprite := p.mask&0x04 == 0

	for x := 0; x < 256; x++ {
		bgPixel, bgGroup := uint8(0), uint8(0)
		if p.backgroundEnabled && !(leftClipBG && x < 8) {
			bgPixel, bgGroup = p.backgroundPixel(x, v, x8)
		}

		sprPixel, sprGroup, sprFront, isSprite0 := uint8(0), uint8(0), false, false
		if p.spritesEnabled && !(leftClipSprite && x < 8) {
			sprPixel, sprGroup, sprFront, isSprite0 = p.spritePixel(x, line)
		}

		if isSprite0 && bgPixel != 0 && sprPixel != 0 && x != 255 {
			p.status |= 0x40
		}

		var addr uint16
		switch {
		case sprPixel != 0 && (sprFront || bgPixel == 0):
			addr = 0x3F00 + uint16(sprGroup)*4 + uint16(sprPixel)
		case bgPixel != 0:
			addr = 0x3F00 + uint16(bgGroup)*4 + uint16(bgPixel)
		default:
			addr = 0x3F00
		}

		p.frameBuffer[line*256+x] = nesPalette[p.busRead(addr)&0x3F]
	}
}

// backgroundPixel returns the 2-bit pixel value and the attribute group
// (0-3) for screen column x on the scanline currently being composited,
// walking tiles from v/x the way the real PPU's shift registers do, but
// resolved per-pixel instead of per-dot.
func (p *PPU) backgroundPixel(x int, v uint16, fineX uint8) (uint8, uint8) {
	totalX := x + int(fineX)
	tileOffset := totalX / 8
	fineXInTile := uint(totalX % 8)

	coarseX := int(v&0x001F) + tileOffset
	nt := int((v & 0x0C00) >> 10)
	if (coarseX/32)%2 != 0 {
		nt ^= 1
	}
	coarseX %= 32
	coarseY := int((v & 0x03E0) >> 5)
	fineY := (v & 0x7000) >> 12

	ntBase := uint16(0x2000) + uint16(nt)*0x400
	tileAddr := ntBase + uint16(coarseY)*32 + uint16(coarseX)
	tileIndex := p.busRead(tileAddr)

	attrAddr := ntBase + 0x3C0 + uint16(coarseY/4)*8 + uint16(coarseX/4)
	attrByte := p.busRead(attrAddr)
	shift := uint((coarseY%4/2)*4 + (coarseX%4/2)*2)
	group := (attrByte >> shift) & 0x03

	patternBase := uint16(0)
	if p.ctrl&0x10 != 0 {
		patternBase = 0x1000
	}
	patternAddr := patternBase + uint16(tileIndex)*16 + fineY
	lo := p.busRead(patternAddr)
	hi := p.busRead(patternAddr + 8)
	bit := 7 - fineXInTile
	pixel := ((lo >> bit) & 1) | (((hi >> bit) & 1) << 1)
	return pixel, group
}

// spritePixel returns the first (highest-priority, i.e. lowest OAM
// index) opaque sprite pixel covering column x on this scanline, the
// sprite's palette group (offset into the 4-7 sprite palette range),
// whether it draws in front of the background, and whether it came
// from OAM slot 0 (for sprite-0-hit detection).
func (p *PPU) spritePixel(x, line int) (uint8, uint8, bool, bool) {
	height := p.spriteHeight()
	for i := 0; i < p.spriteCount; i++ {
		base := i * 4
		y := int(p.secondaryOAM[base+0])
		tile := p.secondaryOAM[base+1]
		attr := p.secondaryOAM[base+2]
		sx := int(p.secondaryOAM[base+3])

		if x < sx || x >= sx+8 {
			continue
		}
		col := x - sx
		if attr&0x40 != 0 {
			col = 7 - col
		}
		row := line - y
		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			bank := uint16(0)
			if tile&1 != 0 {
				bank = 0x1000
			}
			tileIndex := tile &^ 1
			if row >= 8 {
				tileIndex++
				row -= 8
			}
			patternAddr = bank + uint16(tileIndex)*16 + uint16(row)
		} else {
			bank := uint16(0)
			if p.ctrl&0x08 != 0 {
				bank = 0x1000
			}
			patternAddr = bank + uint16(tile)*16 + uint16(row)
		}

		lo := p.busRead(patternAddr)
		hi := p.busRead(patternAddr + 8)
		bit := uint(7 - col)
		pixel := ((lo >> bit) & 1) | (((hi >> bit) & 1) << 1)
		if pixel == 0 {
			continue
		}
		group := (attr & 0x03) + 4
		front := attr&0x20 == 0
		isSprite0 := p.spriteIndex[i] == 0
		return pixel, group, front, isSprite0
	}
	return 0, 0, false, false
}
