package ppu

// Step advances the PPU by one PPU cycle (one pixel dot), following the
// NTSC 341-cycles-per-scanline, 262-scanline (-1..260) timing described
// in spec §4.4: VBlank/NMI at scanline 241 cycle 1, flag clear and
// scroll-Y copy on the pre-render line, the odd-frame skipped dot, and
// background scroll-address updates at their real hardware cycles.
func (p *PPU) Step() {
	if p.scanline >= 0 && p.scanline < visibleScanlines && p.cycle == 0 {
		p.scrollCaptureV[p.scanline] = p.v
		p.scrollCaptureX[p.scanline] = p.x
	}

	p.tickScrollAddress()

	if p.scanline >= 0 && p.scanline < visibleScanlines && p.cycle == 256 {
		p.evaluateSprites(p.scanline)
		p.renderScanline(p.scanline, p.scrollCaptureV[p.scanline], p.scrollCaptureX[p.scanline])
	}

	p.cycle++
	if p.scanline == preRenderScanline && p.cycle == 340 && p.oddFrame && p.RenderingEnabled() {
		p.cycle++
	}

	if p.cycle >= cyclesPerScanline {
		p.cycle = 0
		p.scanline++
		if p.scanline > lastScanline {
			p.scanline = preRenderScanline
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.frameReady != nil {
				p.frameReady()
			}
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status |= 0x80
	}
	if p.scanline == preRenderScanline && p.cycle == 1 {
		p.status &^= 0xE0
	}
}

// tickScrollAddress performs the v/t register updates the real PPU does
// at fixed cycles of every visible and pre-render scanline while
// rendering is enabled.
func (p *PPU) tickScrollAddress() {
	if !p.RenderingEnabled() {
		return
	}
	if p.scanline >= preRenderScanline && p.scanline < visibleScanlines {
		if p.cycle == 256 {
			p.incrementY()
		}
		if p.cycle == 257 {
			p.copyX()
		}
	}
	if p.scanline == preRenderScanline && p.cycle >= 280 && p.cycle <= 304 {
		p.copyY()
	}
}
