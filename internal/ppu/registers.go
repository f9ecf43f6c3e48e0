package ppu

// ReadRegister services a CPU read of $2000-$2007. Write-only registers
// return the PPU's open-bus latch; PPUSTATUS/OAMDATA/PPUDATA return real
// values and update latch/CPU-visible side effects, per spec §4.4.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 7 {
	case 2: // PPUSTATUS
		v := (p.status & 0xE0) | (p.openBus & 0x1F)
		p.status &^= 0x80 // clear VBlank flag
		p.w = false
		p.openBus = v
		return v
	case 4: // OAMDATA
		v := p.oam[p.oamAddr]
		p.openBus = v
		return v
	case 7: // PPUDATA
		v := p.readData()
		p.openBus = v
		return v
	default:
		return p.openBus
	}
}

// WriteRegister services a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, v uint8) {
	p.openBus = v
	switch addr & 7 {
	case 0: // PPUCTRL
		p.ctrl = v
		p.t = (p.t &^ 0x0C00) | (uint16(v)&0x03)<<10
	case 1: // PPUMASK
		p.mask = v
		p.backgroundEnabled = v&0x08 != 0
		p.spritesEnabled = v&0x10 != 0
	case 2: // PPUSTATUS is read-only
	case 3: // OAMADDR
		p.oamAddr = v
	case 4: // OAMDATA
		p.oam[p.oamAddr] = v
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(v>>3)
			p.x = v & 0x07
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(v&0x07)<<12) | (uint16(v&0xF8)<<2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(v&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(v)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writeData(v)
	}
}

// NMILine reports the PPU's NMI output: nmi_occurred (VBlank flag) AND
// nmi_enabled (PPUCTRL bit 7), per spec §3. It is level-valued; the
// scheduler is responsible for edge-detecting it at instruction
// boundaries (spec §4.8, §9 design note).
func (p *PPU) NMILine() bool {
	return p.status&0x80 != 0 && p.ctrl&0x80 != 0
}

// VBlankFlag reports the raw nmi_occurred bit (PPUSTATUS bit 7), independent
// of whether NMI generation is currently enabled in PPUCTRL.
func (p *PPU) VBlankFlag() bool { return p.status&0x80 != 0 }

// NMIEnabled reports PPUCTRL bit 7 (nmi_enabled) on its own.
func (p *PPU) NMIEnabled() bool { return p.ctrl&0x80 != 0 }

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() uint8 {
	addr := p.v & 0x3FFF
	var v uint8
	if addr >= 0x3F00 {
		v = p.busRead(addr)
		p.readBuffer = p.busRead(addr & 0x2FFF)
	} else {
		v = p.readBuffer
		p.readBuffer = p.busRead(addr)
	}
	p.v = (p.v + p.vramIncrement()) & 0x7FFF
	return v
}

func (p *PPU) writeData(v uint8) {
	p.busWrite(p.v&0x3FFF, v)
	p.v = (p.v + p.vramIncrement()) & 0x7FFF
}
