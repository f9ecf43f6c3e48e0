package ppu

import "nesgo/internal/cartridge"

// busRead/busWrite implement the PPU's own 14-bit address space: pattern
// tables through the mapper, nametables in internal VRAM with cartridge
// mirroring applied, and palette RAM with its background-mirror quirk
// (spec §4.4).
func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.mapper != nil {
			return p.mapper.PPURead(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.nametableRead(addr)
	default:
		return p.palette[p.mirrorPalette(addr)]
	}
}

func (p *PPU) busWrite(addr uint16, v uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.mapper != nil {
			p.mapper.PPUWrite(addr, v)
		}
	case addr < 0x3F00:
		p.nametableWrite(addr, v)
	default:
		p.palette[p.mirrorPalette(addr)] = v
	}
}

// nametableRead/nametableWrite route a $2000-$3EFF address to the two
// nametables the cartridge supplies for four-screen boards, falling back to
// mirrorNametable's single-2KB mapping otherwise.
func (p *PPU) nametableRead(addr uint16) uint8 {
	if bank, offset, ok := p.fourScreenTable(addr); ok {
		return bank[offset]
	}
	return p.vram[p.mirrorNametable(addr)]
}

func (p *PPU) nametableWrite(addr uint16, v uint8) {
	if bank, offset, ok := p.fourScreenTable(addr); ok {
		bank[offset] = v
		return
	}
	p.vram[p.mirrorNametable(addr)] = v
}

// fourScreenTable resolves addr to the underlying array and offset for a
// four-screen mirroring board (spec §3, "the cartridge may supply a
// further 2 KB for four-screen mirroring"): nametables 0-1 live in the
// PPU's own 2KB, nametables 2-3 in the cartridge's. It reports ok=false
// when the mirroring mode isn't four-screen, or the mapper doesn't
// implement cartridge.FourScreenVRAM, so the caller falls back to
// mirrorNametable's single-screen-0 behavior (SPEC_FULL.md §4).
func (p *PPU) fourScreenTable(addr uint16) (bank []uint8, offset uint16, ok bool) {
	if p.mapper == nil || p.mapper.Mirroring() != cartridge.MirrorFourScreen {
		return nil, 0, false
	}
	fs, implements := p.mapper.(cartridge.FourScreenVRAM)
	if !implements {
		return nil, 0, false
	}
	extra := fs.FourScreenVRAM()
	if len(extra) == 0 {
		return nil, 0, false
	}
	a := (addr - 0x2000) & 0x0FFF
	table := a / 0x400
	off := a % 0x400
	if table < 2 {
		return p.vram[:], table*0x400 + off, true
	}
	return extra, (table-2)*0x400 + off, true
}

// mirrorNametable maps a $2000-$2FFF address into the 2KB VRAM array
// according to the cartridge's mirroring mode.
func (p *PPU) mirrorNametable(addr uint16) uint16 {
	addr = (addr - 0x2000) & 0x0FFF
	table := addr / 0x400
	offset := addr % 0x400

	mode := cartridge.MirrorHorizontal
	if p.mapper != nil {
		mode = p.mapper.Mirroring()
	}

	var bank uint16
	switch mode {
	case cartridge.MirrorHorizontal:
		bank = table / 2
	case cartridge.MirrorVertical:
		bank = table % 2
	case cartridge.MirrorSingle0:
		bank = 0
	case cartridge.MirrorSingle1:
		bank = 1
	case cartridge.MirrorFourScreen:
		bank = 0 // no mapper-supplied extra VRAM: fall back to single-screen-0
	default:
		bank = table / 2
	}
	return bank*0x400 + offset
}

// mirrorPalette applies the $3F10/$3F14/$3F18/$3F1C mirror-to-background
// quirk: those four sprite-palette backdrop slots alias the background
// backdrop entries.
func (p *PPU) mirrorPalette(addr uint16) uint16 {
	idx := (addr - 0x3F00) % 32
	if idx >= 16 && idx%4 == 0 {
		idx -= 16
	}
	return idx
}
