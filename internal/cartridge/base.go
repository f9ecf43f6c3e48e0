package cartridge

// base holds the memory every mapper in this spec shares: PRG ROM, CHR
// ROM/RAM, and the 8KB PRG RAM window at $6000-$7FFF. Each concrete mapper
// embeds it and adds its own bank registers.
type base struct {
	prg []uint8
	chr []uint8

	chrIsRAM bool
	battery  bool
	sram     []uint8

	mirror Mirror

	fourScreen     bool
	fourScreenVRAM []uint8
}

func newBase(cfg Config) base {
	chr := cfg.CHR
	chrIsRAM := len(chr) == 0
	if chrIsRAM {
		chr = make([]uint8, 0x2000)
	}

	b := base{
		prg:      cfg.PRG,
		chr:      chr,
		chrIsRAM: chrIsRAM,
		battery:  cfg.Battery,
		sram:     make([]uint8, cfg.prgRAMSize()),
		mirror:   cfg.Mirror,
	}
	if cfg.FourScreen {
		b.fourScreen = true
		b.mirror = MirrorFourScreen
		b.fourScreenVRAM = make([]uint8, 0x800)
	}
	return b
}

// sramRead/sramWrite service the $6000-$7FFF PRG RAM window common to all
// five mappers (some never bankswitch it; MMC1/MMC3 don't either, in this
// spec's scope).
func (b *base) sramRead(addr uint16) (uint8, bool) {
	off := int(addr - 0x6000)
	if off < 0 || off >= len(b.sram) {
		return 0, false
	}
	return b.sram[off], true
}

func (b *base) sramWrite(addr uint16, val uint8) {
	off := int(addr - 0x6000)
	if off < 0 || off >= len(b.sram) {
		return
	}
	b.sram[off] = val
}

func (b *base) ppuRead(addr uint16) uint8 {
	if int(addr) >= len(b.chr) {
		return 0
	}
	return b.chr[addr]
}

func (b *base) ppuWrite(addr uint16, val uint8) {
	if !b.chrIsRAM || int(addr) >= len(b.chr) {
		return
	}
	b.chr[addr] = val
}

func (b *base) Mirroring() Mirror { return b.mirror }

// ScanlineTick and IRQPending default to no-ops; only MMC3 overrides them.
func (b *base) ScanlineTick()     {}
func (b *base) IRQPending() bool  { return false }

func (b *base) Battery() bool       { return b.battery }
func (b *base) SaveRAM() []uint8    { return b.sram }
func (b *base) LoadRAM(data []uint8) {
	n := copy(b.sram, data)
	for i := n; i < len(b.sram); i++ {
		b.sram[i] = 0
	}
}

func (b *base) FourScreenVRAM() []uint8 { return b.fourScreenVRAM }

// prgBankCount16K reports how many 16KB PRG banks are present.
func (b *base) prgBankCount16K() int {
	return len(b.prg) / 0x4000
}

// chrBankCount8K reports how many 8KB CHR banks are present (at least 1).
func (b *base) chrBankCount8K() int {
	n := len(b.chr) / 0x2000
	if n == 0 {
		return 1
	}
	return n
}

// maskBank masks a requested bank index to the available bank count,
// matching real hardware's address-line truncation (spec §4.8, "Mapper
// bank register writes are silent no-ops when the supplied index exceeds
// the available banks (masking is standard)").
func maskBank(requested, count int) int {
	if count <= 0 {
		return 0
	}
	return requested % count
}
