package cartridge

// mmc1 implements MMC1 (mapper 1): a 5-bit serial shift register loaded
// over five consecutive writes to any address in $8000-$FFFF, committed
// into one of four internal registers selected by the address of the
// fifth (and final) write. PRG ROM supports 32KB switching or 16KB
// fix-first/fix-last modes; CHR supports 4KB or 8KB switching; mirroring
// is software-selectable among the four modes (spec §4.2).
type mmc1 struct {
	base

	shift   uint8
	shiftN  uint8
	control uint8 // bit0-1 mirroring, bit2-3 PRG mode, bit4 CHR mode
	chr0    uint8 // CHR bank 0 (4KB) or bank pair (8KB mode)
	chr1    uint8 // CHR bank 1 (4KB mode only)
	prgSel  uint8 // PRG bank select
}

func newMMC1(cfg Config) *mmc1 {
	m := &mmc1{base: newBase(cfg)}
	m.control = 0x0C // power-on: PRG mode 3 (fix last bank at $C000)
	return m
}

func (m *mmc1) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x8000:
		off := m.prgOffset(addr)
		if off < 0 || off >= len(m.prg) {
			return 0, false
		}
		return m.prg[off], true
	case addr >= 0x6000:
		return m.sramRead(addr)
	default:
		return 0, false
	}
}

func (m *mmc1) prgMode() uint8 { return (m.control >> 2) & 3 }
func (m *mmc1) chrMode() uint8 { return (m.control >> 4) & 1 }

func (m *mmc1) prgOffset(addr uint16) int {
	bankSel := int(m.prgSel & 0x0F)
	banks16K := m.prgBankCount16K()
	if banks16K == 0 {
		return -1
	}

	switch m.prgMode() {
	case 0, 1: // 32KB mode, ignoring the low bit of the bank select
		pair := maskBank(bankSel>>1, max(banks16K/2, 1))
		return pair*0x8000 + int(addr-0x8000)
	case 2: // fix first bank at $8000, switch $C000
		if addr < 0xC000 {
			return int(addr - 0x8000)
		}
		bank := maskBank(bankSel, banks16K)
		return bank*0x4000 + int(addr-0xC000)
	default: // 3: switch $8000, fix last bank at $C000
		if addr < 0xC000 {
			bank := maskBank(bankSel, banks16K)
			return bank*0x4000 + int(addr-0x8000)
		}
		return (banks16K-1)*0x4000 + int(addr-0xC000)
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.shiftWrite(addr, val)
	case addr >= 0x6000:
		m.sramWrite(addr, val)
	}
}

func (m *mmc1) shiftWrite(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift = 0
		m.shiftN = 0
		m.control |= 0x0C
		return
	}

	m.shift = (m.shift >> 1) | ((val & 1) << 4)
	m.shiftN++
	if m.shiftN < 5 {
		return
	}

	result := m.shift
	m.shift = 0
	m.shiftN = 0

	switch (addr >> 13) & 3 {
	case 0:
		m.control = result
		switch result & 3 {
		case 0:
			m.mirror = MirrorSingle0
		case 1:
			m.mirror = MirrorSingle1
		case 2:
			m.mirror = MirrorVertical
		case 3:
			m.mirror = MirrorHorizontal
		}
	case 1:
		m.chr0 = result
	case 2:
		m.chr1 = result
	case 3:
		m.prgSel = result
	}
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	off := m.chrOffset(addr)
	if off < 0 || off >= len(m.chr) {
		return 0
	}
	return m.chr[off]
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if !m.chrIsRAM {
		return
	}
	off := m.chrOffset(addr)
	if off < 0 || off >= len(m.chr) {
		return
	}
	m.chr[off] = val
}

func (m *mmc1) chrOffset(addr uint16) int {
	banks4K := len(m.chr) / 0x1000
	if banks4K == 0 {
		banks4K = 1
	}
	if m.chrMode() == 0 {
		bank := maskBank(int(m.chr0>>1), max(banks4K/2, 1))
		return bank*0x2000 + int(addr)
	}
	if addr < 0x1000 {
		bank := maskBank(int(m.chr0), banks4K)
		return bank*0x1000 + int(addr)
	}
	bank := maskBank(int(m.chr1), banks4K)
	return bank*0x1000 + int(addr-0x1000)
}
