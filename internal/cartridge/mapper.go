// Package cartridge implements the cartridge "mapper" abstraction: the
// CPU- and PPU-side memory a NES game cartridge presents, its nametable
// mirroring mode, and the scanline/IRQ hooks the handful of mappers whose
// banking participates in timing need (spec §4.2).
package cartridge

import "fmt"

// Mirror is a nametable mirroring mode.
type Mirror uint8

const (
	MirrorHorizontal Mirror = iota
	MirrorVertical
	MirrorSingle0
	MirrorSingle1
	MirrorFourScreen
)

func (m Mirror) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingle0:
		return "single-screen-0"
	case MirrorSingle1:
		return "single-screen-1"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// Mapper is the cartridge contract a mapper implementation satisfies. It is
// the only interface the rest of the core depends on; nothing outside this
// package knows which of NROM/CNROM/UxROM/MMC1/MMC3 it is talking to.
type Mapper interface {
	// CPURead returns the byte at addr (within $4020-$FFFF) and whether the
	// cartridge drives that address at all. ok=false means the address is
	// not backed by PRG RAM/ROM on this board and the caller should fall
	// back to open bus.
	CPURead(addr uint16) (val uint8, ok bool)

	// CPUWrite writes addr (within $4020-$FFFF); on bankswitched mappers
	// this may reconfigure PRG/CHR banking, mirroring, or IRQ state rather
	// than storing to memory.
	CPUWrite(addr uint16, val uint8)

	// PPURead returns the pattern-table byte at addr ($0000-$1FFF).
	PPURead(addr uint16) uint8

	// PPUWrite stores to CHR RAM at addr ($0000-$1FFF); a no-op when CHR is
	// ROM.
	PPUWrite(addr uint16, val uint8)

	// Mirroring reports the cartridge's current nametable mirroring mode.
	Mirroring() Mirror

	// ScanlineTick is called once per visible/pre-render scanline at PPU
	// cycle 260 when rendering is enabled, letting MMC3 clock its IRQ
	// counter. Mappers with no scanline IRQ treat this as a no-op.
	ScanlineTick()

	// IRQPending reports whether the mapper is currently asserting IRQ.
	IRQPending() bool
}

// FourScreenVRAM is implemented by a Mapper that supplies its own extra 2KB
// of nametable VRAM for four-screen mirroring boards (spec §3, "the
// cartridge may supply a further 2 KB for four-screen mirroring"). The PPU
// type-asserts for this when its mirroring mode is MirrorFourScreen and
// falls back to single-screen-0 behavior when the mapper doesn't implement
// it (see SPEC_FULL.md §4).
type FourScreenVRAM interface {
	FourScreenVRAM() []uint8
}

// SRAM is implemented by mappers that own battery-backed PRG RAM, so the
// host can persist/restore save files (spec §6, "Save RAM is owned by the
// mapper").
type SRAM interface {
	Battery() bool
	SaveRAM() []uint8
	LoadRAM(data []uint8)
}

// Config is what a ROM loader (an external collaborator, out of the core's
// scope per spec §1) hands to the mapper factory: the parsed contents of a
// cartridge, independent of any file format.
type Config struct {
	MapperID   uint8
	PRG        []uint8 // PRG ROM, exact multiple of 16KB
	CHR        []uint8 // CHR ROM; empty means CHR RAM (8KB allocated)
	Mirror     Mirror
	Battery    bool
	PRGRAMSize int // size of battery/work RAM at $6000-$7FFF; 0 defaults to 8KB
	FourScreen bool
}

// prgRAMSize returns cfg's requested PRG RAM size, defaulting to the
// standard 8KB window every mapper in this spec exposes at $6000-$7FFF.
func (cfg Config) prgRAMSize() int {
	if cfg.PRGRAMSize <= 0 {
		return 0x2000
	}
	return cfg.PRGRAMSize
}

// New builds the Mapper named by cfg.MapperID. Only the five mapper
// families spec §4.2 names are implemented; an unsupported mapper number
// is reported via the returned error rather than silently degrading to
// NROM, since a game depending on real banking would otherwise run with
// corrupted graphics or code.
func New(cfg Config) (Mapper, error) {
	switch cfg.MapperID {
	case 0:
		return newNROM(cfg), nil
	case 1:
		return newMMC1(cfg), nil
	case 2:
		return newUxROM(cfg), nil
	case 3:
		return newCNROM(cfg), nil
	case 4:
		return newMMC3(cfg), nil
	default:
		return nil, &UnsupportedMapperError{MapperID: cfg.MapperID}
	}
}

// UnsupportedMapperError reports a mapper number this core does not
// implement.
type UnsupportedMapperError struct {
	MapperID uint8
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper %d", e.MapperID)
}
