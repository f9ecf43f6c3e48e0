package cartridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// iNES/NES 2.0 header parsing is an external collaborator per spec §1
// ("ROM file parsing ... supplies the mapper with PRG/CHR data, mirroring
// mode, battery-backed RAM size"); it lives in this package because it is
// the natural producer of the Config the mapper factory consumes, the way
// the teacher repo keeps ROM loading and mapper construction together.

type header struct {
	Magic      [4]uint8
	PRGROMSize uint8
	CHRROMSize uint8
	Flags6     uint8
	Flags7     uint8
	Flags8     uint8
	Flags9     uint8
	Flags10    uint8
	Padding    [5]uint8
}

func (h header) isNES20() bool {
	return h.Flags7&0x0C == 0x08
}

// LoadFile reads an iNES or NES 2.0 ROM image from disk and constructs its
// Mapper.
func LoadFile(path string) (Mapper, Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Config{}, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses an iNES/NES 2.0 image from r and constructs its Mapper.
func LoadReader(r io.Reader) (Mapper, Config, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, Config{}, fmt.Errorf("cartridge: reading header: %w", err)
	}
	if string(h.Magic[:]) != "NES\x1A" {
		return nil, Config{}, errors.New("cartridge: not an iNES file (bad magic)")
	}
	if h.PRGROMSize == 0 {
		return nil, Config{}, errors.New("cartridge: PRG ROM size is zero")
	}

	if h.Flags6&0x04 != 0 { // trainer present
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, Config{}, fmt.Errorf("cartridge: reading trainer: %w", err)
		}
	}

	cfg := Config{
		MapperID: (h.Flags6 >> 4) | (h.Flags7 & 0xF0),
		Battery:  h.Flags6&0x02 != 0,
	}
	switch {
	case h.Flags6&0x08 != 0:
		cfg.FourScreen = true
		cfg.Mirror = MirrorHorizontal // placeholder; mapper owns actual layout
	case h.Flags6&0x01 != 0:
		cfg.Mirror = MirrorVertical
	default:
		cfg.Mirror = MirrorHorizontal
	}

	prgSize := int(h.PRGROMSize) * 0x4000
	if h.isNES20() {
		// NES 2.0 extends the PRG size field into the low nibble of
		// Flags9 (the CHR extension in the high nibble is not read);
		// this core only loads ROMs small enough that the extension is
		// never exercised in practice, but honor it so a NES 2.0 header
		// is not misread as iNES 1.0.
		prgSizeHi := int(h.Flags9 & 0x0F)
		prgSize = (prgSizeHi<<8 | int(h.PRGROMSize)) * 0x4000
	}
	cfg.PRG = make([]uint8, prgSize)
	if _, err := io.ReadFull(r, cfg.PRG); err != nil {
		return nil, Config{}, fmt.Errorf("cartridge: reading PRG ROM: %w", err)
	}

	chrSize := int(h.CHRROMSize) * 0x2000
	if chrSize > 0 {
		cfg.CHR = make([]uint8, chrSize)
		if _, err := io.ReadFull(r, cfg.CHR); err != nil {
			return nil, Config{}, fmt.Errorf("cartridge: reading CHR ROM: %w", err)
		}
	}

	if h.isNES20() {
		shift := h.Flags10 & 0x0F
		if shift > 0 {
			cfg.PRGRAMSize = 64 << shift
		}
	}

	m, err := New(cfg)
	if err != nil {
		return nil, Config{}, err
	}
	return m, cfg, nil
}
