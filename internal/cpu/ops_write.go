package cpu

import "nesgo/internal/bits"

// Write-class operations supply the byte the addressing mode stores; they
// never touch the addressed memory themselves (spec §4.3 draws a hard line
// between Write and RMW classes so the cycle engine knows whether a dummy
// read or a dummy write belongs in the sequence).

func opSTA(c *CPU) uint8 { return c.A }
func opSTX(c *CPU) uint8 { return c.X }
func opSTY(c *CPU) uint8 { return c.Y }

// SAX: undocumented, stores A & X.
func opSAX(c *CPU) uint8 { return c.A & c.X }

// SHX/SHY/AHX/TAS/SHS: the unstable "magic constant" store family. Real
// hardware ANDs the high byte of the target address plus one into the
// stored value, with documented edge-case divergence when indexing crosses
// a page boundary. This core implements the common, non-divergent case and
// does not attempt to reproduce the unstable corner (see spec §4.3 Non-
// goals: exact reproduction of unstable-opcode edge cases is out of scope).
func opSHX(c *CPU) uint8 { return c.X & (bits.Hi(c.addr) + 1) }
func opSHY(c *CPU) uint8 { return c.Y & (bits.Hi(c.addr) + 1) }

// AHX (SHA): stores A & X & (high-byte-of-address + 1).
func opAHX(c *CPU) uint8 { return c.A & c.X & (bits.Hi(c.addr) + 1) }

// TAS (SHS): SP = A & X, then stores SP & (high-byte-of-address + 1).
func opTAS(c *CPU) uint8 {
	c.SP = c.A & c.X
	return c.SP & (bits.Hi(c.addr) + 1)
}
