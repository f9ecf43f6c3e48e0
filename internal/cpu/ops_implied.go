package cpu

// Implied/register-only operations: two cycles, the opcode fetch plus a
// dummy read of the following byte (spec §4.3).

func opCLC(c *CPU) { c.C = false }
func opSEC(c *CPU) { c.C = true }
func opCLI(c *CPU) { c.I = false }
func opSEI(c *CPU) { c.I = true }
func opCLV(c *CPU) { c.V = false }
func opCLD(c *CPU) { c.D = false }
func opSED(c *CPU) { c.D = true }
func opNOP(c *CPU) {}

func opTAX(c *CPU) { c.X = c.A; c.setZN(c.X) }
func opTXA(c *CPU) { c.A = c.X; c.setZN(c.A) }
func opTAY(c *CPU) { c.Y = c.A; c.setZN(c.Y) }
func opTYA(c *CPU) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *CPU) { c.SP = c.X } // TXS does not affect flags

func opINX(c *CPU) { c.X++; c.setZN(c.X) }
func opDEX(c *CPU) { c.X--; c.setZN(c.X) }
func opINY(c *CPU) { c.Y++; c.setZN(c.Y) }
func opDEY(c *CPU) { c.Y--; c.setZN(c.Y) }

// Branch predicates, per spec §4.3.
func brBCC(c *CPU) bool { return !c.C }
func brBCS(c *CPU) bool { return c.C }
func brBNE(c *CPU) bool { return !c.Z }
func brBEQ(c *CPU) bool { return c.Z }
func brBPL(c *CPU) bool { return !c.N }
func brBMI(c *CPU) bool { return c.N }
func brBVC(c *CPU) bool { return !c.V }
func brBVS(c *CPU) bool { return c.V }
