package cpu

// Push/pull suppliers reuse the write/read function types: a push
// instruction is "what byte goes on the stack" (a writeFunc) and a pull
// instruction is "what do we do with the byte we popped" (a readFunc).

func opPHA(c *CPU) uint8 { return c.A }
func opPHP(c *CPU) uint8 { return c.status(true) }

func opPLA(c *CPU, v uint8) { c.A = v; c.setZN(c.A) }
func opPLP(c *CPU, v uint8) { c.setStatus(v) }
