package cpu

// opcodeTable is built once at package init. Layout mirrors the published
// NMOS 6502 opcode matrix (spec §4.3), including the full complement of
// unofficial opcodes the spec calls out by name. Every one of the 256
// entries is set explicitly below, the twelve KIL/JAM opcodes included
// (as classKIL).

func init() {
	set := func(op uint8, name string, class instrClass, fns ...any) {
		info := opcodeInfo{mnemonic: name, class: class}
		for _, fn := range fns {
			switch f := fn.(type) {
			case readFunc:
				info.read = f
			case writeFunc:
				info.write = f
			case rmwFunc:
				info.rmw = f
			case impliedFunc:
				info.implied = f
			case branchFunc:
				info.branch = f
			}
		}
		opcodeTable[op] = info
	}

	// Implied / register / flag ops.
	set(0x18, "CLC", classImplied, impliedFunc(opCLC))
	set(0x38, "SEC", classImplied, impliedFunc(opSEC))
	set(0x58, "CLI", classImplied, impliedFunc(opCLI))
	set(0x78, "SEI", classImplied, impliedFunc(opSEI))
	set(0xB8, "CLV", classImplied, impliedFunc(opCLV))
	set(0xD8, "CLD", classImplied, impliedFunc(opCLD))
	set(0xF8, "SED", classImplied, impliedFunc(opSED))
	set(0xEA, "NOP", classImplied, impliedFunc(opNOP))
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "*NOP", classImplied, impliedFunc(opNOP))
	}
	set(0xAA, "TAX", classImplied, impliedFunc(opTAX))
	set(0x8A, "TXA", classImplied, impliedFunc(opTXA))
	set(0xA8, "TAY", classImplied, impliedFunc(opTAY))
	set(0x98, "TYA", classImplied, impliedFunc(opTYA))
	set(0xBA, "TSX", classImplied, impliedFunc(opTSX))
	set(0x9A, "TXS", classImplied, impliedFunc(opTXS))
	set(0xE8, "INX", classImplied, impliedFunc(opINX))
	set(0xCA, "DEX", classImplied, impliedFunc(opDEX))
	set(0xC8, "INY", classImplied, impliedFunc(opINY))
	set(0x88, "DEY", classImplied, impliedFunc(opDEY))

	// Immediate-mode NOPs (unofficial), one byte of operand discarded.
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "*NOP", classImm, readFunc(opNOPRead))
	}
	// Zero-page / zero-page,X NOPs (unofficial).
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, "*NOP", classZP, readFunc(opNOPRead))
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "*NOP", classZPX, readFunc(opNOPRead))
	}
	set(0x0C, "*NOP", classAbs, readFunc(opNOPRead))
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "*NOP", classAbsX, readFunc(opNOPRead))
	}

	// Accumulator-form shift/rotate ops reuse the RMW function, applied
	// directly to A after a dummy read of the next byte.
	set(0x0A, "ASL", classAccumulator, rmwFunc(opASL))
	set(0x4A, "LSR", classAccumulator, rmwFunc(opLSR))
	set(0x2A, "ROL", classAccumulator, rmwFunc(opROL))
	set(0x6A, "ROR", classAccumulator, rmwFunc(opROR))

	// Branches.
	set(0x10, "BPL", classBranch, branchFunc(brBPL))
	set(0x30, "BMI", classBranch, branchFunc(brBMI))
	set(0x50, "BVC", classBranch, branchFunc(brBVC))
	set(0x70, "BVS", classBranch, branchFunc(brBVS))
	set(0x90, "BCC", classBranch, branchFunc(brBCC))
	set(0xB0, "BCS", classBranch, branchFunc(brBCS))
	set(0xD0, "BNE", classBranch, branchFunc(brBNE))
	set(0xF0, "BEQ", classBranch, branchFunc(brBEQ))

	// Stack ops.
	set(0x48, "PHA", classPush, writeFunc(opPHA))
	set(0x08, "PHP", classPush, writeFunc(opPHP))
	set(0x68, "PLA", classPull, readFunc(opPLA))
	set(0x28, "PLP", classPull, readFunc(opPLP))

	// Control flow with bespoke cycle engine handling.
	set(0x20, "JSR", classJSR)
	set(0x60, "RTS", classRTS)
	set(0x40, "RTI", classRTI)
	set(0x00, "BRK", classBRK)
	set(0x4C, "JMP", classJMPAbs)
	set(0x6C, "JMP", classJMPInd)

	// KIL/JAM: every opcode byte in this set locks the bus up on real
	// hardware; this core surfaces it via IllegalOpcode rather than
	// emulating the hang (spec §7).
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, "*KIL", classKIL)
	}

	// Read-class ops: (name, read func, imm, zp, zpx/zpy, abs, absx, absy, indx, indy)
	type readOpSpec struct {
		name                                       string
		fn                                         readFunc
		imm, zp, zpi, abs, absx, absy, indx, indy uint8
	}
	readOps := []readOpSpec{
		{"ORA", readFunc(opORA), 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11},
		{"AND", readFunc(opAND), 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31},
		{"EOR", readFunc(opEOR), 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51},
		{"ADC", readFunc(opADC), 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71},
		{"SBC", readFunc(opSBC), 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1},
		{"CMP", readFunc(opCMP), 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1},
		{"LDA", readFunc(opLDA), 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1},
	}
	for _, s := range readOps {
		set(s.imm, s.name, classImm, s.fn)
		set(s.zp, s.name, classZP, s.fn)
		set(s.zpi, s.name, classZPX, s.fn)
		set(s.abs, s.name, classAbs, s.fn)
		set(s.absx, s.name, classAbsX, s.fn)
		set(s.absy, s.name, classAbsY, s.fn)
		set(s.indx, s.name, classIndX, s.fn)
		set(s.indy, s.name, classIndY, s.fn)
	}

	// LDX/LDY: narrower addressing-mode sets, and LDX uses zp,Y/abs,Y.
	set(0xA2, "LDX", classImm, readFunc(opLDX))
	set(0xA6, "LDX", classZP, readFunc(opLDX))
	set(0xB6, "LDX", classZPY, readFunc(opLDX))
	set(0xAE, "LDX", classAbs, readFunc(opLDX))
	set(0xBE, "LDX", classAbsY, readFunc(opLDX))

	set(0xA0, "LDY", classImm, readFunc(opLDY))
	set(0xA4, "LDY", classZP, readFunc(opLDY))
	set(0xB4, "LDY", classZPX, readFunc(opLDY))
	set(0xAC, "LDY", classAbs, readFunc(opLDY))
	set(0xBC, "LDY", classAbsX, readFunc(opLDY))

	set(0xE0, "CPX", classImm, readFunc(opCPX))
	set(0xE4, "CPX", classZP, readFunc(opCPX))
	set(0xEC, "CPX", classAbs, readFunc(opCPX))

	set(0xC0, "CPY", classImm, readFunc(opCPY))
	set(0xC4, "CPY", classZP, readFunc(opCPY))
	set(0xCC, "CPY", classAbs, readFunc(opCPY))

	set(0x24, "BIT", classZP, readFunc(opBIT))
	set(0x2C, "BIT", classAbs, readFunc(opBIT))

	// LAX (unofficial load-both): zp/zp,Y/abs/abs,Y/(ind,X)/(ind),Y.
	set(0xA7, "*LAX", classZP, readFunc(opLAX))
	set(0xB7, "*LAX", classZPY, readFunc(opLAX))
	set(0xAF, "*LAX", classAbs, readFunc(opLAX))
	set(0xBF, "*LAX", classAbsY, readFunc(opLAX))
	set(0xA3, "*LAX", classIndX, readFunc(opLAX))
	set(0xB3, "*LAX", classIndY, readFunc(opLAX))
	set(0xAB, "*LAX", classImm, readFunc(opLAX)) // ATX/LXA: treated as plain LAX immediate

	set(0x0B, "*ANC", classImm, readFunc(opANC))
	set(0x2B, "*ANC", classImm, readFunc(opANC))
	set(0x4B, "*ALR", classImm, readFunc(opALR))
	set(0x6B, "*ARR", classImm, readFunc(opARR))
	set(0xCB, "*AXS", classImm, readFunc(opAXS))
	set(0xBB, "*LAS", classAbsY, readFunc(opLAS))
	set(0x8B, "*XAA", classImm, readFunc(opXAA))
	set(0xEB, "*SBC", classImm, readFunc(opSBC)) // undocumented duplicate of $E9

	// Write-class ops.
	set(0x85, "STA", classZPWrite, writeFunc(opSTA))
	set(0x95, "STA", classZPXWrite, writeFunc(opSTA))
	set(0x8D, "STA", classAbsWrite, writeFunc(opSTA))
	set(0x9D, "STA", classAbsXWrite, writeFunc(opSTA))
	set(0x99, "STA", classAbsYWrite, writeFunc(opSTA))
	set(0x81, "STA", classIndXWrite, writeFunc(opSTA))
	set(0x91, "STA", classIndYWrite, writeFunc(opSTA))

	set(0x86, "STX", classZPWrite, writeFunc(opSTX))
	set(0x96, "STX", classZPYWrite, writeFunc(opSTX))
	set(0x8E, "STX", classAbsWrite, writeFunc(opSTX))

	set(0x84, "STY", classZPWrite, writeFunc(opSTY))
	set(0x94, "STY", classZPXWrite, writeFunc(opSTY))
	set(0x8C, "STY", classAbsWrite, writeFunc(opSTY))

	set(0x87, "*SAX", classZPWrite, writeFunc(opSAX))
	set(0x97, "*SAX", classZPYWrite, writeFunc(opSAX))
	set(0x8F, "*SAX", classAbsWrite, writeFunc(opSAX))
	set(0x83, "*SAX", classIndXWrite, writeFunc(opSAX))

	set(0x9C, "*SHY", classAbsXWrite, writeFunc(opSHY))
	set(0x9E, "*SHX", classAbsYWrite, writeFunc(opSHX))
	set(0x93, "*AHX", classIndYWrite, writeFunc(opAHX))
	set(0x9F, "*AHX", classAbsYWrite, writeFunc(opAHX))
	set(0x9B, "*TAS", classAbsYWrite, writeFunc(opTAS))

	// RMW-class ops.
	type rmwOpSpec struct {
		name                            string
		fn                              rmwFunc
		zp, zpx, abs, absx, absy, indx, indy uint8
	}
	rmwOps := []rmwOpSpec{
		{"ASL", rmwFunc(opASL), 0x06, 0x16, 0x0E, 0x1E, 0, 0, 0},
		{"LSR", rmwFunc(opLSR), 0x46, 0x56, 0x4E, 0x5E, 0, 0, 0},
		{"ROL", rmwFunc(opROL), 0x26, 0x36, 0x2E, 0x3E, 0, 0, 0},
		{"ROR", rmwFunc(opROR), 0x66, 0x76, 0x6E, 0x7E, 0, 0, 0},
		{"INC", rmwFunc(opINC), 0xE6, 0xF6, 0xEE, 0xFE, 0, 0, 0},
		{"DEC", rmwFunc(opDEC), 0xC6, 0xD6, 0xCE, 0xDE, 0, 0, 0},
		{"*SLO", rmwFunc(opSLO), 0x07, 0x17, 0x0F, 0x1F, 0x1B, 0x03, 0x13},
		{"*RLA", rmwFunc(opRLA), 0x27, 0x37, 0x2F, 0x3F, 0x3B, 0x23, 0x33},
		{"*SRE", rmwFunc(opSRE), 0x47, 0x57, 0x4F, 0x5F, 0x5B, 0x43, 0x53},
		{"*RRA", rmwFunc(opRRA), 0x67, 0x77, 0x6F, 0x7F, 0x7B, 0x63, 0x73},
		{"*DCP", rmwFunc(opDCP), 0xC7, 0xD7, 0xCF, 0xDF, 0xDB, 0xC3, 0xD3},
		{"*ISC", rmwFunc(opISC), 0xE7, 0xF7, 0xEF, 0xFF, 0xFB, 0xE3, 0xF3},
	}
	for _, s := range rmwOps {
		set(s.zp, s.name, classZPRMW, s.fn)
		set(s.zpx, s.name, classZPXRMW, s.fn)
		set(s.abs, s.name, classAbsRMW, s.fn)
		set(s.absx, s.name, classAbsXRMW, s.fn)
		if s.absy != 0 {
			set(s.absy, s.name, classAbsYRMW, s.fn)
		}
		if s.indx != 0 {
			set(s.indx, s.name, classIndXRMW, s.fn)
		}
		if s.indy != 0 {
			set(s.indy, s.name, classIndYRMW, s.fn)
		}
	}
}
