package vm

import "github.com/0xAbby/ByteCraft/isa"

// branchTaken evaluates a conditional branch opcode against the
// current rF flags, mirroring the style of a condition-code dispatch:
// one case per mnemonic, each reading the flag bits it cares about.
func branchTaken(op isa.Opcode, c *CPU) bool {
	switch op {
	case isa.JMP:
		return true
	case isa.JEQ:
		return c.TestFlag(isa.FlagEQ)
	case isa.JNEQ:
		return !c.TestFlag(isa.FlagEQ)
	case isa.JLA:
		return c.TestFlag(isa.FlagGT)
	case isa.JLE:
		return c.TestFlag(isa.FlagLT) || c.TestFlag(isa.FlagEQ)
	default:
		return false
	}
}
