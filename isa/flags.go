package isa

import "errors"

var errBareOperands = errors.New("isa: bare opcode cannot take operands")

// Flag bit masks within the low byte of rF. Bits above 7 are
// reserved and must be preserved by any operation that edits flags
// selectively.
const (
	FlagEQ = 1 << iota
	FlagGT
	FlagLT
	FlagTestTrue
	FlagBadInstr
	FlagIPOutOfBounds
	FlagReadOutOfBounds
	FlagWriteOutOfBounds
)

var flagNames = []struct {
	bit  uint32
	name string
}{
	{FlagEQ, "EQ"}, {FlagGT, "GT"}, {FlagLT, "LT"},
	{FlagTestTrue, "TEST_TRUE"}, {FlagBadInstr, "BAD_INSTR"},
	{FlagIPOutOfBounds, "IP_OOB"}, {FlagReadOutOfBounds, "READ_OOB"},
	{FlagWriteOutOfBounds, "WRITE_OOB"},
}

// FlagsString renders the set flag bits of rF for diagnostics, e.g.
// "EQ|TEST_TRUE". An empty result means no flag bits are set.
func FlagsString(rf uint32) string {
	s := ""
	for _, f := range flagNames {
		if rf&f.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}

// Syscall IDs, held in r1 on entry and overwritten with the return
// value on exit.
const (
	SyscallExit  = 0
	SyscallWrite = 1
	SyscallRead  = 2
	SyscallOpen  = 3
)
