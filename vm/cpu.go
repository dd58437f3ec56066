package vm

import "github.com/0xAbby/ByteCraft/isa"

// CPU holds the eleven architectural registers: r1..r8, IP, rF, rS.
// All registers are 32-bit unsigned; rS is architecturally a full
// register even though only its low bit is meaningful, so it is never
// modeled as a bare boolean.
type CPU struct {
	R [isa.RegisterCount]uint32

	// Cycles counts executed instructions.
	Cycles uint64
}

// NewCPU returns a CPU with every register zeroed.
func NewCPU() *CPU {
	return &CPU{}
}

// Reset zeroes every register and the cycle counter.
func (c *CPU) Reset() {
	for i := range c.R {
		c.R[i] = 0
	}
	c.Cycles = 0
}

// Get returns the value of register idx.
func (c *CPU) Get(idx int) uint32 {
	return c.R[idx]
}

// Set writes value to register idx, masking to a single bit when idx
// is rS.
func (c *CPU) Set(idx int, value uint32) {
	if idx == isa.RS {
		c.R[idx] = value & 1
		return
	}
	c.R[idx] = value
}

// IP returns the instruction pointer.
func (c *CPU) IP() uint32 {
	return c.R[isa.IP]
}

// SetIP sets the instruction pointer.
func (c *CPU) SetIP(value uint32) {
	c.R[isa.IP] = value
}

// SetFlag sets the given bit(s) of rF, leaving every other bit
// untouched.
func (c *CPU) SetFlag(bit uint32) {
	c.R[isa.RF] |= bit
}

// ClearFlag clears the given bit(s) of rF, leaving every other bit
// untouched.
func (c *CPU) ClearFlag(bit uint32) {
	c.R[isa.RF] &^= bit
}

// TestFlag reports whether every bit in mask is currently set in rF.
func (c *CPU) TestFlag(mask uint32) bool {
	return c.R[isa.RF]&mask == mask
}

// SignMode reports whether signed comparison is in effect (rS & 1).
func (c *CPU) SignMode() bool {
	return c.R[isa.RS]&1 != 0
}

// SetCompareFlags clears EQ/GT/LT and sets exactly one of them
// according to lhs vs rhs, interpreted as signed or unsigned 32-bit
// values depending on the current sign mode.
func (c *CPU) SetCompareFlags(lhs, rhs uint32) {
	c.ClearFlag(isa.FlagEQ | isa.FlagGT | isa.FlagLT)

	var less, greater bool
	if c.SignMode() {
		sl, sr := int32(lhs), int32(rhs)
		less, greater = sl < sr, sl > sr
	} else {
		less, greater = lhs < rhs, lhs > rhs
	}

	switch {
	case lhs == rhs:
		c.SetFlag(isa.FlagEQ)
	case less:
		c.SetFlag(isa.FlagLT)
	case greater:
		c.SetFlag(isa.FlagGT)
	}
}

// IncrementCycles increments the executed-instruction counter.
func (c *CPU) IncrementCycles(n uint64) {
	c.Cycles += n
}
