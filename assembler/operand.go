package assembler

import (
	"strings"

	"github.com/0xAbby/ByteCraft/isa"
)

// operand is a parsed operand token: its inferred type and, for a
// MEM operand, the inner text (after stripping brackets) that resolve
// is applied to.
type operand struct {
	raw   string
	typ   isa.OperandType
	inner string // meaningful only when typ == isa.Mem
}

// classifyOperand infers an operand's type from its trimmed token,
// evaluating the rules in order: register name, then bracketed memory
// reference, then immediate.
func classifyOperand(tok string) operand {
	if _, ok := isa.RegisterByName(tok); ok {
		return operand{raw: tok, typ: isa.Reg}
	}
	if strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") && len(tok) >= 2 {
		return operand{raw: tok, typ: isa.Mem, inner: strings.TrimSpace(tok[1 : len(tok)-1])}
	}
	return operand{raw: tok, typ: isa.Imm}
}

// resolve turns a token into its u32 value: a numeric literal parses
// directly; otherwise the token must name a code label or a data
// name in the unified symbol table.
func resolve(tok string, syms *symbolTable, line int) (uint32, error) {
	if v, ok := parseNumber(tok); ok {
		return v, nil
	}
	if v, ok := syms.lookup(tok); ok {
		return v, nil
	}
	return 0, newError(ErrUnknownSymbol, line, "unknown symbol %q", tok)
}
