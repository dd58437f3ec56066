package assembler

import (
	"strings"

	"github.com/0xAbby/ByteCraft/isa"
)

type section int

const (
	sectionNone section = iota
	sectionMain
	sectionData
)

// instrLine is a fully classified instruction, captured during pass
// one and walked again during pass two for emission. Holding the
// already-classified operands avoids re-lexing the source text a
// second time; the externally observable two-pass behavior (sizes
// computed before any symbol is resolved, values resolved only once
// every symbol is known) is unchanged.
type instrLine struct {
	line     int
	op       isa.Opcode
	dst, src operand
	size     int
}

// dataDecl is a single `DB name[size]` declaration captured in order
// during pass one, resolved to an absolute address during layout
// finalization.
type dataDecl struct {
	line int
	name string
	size uint32
}

// program is the result of pass one: sized instructions, ordered data
// declarations, and the unified symbol table (labels bound already;
// data names bound during layout finalization).
type program struct {
	instructions []instrLine
	data         []dataDecl
	codeSize     uint32
	dataSize     uint32
	symbols      *symbolTable
}

// parseFirstPass walks the preprocessed lines once, tracking section,
// code program counter, label/data-name capture, and per-instruction
// shape validation — everything needed to compute sizes without
// resolving any symbol value yet.
func parseFirstPass(lines []rawLine) (*program, error) {
	p := &program{symbols: newSymbolTable()}
	sec := sectionNone
	var codePC uint32

	for _, rl := range lines {
		switch rl.Text {
		case "_main:":
			sec = sectionMain
			continue
		case "_data:":
			sec = sectionData
			continue
		}

		switch sec {
		case sectionNone:
			return nil, newError(ErrBadSection, rl.Line, "content before any section header: %q", rl.Text)

		case sectionMain:
			if strings.HasSuffix(rl.Text, ":") {
				name := strings.TrimSuffix(rl.Text, ":")
				if name == "" {
					return nil, newError(ErrEmptyLabel, rl.Line, "empty label")
				}
				if err := p.symbols.defineLabel(name, codePC, rl.Line); err != nil {
					return nil, err
				}
				continue
			}
			inst, err := classifyInstruction(rl)
			if err != nil {
				return nil, err
			}
			inst.line = rl.Line
			p.instructions = append(p.instructions, inst)
			codePC += uint32(inst.size)

		case sectionData:
			decl, err := parseDataDecl(rl)
			if err != nil {
				return nil, err
			}
			p.data = append(p.data, decl)
		}
	}

	p.codeSize = codePC
	return p, nil
}

// finalizeLayout resolves every data name to an absolute address in
// declaration order and computes the total data size, per spec.md's
// layout-finalization rule: address = code_size + running_offset.
func finalizeLayout(p *program) error {
	var running uint32
	for _, d := range p.data {
		if err := p.symbols.defineData(d.name, p.codeSize+running, d.line); err != nil {
			return err
		}
		running += d.size
	}
	p.dataSize = running
	return nil
}

// classifyInstruction parses one main-section instruction line into
// its opcode, operand tokens, validated shape, and encoded size.
func classifyInstruction(rl rawLine) (instrLine, error) {
	mnemonic, rawOperands := splitFields(rl.Text)
	op, ok := isa.OpcodeByName(mnemonic)
	if !ok {
		return instrLine{}, newError(ErrUnknownOpcode, rl.Line, "unknown opcode %q", mnemonic)
	}

	var operands []operand
	for _, tok := range rawOperands {
		operands = append(operands, classifyOperand(tok))
	}

	dst, src, err := validateShape(op, operands, rl.Line)
	if err != nil {
		return instrLine{}, err
	}

	size, err := isa.EncodedSize(op, dst.typ, src.typ)
	if err != nil {
		return instrLine{}, newError(ErrBadOperandShape, rl.Line, "%v", err)
	}

	return instrLine{op: op, dst: dst, src: src, size: size}, nil
}

// validateShape enforces the per-opcode operand-count and operand-
// shape rules from spec.md §4.3/§4.4, returning the normalized
// destination and source operands (type isa.None when the opcode has
// no such slot).
func validateShape(op isa.Opcode, operands []operand, line int) (dst, src operand, err error) {
	none := operand{typ: isa.None}

	switch {
	case op == isa.NOP || op == isa.SYSCALL:
		if len(operands) != 0 {
			return none, none, newError(ErrBadOperandCount, line, "%s takes no operands", op)
		}
		return none, none, nil

	case op.IsBranch():
		if len(operands) != 1 {
			return none, none, newError(ErrBadOperandCount, line, "%s takes exactly one operand", op)
		}
		if operands[0].typ == isa.Mem {
			return none, none, newError(ErrBadOperandShape, line, "%s: memory operand is not a valid branch target", op)
		}
		return none, operands[0], nil

	case op == isa.CMP:
		if len(operands) != 2 {
			return none, none, newError(ErrBadOperandCount, line, "cmp takes exactly two operands")
		}
		if operands[0].typ != isa.Reg {
			return none, none, newError(ErrBadOperandShape, line, "cmp: first operand must be a register")
		}
		return operands[0], operands[1], nil

	case op == isa.MOV:
		if len(operands) != 2 {
			return none, none, newError(ErrBadOperandCount, line, "mov takes exactly two operands")
		}
		if operands[0].typ != isa.Reg && operands[0].typ != isa.Mem {
			return none, none, newError(ErrBadOperandShape, line, "mov: destination must be a register or memory reference")
		}
		if operands[0].typ == isa.Mem && operands[1].typ == isa.Mem {
			return none, none, newError(ErrBadOperandShape, line, "mov: memory-to-memory is not allowed")
		}
		return operands[0], operands[1], nil

	case op == isa.ADD || op == isa.SUB || op == isa.XOR:
		if len(operands) != 2 {
			return none, none, newError(ErrBadOperandCount, line, "%s takes exactly two operands", op)
		}
		if operands[0].typ != isa.Reg {
			return none, none, newError(ErrBadOperandShape, line, "%s: destination must be a register", op)
		}
		return operands[0], operands[1], nil

	default:
		return none, none, newError(ErrUnknownOpcode, line, "unhandled opcode %s", op)
	}
}

// parseDataDecl parses a `DB name[size]` declaration.
func parseDataDecl(rl rawLine) (dataDecl, error) {
	fields := strings.Fields(rl.Text)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "DB") {
		return dataDecl{}, newError(ErrMalformedDB, rl.Line, "malformed data declaration: %q", rl.Text)
	}
	rest := fields[1]
	open := strings.IndexByte(rest, '[')
	end := strings.IndexByte(rest, ']')
	if open <= 0 || end != len(rest)-1 || end < open {
		return dataDecl{}, newError(ErrMalformedDB, rl.Line, "malformed data declaration: %q", rl.Text)
	}
	name := rest[:open]
	sizeTok := rest[open+1 : end]
	size, ok := parseNumber(sizeTok)
	if !ok {
		return dataDecl{}, newError(ErrBadNumber, rl.Line, "bad size in data declaration: %q", sizeTok)
	}
	return dataDecl{line: rl.Line, name: name, size: size}, nil
}
