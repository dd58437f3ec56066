package assembler

import (
	"encoding/binary"

	"github.com/0xAbby/ByteCraft/isa"
)

// emit runs the second pass: every instruction's opcode, mode byte
// (when not bare), and operand bytes in destination-then-source
// order, with every operand value resolved now that every label and
// data name is known.
func emit(p *program) ([]byte, error) {
	code := make([]byte, 0, p.codeSize)

	for _, inst := range p.instructions {
		code = append(code, byte(inst.op))
		if inst.op.IsBare() {
			continue
		}
		code = append(code, isa.Mode(inst.dst.typ, inst.src.typ))

		if inst.dst.typ != isa.None {
			b, err := encodeOperand(inst.dst, p.symbols, inst.line)
			if err != nil {
				return nil, err
			}
			code = append(code, b...)
		}
		if inst.src.typ != isa.None {
			b, err := encodeOperand(inst.src, p.symbols, inst.line)
			if err != nil {
				return nil, err
			}
			code = append(code, b...)
		}
	}
	return code, nil
}

// encodeOperand renders a single classified operand to its wire
// bytes: a register index byte, or a little-endian u32 value for an
// immediate or a memory address.
func encodeOperand(o operand, syms *symbolTable, line int) ([]byte, error) {
	switch o.typ {
	case isa.Reg:
		idx, ok := isa.RegisterByName(o.raw)
		if !ok {
			return nil, newError(ErrBadOperandShape, line, "not a register: %q", o.raw)
		}
		return []byte{byte(idx)}, nil

	case isa.Imm:
		v, err := resolve(o.raw, syms, line)
		if err != nil {
			return nil, err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		return b[:], nil

	case isa.Mem:
		v, err := resolve(o.inner, syms, line)
		if err != nil {
			return nil, err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		return b[:], nil

	default:
		return nil, nil
	}
}
