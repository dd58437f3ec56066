// Package assembler implements ByteCraft's two-pass assembler: it
// lexes a small line-oriented assembly language, resolves code labels
// and data names in one unified symbol table, and emits a
// container.Module ready for the container codec or the VM.
//
// The grammar has two sections, introduced by the exact tokens
// "_main:" and "_data:" on their own lines. Content before any section
// header is a fatal error; an empty program with no "_main:" header is
// legal and assembles to zero-length code.
package assembler

import (
	"os"

	"github.com/0xAbby/ByteCraft/container"
)

// Assemble translates assembly source text into a Module. The entry
// point is always the start of code (offset 0) — pass one never
// computes a different one. Every fatal error is returned as a single
// *Error with a one-based source line number; no partial module is
// produced on failure.
func Assemble(source string) (*container.Module, error) {
	lines := lex(source)

	p, err := parseFirstPass(lines)
	if err != nil {
		return nil, err
	}
	if err := finalizeLayout(p); err != nil {
		return nil, err
	}
	code, err := emit(p)
	if err != nil {
		return nil, err
	}

	return container.NewModule(0, code, p.dataSize), nil
}

// AssembleFile reads path and assembles its contents.
func AssembleFile(path string) (*container.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrIOOpen, Message: "assembler: cannot open " + path + ": " + err.Error()}
	}
	return Assemble(string(data))
}
