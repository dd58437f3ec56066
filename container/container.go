// Package container implements the BVM on-disk format: the bit-exact
// serialization of an assembled Module to and from a byte stream.
//
// Layout (little-endian throughout):
//
//	"BVM\0" (4 bytes)
//	entry_point u32
//	code_size   u32
//	data_size   u32
//	code_size bytes of code
//	data_size bytes of data
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Magic is the 4-byte file signature every BVM container starts with.
var Magic = [4]byte{'B', 'V', 'M', 0}

const headerSize = len(Magic) + 4 + 4 + 4

// Module is the exchange unit between the assembler and the container
// codec: an entry point plus the code and data byte runs it addresses.
type Module struct {
	EntryPoint uint32
	Code       []byte
	Data       []byte
}

// NewModule builds a Module with a zero-filled data region of the
// given size, per spec.md's invariant that data starts zeroed.
func NewModule(entryPoint uint32, code []byte, dataSize uint32) *Module {
	return &Module{
		EntryPoint: entryPoint,
		Code:       code,
		Data:       make([]byte, dataSize),
	}
}

// String renders a short human-readable summary of the module, used by
// the CLI's dump command and in test failure messages. It carries no
// wire-format meaning.
func (m *Module) String() string {
	return fmt.Sprintf("BVM{entry=0x%08x code=%d bytes data=%d bytes}",
		m.EntryPoint, len(m.Code), len(m.Data))
}

// Kind categorizes container-level failures.
type Kind int

const (
	KindIOOpen Kind = iota
	KindIOWrite
	KindBadMagic
	KindTruncatedHeader
	KindTruncatedPayload
)

// Error is a container-codec failure. It carries no source line number
// since the container operates on bytes, not assembly text.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Save writes m to w in BVM format. Any short write fails with a
// KindIOWrite error.
func Save(w io.Writer, m *Module) error {
	var buf bytes.Buffer
	buf.Write(Magic[:])
	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:4], m.EntryPoint)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(m.Code)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(m.Data)))
	buf.Write(header[:])
	buf.Write(m.Code)
	buf.Write(m.Data)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return newError(KindIOWrite, "container: write error: %v", err)
	}
	return nil
}

// SaveFile assembles m to a BVM file at path, creating or truncating
// it as needed.
func SaveFile(path string, m *Module) error {
	f, err := os.Create(path)
	if err != nil {
		return newError(KindIOOpen, "container: cannot create %s: %v", path, err)
	}
	defer f.Close()
	return Save(f, m)
}

// Load reads a Module from r, validating in order: the magic prefix,
// a fully-read 12-byte header, and a fully-read payload of exactly
// code_size + data_size bytes. Trailing bytes beyond the declared
// payload are ignored but not required.
func Load(r io.Reader) (*Module, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, newError(KindBadMagic, "container: cannot read magic: %v", err)
	}
	if magic != Magic {
		return nil, newError(KindBadMagic, "container: bad magic %v", magic)
	}

	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, newError(KindTruncatedHeader, "container: truncated header: %v", err)
	}
	entryPoint := binary.LittleEndian.Uint32(header[0:4])
	codeSize := binary.LittleEndian.Uint32(header[4:8])
	dataSize := binary.LittleEndian.Uint32(header[8:12])

	code := make([]byte, codeSize)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, newError(KindTruncatedPayload, "container: truncated code payload: %v", err)
	}
	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, newError(KindTruncatedPayload, "container: truncated data payload: %v", err)
	}

	return &Module{EntryPoint: entryPoint, Code: code, Data: data}, nil
}

// LoadFile loads a Module from the BVM file at path.
func LoadFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindIOOpen, "container: cannot open %s: %v", path, err)
	}
	defer f.Close()
	return Load(f)
}
