package vm

// Memory is the VM's single flat address space: code bytes followed
// immediately by data bytes, with no segmentation. Every accessor is
// bounds-checked and reports success as a bool rather than an error —
// the executor folds a failed access into the rF fault flags instead
// of aborting, per the fault-in-flags error model.
type Memory struct {
	Image []byte
	// CodeSize is the length of the code region at the front of Image.
	// IP, and every byte of an instruction's own encoding, must stay
	// within [0, CodeSize) — that is the only architectural distinction
	// between the code and data regions.
	CodeSize uint32
}

// NewMemory builds the flat image from a module's code and data
// regions, code first.
func NewMemory(code, data []byte) *Memory {
	img := make([]byte, 0, len(code)+len(data))
	img = append(img, code...)
	img = append(img, data...)
	return &Memory{Image: img, CodeSize: uint32(len(code))}
}

// Size returns the total addressable byte count.
func (m *Memory) Size() uint32 {
	return uint32(len(m.Image))
}

// inBounds reports whether [addr, addr+n) lies entirely within the
// image, guarding against the add overflowing uint32 as well.
func (m *Memory) inBounds(addr uint32, n uint32) bool {
	end := addr + n
	return end >= addr && end <= m.Size()
}

// inCodeBounds reports whether [addr, addr+n) lies entirely within the
// code region, guarding against the add overflowing uint32 as well.
func (m *Memory) inCodeBounds(addr uint32, n uint32) bool {
	end := addr + n
	return end >= addr && end <= m.CodeSize
}

// FetchByte reads one instruction byte at addr, failing if any part of
// it falls outside the code region.
func (m *Memory) FetchByte(addr uint32) (byte, bool) {
	if !m.inCodeBounds(addr, 1) {
		return 0, false
	}
	return m.Image[addr], true
}

// Fetch32 reads a little-endian u32 instruction operand at addr,
// failing if any part of it falls outside the code region.
func (m *Memory) Fetch32(addr uint32) (uint32, bool) {
	if !m.inCodeBounds(addr, 4) {
		return 0, false
	}
	v := uint32(m.Image[addr]) |
		uint32(m.Image[addr+1])<<8 |
		uint32(m.Image[addr+2])<<16 |
		uint32(m.Image[addr+3])<<24
	return v, true
}

// LoadByte reads one byte at addr.
func (m *Memory) LoadByte(addr uint32) (byte, bool) {
	if !m.inBounds(addr, 1) {
		return 0, false
	}
	return m.Image[addr], true
}

// StoreByte writes one byte at addr.
func (m *Memory) StoreByte(addr uint32, value byte) bool {
	if !m.inBounds(addr, 1) {
		return false
	}
	m.Image[addr] = value
	return true
}

// Load32 reads a little-endian u32 at addr.
func (m *Memory) Load32(addr uint32) (uint32, bool) {
	if !m.inBounds(addr, 4) {
		return 0, false
	}
	v := uint32(m.Image[addr]) |
		uint32(m.Image[addr+1])<<8 |
		uint32(m.Image[addr+2])<<16 |
		uint32(m.Image[addr+3])<<24
	return v, true
}

// Store32 writes a little-endian u32 at addr.
func (m *Memory) Store32(addr uint32, value uint32) bool {
	if !m.inBounds(addr, 4) {
		return false
	}
	m.Image[addr] = byte(value)
	m.Image[addr+1] = byte(value >> 8)
	m.Image[addr+2] = byte(value >> 16)
	m.Image[addr+3] = byte(value >> 24)
	return true
}

// LoadBytes reads n bytes starting at addr, for syscalls such as
// WRITE that operate on a buffer rather than a single word.
func (m *Memory) LoadBytes(addr uint32, n uint32) ([]byte, bool) {
	if !m.inBounds(addr, n) {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, m.Image[addr:addr+n])
	return out, true
}

// StoreBytes writes data starting at addr, for syscalls such as READ
// that fill a buffer.
func (m *Memory) StoreBytes(addr uint32, data []byte) bool {
	if !m.inBounds(addr, uint32(len(data))) {
		return false
	}
	copy(m.Image[addr:], data)
	return true
}
