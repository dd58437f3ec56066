package vm

import (
	"io"
	"os"

	"github.com/0xAbby/ByteCraft/isa"
)

// Syscalls dispatches the four IDs ByteCraft defines: EXIT, WRITE,
// READ, OPEN. r1 holds the syscall ID on entry and the return value on
// exit, mirroring the teacher's SWI-number-in-R0 convention collapsed
// onto ByteCraft's single general-purpose-register calling convention.
type Syscalls struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// NewSyscalls wires the three standard streams a guest program can
// reach; tests substitute buffers for Stdout/Stdin.
func NewSyscalls(stdout, stderr io.Writer, stdin io.Reader) *Syscalls {
	return &Syscalls{Stdout: stdout, Stderr: stderr, Stdin: stdin}
}

// NewDefaultSyscalls wires the process's real stdio.
func NewDefaultSyscalls() *Syscalls {
	return NewSyscalls(os.Stdout, os.Stderr, os.Stdin)
}

// Dispatch executes the syscall named by r1 and reports whether it
// halted the VM (EXIT, or an unknown ID treated as BAD_INSTR).
func (s *Syscalls) Dispatch(e *Executor) bool {
	id := e.cpu.Get(isa.R1)

	switch id {
	case isa.SyscallExit:
		e.haltExit()
		return true

	case isa.SyscallWrite:
		return s.write(e)

	case isa.SyscallRead:
		return s.read(e)

	case isa.SyscallOpen:
		e.cpu.Set(isa.R1, 0xFFFFFFFF)
		return false

	default:
		e.cpu.SetFlag(isa.FlagBadInstr)
		e.halt(HaltFault)
		return true
	}
}

// write implements WRITE: r2=fd, r3=buf, r4=len. Bytes go to stderr
// when fd==2, otherwise to stdout.
func (s *Syscalls) write(e *Executor) bool {
	fd := e.cpu.Get(isa.R2)
	buf := e.cpu.Get(isa.R3)
	length := e.cpu.Get(isa.R4)

	data, ok := e.mem.LoadBytes(buf, length)
	if !ok {
		e.cpu.SetFlag(isa.FlagReadOutOfBounds)
		e.halt(HaltFault)
		return true
	}

	out := s.Stdout
	if fd == 2 {
		out = s.Stderr
	}
	_, _ = out.Write(data)

	e.cpu.Set(isa.R1, length)
	return false
}

// read implements READ: r2=fd, r3=buf, r4=len. Only fd==0 reads
// anything; other fds return 0 bytes.
func (s *Syscalls) read(e *Executor) bool {
	fd := e.cpu.Get(isa.R2)
	buf := e.cpu.Get(isa.R3)
	length := e.cpu.Get(isa.R4)

	if !e.mem.inBounds(buf, length) {
		e.cpu.SetFlag(isa.FlagWriteOutOfBounds)
		e.halt(HaltFault)
		return true
	}

	if fd != 0 {
		e.cpu.Set(isa.R1, 0)
		return false
	}

	data := make([]byte, length)
	n, err := s.Stdin.Read(data)
	if err != nil && n == 0 {
		e.cpu.Set(isa.R1, 0)
		return false
	}

	e.mem.StoreBytes(buf, data[:n])
	e.cpu.Set(isa.R1, uint32(n))
	return false
}
