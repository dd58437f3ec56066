package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/0xAbby/ByteCraft/isa"
)

// Trace emits one diagnostic line per executed instruction — a human-
// oriented log, not part of the wire format or the VM's decisions.
// The format is stable but deliberately undocumented as a contract:
// sequence number, the instruction's IP and opcode, and a register/flag
// snapshot taken after the instruction's effects have landed.
type Trace struct {
	Writer io.Writer
	seq    uint64
}

// NewTrace wraps an io.Writer as a trace sink.
func NewTrace(w io.Writer) *Trace {
	return &Trace{Writer: w}
}

// OpenTraceFile opens (creating if absent) a file to receive trace
// lines, for config.Trace.OutputFile.
func OpenTraceFile(path string) (*os.File, error) {
	return os.Create(path)
}

// Emit writes one trace line for an instruction that has already run.
// Per spec.md's ordering rule the line is recorded after the
// instruction's effects, so cpu reflects post-execution state — a
// CMP's resulting flags and a MOV's new register value are both
// visible in the snapshot.
func (t *Trace) Emit(ipBefore uint32, op isa.Opcode, cpu *CPU) {
	t.seq++
	fmt.Fprintf(t.Writer, "[%06d] ip=0x%08X %-7s r1=0x%08X r2=0x%08X r3=0x%08X r4=0x%08X r5=0x%08X r6=0x%08X r7=0x%08X r8=0x%08X rS=%d rF=[%s]\n",
		t.seq, ipBefore, op,
		cpu.Get(isa.R1), cpu.Get(isa.R2), cpu.Get(isa.R3), cpu.Get(isa.R4),
		cpu.Get(isa.R5), cpu.Get(isa.R6), cpu.Get(isa.R7), cpu.Get(isa.R8),
		cpu.Get(isa.RS), isa.FlagsString(cpu.Get(isa.RF)),
	)
}
