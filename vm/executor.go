package vm

import (
	"fmt"

	"github.com/0xAbby/ByteCraft/isa"
)

// HaltReason explains why Run stopped, for the CLI driver and tests.
type HaltReason int

const (
	// HaltNone means the VM has not halted yet.
	HaltNone HaltReason = iota
	// HaltExit means a SYSCALL EXIT instruction ran.
	HaltExit
	// HaltFault means a fault flag (BAD_INSTR/IP_OOB/READ_OOB/WRITE_OOB)
	// was raised; execution stops on the instruction that raised it.
	HaltFault
	// HaltStepCap means an optional host-level step budget was reached
	// without the program itself halting.
	HaltStepCap
)

func (h HaltReason) String() string {
	switch h {
	case HaltExit:
		return "exit"
	case HaltFault:
		return "fault"
	case HaltStepCap:
		return "step-cap"
	default:
		return "none"
	}
}

// Statistics summarizes a run for the CLI driver and tests.
type Statistics struct {
	Steps      uint64
	HaltReason HaltReason
	ExitCode   uint32
}

// decoded is one fetched-and-decoded instruction, good for exactly one
// Step call.
type decoded struct {
	ipBefore uint32
	op       isa.Opcode
	dstType  isa.OperandType
	srcType  isa.OperandType
	dstRaw   uint32 // register index, immediate value, or memory address
	srcRaw   uint32
}

// fetch reads and decodes the instruction at ip, advancing a local
// cursor but never touching cpu.IP — the caller commits the new IP
// only once the instruction has fully executed.
func (e *Executor) fetch(ip uint32) (decoded, bool) {
	opByte, ok := e.mem.FetchByte(ip)
	if !ok {
		return decoded{}, false
	}
	op := isa.Opcode(opByte)
	d := decoded{ipBefore: ip, op: op}
	cursor := ip + 1

	if op.IsBare() {
		return d, true
	}

	mode, ok := e.mem.FetchByte(cursor)
	if !ok {
		return decoded{}, false
	}
	cursor++
	d.dstType, d.srcType = isa.DecodeMode(mode)
	if d.dstType > isa.Mem || d.srcType > isa.Mem {
		e.cpu.SetFlag(isa.FlagBadInstr)
		e.halt(HaltFault)
		return decoded{}, false
	}

	readOperand := func(t isa.OperandType) (uint32, bool) {
		switch t {
		case isa.None:
			return 0, true
		case isa.Reg:
			b, ok := e.mem.FetchByte(cursor)
			cursor++
			return uint32(b), ok
		case isa.Imm, isa.Mem:
			v, ok := e.mem.Fetch32(cursor)
			cursor += 4
			return v, ok
		default:
			return 0, false
		}
	}

	var ok1, ok2 bool
	d.dstRaw, ok1 = readOperand(d.dstType)
	d.srcRaw, ok2 = readOperand(d.srcType)
	if !ok1 || !ok2 {
		return decoded{}, false
	}
	return d, true
}

// Executor drives the fetch-decode-execute loop over a CPU and
// Memory. It never panics and never returns a Go error for a program
// fault — every fault is folded into rF, per the fault-in-flags model.
type Executor struct {
	cpu    *CPU
	mem    *Memory
	sys    *Syscalls
	trace  *Trace
	halted bool
	reason HaltReason
	steps  uint64
	jumped bool // set by a taken branch during execute, to suppress the fallthrough IP
}

// NewExecutor wires a CPU, Memory, and syscall dispatcher into a
// ready-to-run Executor.
func NewExecutor(cpu *CPU, mem *Memory, sys *Syscalls) *Executor {
	return &Executor{cpu: cpu, mem: mem, sys: sys}
}

// SetTrace attaches a diagnostic trace sink; nil disables tracing.
func (e *Executor) SetTrace(t *Trace) {
	e.trace = t
}

// Halted reports whether the VM has stopped.
func (e *Executor) Halted() bool {
	return e.halted
}

// HaltReason reports why the VM stopped, or HaltNone if still running.
func (e *Executor) HaltReason() HaltReason {
	return e.reason
}

// Statistics reports the instruction count and outcome of the run so
// far.
func (e *Executor) Statistics() Statistics {
	return Statistics{Steps: e.steps, HaltReason: e.reason, ExitCode: e.cpu.Get(isa.R1)}
}

// Step fetches, decodes, and executes a single instruction. It
// returns false once the VM has halted; a fetch whose opcode or
// operand bytes run past the code region raises IP_OOB on rF and
// halts, and an unknown operand-type nibble raises BAD_INSTR and halts.
func (e *Executor) Step() bool {
	if e.halted {
		return false
	}

	ip := e.cpu.IP()
	d, ok := e.fetch(ip)
	if !ok {
		if !e.halted {
			e.cpu.SetFlag(isa.FlagIPOutOfBounds)
			e.halt(HaltFault)
		}
		return false
	}

	nextIP := d.nextIP()
	e.jumped = false
	halted := e.execute(d)
	e.steps++
	e.cpu.IncrementCycles(1)

	if !halted && !e.halted && !e.jumped {
		e.cpu.SetIP(nextIP)
	}

	if e.trace != nil {
		e.trace.Emit(ip, d.op, e.cpu)
	}

	return !e.halted
}

// nextIP computes the fallthrough instruction pointer, i.e. ip + the
// instruction's encoded size. Branches overwrite it explicitly when
// taken.
func (d decoded) nextIP() uint32 {
	size, err := isa.EncodedSize(d.op, d.dstType, d.srcType)
	if err != nil {
		return d.ipBefore + 1
	}
	return d.ipBefore + uint32(size)
}

// execute dispatches one decoded instruction and reports whether it
// halted the VM (EXIT syscall or a newly raised fault flag).
func (e *Executor) execute(d decoded) bool {
	switch d.op {
	case isa.NOP:
		return false

	case isa.MOV:
		v, ok := e.readSrc(d)
		if !ok {
			return true
		}
		return !e.writeDst(d, v)

	case isa.ADD, isa.SUB, isa.XOR:
		dstVal, ok := e.readOperandAsValue(d.dstType, d.dstRaw)
		if !ok {
			return true
		}
		srcVal, ok := e.readSrc(d)
		if !ok {
			return true
		}
		var result uint32
		switch d.op {
		case isa.ADD:
			result = dstVal + srcVal
		case isa.SUB:
			result = dstVal - srcVal
		case isa.XOR:
			result = dstVal ^ srcVal
		}
		return !e.writeDst(d, result)

	case isa.CMP:
		lhs, ok := e.readOperandAsValue(d.dstType, d.dstRaw)
		if !ok {
			return true
		}
		rhs, ok := e.readSrc(d)
		if !ok {
			return true
		}
		e.cpu.SetCompareFlags(lhs, rhs)
		return false

	case isa.JMP, isa.JEQ, isa.JNEQ, isa.JLA, isa.JLE:
		target, ok := e.readSrc(d)
		if !ok {
			return true
		}
		if branchTaken(d.op, e.cpu) {
			e.cpu.SetFlag(isa.FlagTestTrue)
			e.cpu.SetIP(target)
			e.jumped = true
		} else {
			e.cpu.ClearFlag(isa.FlagTestTrue)
		}
		return false

	case isa.SYSCALL:
		return e.sys.Dispatch(e)

	default:
		e.cpu.SetFlag(isa.FlagBadInstr)
		e.halt(HaltFault)
		return true
	}
}

// readSrc reads the source operand's value.
func (e *Executor) readSrc(d decoded) (uint32, bool) {
	return e.readOperandAsValue(d.srcType, d.srcRaw)
}

// readOperandAsValue resolves a decoded operand to its runtime value:
// a register's contents, the immediate itself, or the word stored at
// a memory address.
func (e *Executor) readOperandAsValue(t isa.OperandType, raw uint32) (uint32, bool) {
	switch t {
	case isa.Reg:
		if raw >= isa.RegisterCount {
			e.cpu.SetFlag(isa.FlagBadInstr)
			e.halt(HaltFault)
			return 0, false
		}
		return e.cpu.Get(int(raw)), true
	case isa.Imm:
		return raw, true
	case isa.Mem:
		v, ok := e.mem.Load32(raw)
		if !ok {
			e.cpu.SetFlag(isa.FlagReadOutOfBounds)
			e.halt(HaltFault)
		}
		return v, ok
	default:
		return 0, true
	}
}

// writeDst stores value into the instruction's destination operand
// (register or memory cell) and reports success.
func (e *Executor) writeDst(d decoded, value uint32) bool {
	switch d.dstType {
	case isa.Reg:
		if d.dstRaw >= isa.RegisterCount {
			e.cpu.SetFlag(isa.FlagBadInstr)
			e.halt(HaltFault)
			return false
		}
		e.cpu.Set(int(d.dstRaw), value)
		return true
	case isa.Mem:
		ok := e.mem.Store32(d.dstRaw, value)
		if !ok {
			e.cpu.SetFlag(isa.FlagWriteOutOfBounds)
			e.halt(HaltFault)
		}
		return ok
	default:
		return true
	}
}

func (e *Executor) halt(reason HaltReason) {
	e.halted = true
	e.reason = reason
}

// haltExit is called by the EXIT syscall handler to stop the VM
// without raising a fault flag.
func (e *Executor) haltExit() {
	e.halted = true
	e.reason = HaltExit
}

// DumpState renders a one-line register/flag summary, for debugging
// test failures.
func (e *Executor) DumpState() string {
	c := e.cpu
	return fmt.Sprintf(
		"IP=0x%08X r1=0x%08X r2=0x%08X r3=0x%08X r4=0x%08X r5=0x%08X r6=0x%08X r7=0x%08X r8=0x%08X rS=%d rF=[%s] steps=%d",
		c.Get(isa.IP), c.Get(isa.R1), c.Get(isa.R2), c.Get(isa.R3), c.Get(isa.R4),
		c.Get(isa.R5), c.Get(isa.R6), c.Get(isa.R7), c.Get(isa.R8), c.Get(isa.RS),
		isa.FlagsString(c.Get(isa.RF)), e.steps,
	)
}
