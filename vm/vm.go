// Package vm implements ByteCraft's virtual machine: a flat memory
// image, an eleven-register file, and a fetch-decode-execute loop that
// reports every fault in rF rather than returning it to the caller.
package vm

import (
	"context"
	"fmt"
	"io"

	"github.com/0xAbby/ByteCraft/container"
)

// VM ties together the CPU, the flat memory image, and the executor
// that drives them, for a single program run.
type VM struct {
	CPU      *CPU
	Memory   *Memory
	Executor *Executor
	Syscalls *Syscalls
}

// New builds a VM from a loaded Module, wiring stdout/stderr/stdin for
// syscalls. The instruction pointer starts at the module's entry
// point.
func New(m *container.Module, stdout, stderr io.Writer, stdin io.Reader) *VM {
	cpu := NewCPU()
	cpu.SetIP(m.EntryPoint)
	mem := NewMemory(m.Code, m.Data)
	sys := NewSyscalls(stdout, stderr, stdin)
	exec := NewExecutor(cpu, mem, sys)

	return &VM{CPU: cpu, Memory: mem, Executor: exec, Syscalls: sys}
}

// SetTrace attaches a diagnostic trace sink; nil disables tracing.
func (v *VM) SetTrace(t *Trace) {
	v.Executor.SetTrace(t)
}

// Run drives Step until the VM halts. ctx is a host-level convenience
// only: when it carries a deadline or is cancelled, Run stops and
// returns a plain Go error distinct from any architectural fault — it
// never touches rF and is not part of the VM's own state machine.
func (v *VM) Run(ctx context.Context) error {
	for v.Executor.Step() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("vm: run stopped: %w", ctx.Err())
		default:
		}
	}
	return nil
}

// RunWithStepCap is a convenience over Run for callers (CLI, tests)
// that want a simple instruction budget instead of a context deadline.
// Reaching the cap without the program halting itself returns
// HaltStepCap via Statistics but is not itself an error.
func (v *VM) RunWithStepCap(maxSteps uint64) {
	for maxSteps == 0 || v.Executor.steps < maxSteps {
		if !v.Executor.Step() {
			return
		}
	}
	if !v.Executor.halted {
		v.Executor.halt(HaltStepCap)
	}
}

// Statistics reports the instruction count and halt outcome.
func (v *VM) Statistics() Statistics {
	return v.Executor.Statistics()
}

// DumpState renders a one-line register/flag summary.
func (v *VM) DumpState() string {
	return v.Executor.DumpState()
}
