package cpu

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"strings"

	"github.com/ezrec/simplecomp/io"
)

// Console is the line oriented I/O channel used by echo and input.
type Console io.Console

var _cpu_defines = map[string]string{
	"STACK_REGISTER": fmt.Sprintf("%d", STACK_REGISTER),
}

// Cpu is the simulation context: register file, memory, and console.
type Cpu struct {
	Verbose bool         // Set to enable per-instruction tracing.
	Logger  *slog.Logger // Trace destination, slog.Default() if nil.

	Registers *Registers // Register file.
	Memory    *Memory    // Program and data memory.
	Console   Console    // I/O channel.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a CPU with a memory of size cells and count registers.
func NewCpu(size int, count int) (cpu *Cpu, err error) {
	mem, err := NewMemory(size)
	if err != nil {
		return
	}

	regs, err := NewRegisters(count)
	if err != nil {
		return
	}

	cpu = &Cpu{
		Registers: regs,
		Memory:    mem,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

func (cpu *Cpu) logger() *slog.Logger {
	if cpu.Logger == nil {
		return slog.Default()
	}
	return cpu.Logger
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	regs := cpu.Registers
	fmt.Fprintf(&sb, "% 5s: %d\n", "pc", regs.PC())
	fmt.Fprintf(&sb, "% 5s: %v\n", "flag", regs.Flag())
	for n := range regs.Count() {
		value, _ := regs.Get(n)
		if !value.IsSet() {
			continue
		}
		fmt.Fprintf(&sb, "% 5s: %v\n", fmt.Sprintf("r%d", n), value)
	}

	return sb.String()
}

// Reset clears the registers and the memory.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		cpu.logger().Debug("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Memory.Reset()
	cpu.Ticks = 0
}

// FetchInstruction fetches the instruction at the program counter.
func (cpu *Cpu) FetchInstruction() (instr Instruction, err error) {
	pc := cpu.Registers.PC()
	defer func() {
		if err != nil {
			err = &ErrFetch{Address: pc, Err: err}
		}
	}()

	value, err := cpu.Memory.Read(pc)
	if err != nil {
		return
	}

	instr, err = value.Instruction()
	if err != nil {
		err = fmt.Errorf("%w: %v holds %v: %w", ErrNotCode, pc, value.Kind(), err)
	}
	return
}

// Tick executes a single instruction, then advances the program counter
// unless the instruction halted the machine.
func (cpu *Cpu) Tick() (halted bool, err error) {
	instr, err := cpu.FetchInstruction()
	if err != nil {
		return
	}

	regs := cpu.Registers
	pc := regs.PC()
	if cpu.Verbose {
		cpu.logger().Debug("exec", "pc", pc, "instr", instr.String())
	}

	halted, err = instr.Execute(cpu)
	if err != nil {
		err = &ErrExecute{Address: pc, Text: instr.String(), Err: err}
		return
	}

	cpu.Ticks++

	if halted {
		if cpu.Verbose {
			cpu.logger().Debug("halt", "pc", pc, "ticks", cpu.Ticks)
		}
		return
	}

	regs.IncrementPC()
	return
}

// Run starts execution at address 0 and runs until halted.
func (cpu *Cpu) Run() (err error) {
	err = cpu.Registers.SetPC(0)
	if err != nil {
		return
	}

	for halted := false; !halted; {
		halted, err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}
