// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	stdio "io"
	"iter"
	"log/slog"
	"maps"

	"github.com/ezrec/simplecomp/cpu"
	"github.com/ezrec/simplecomp/internal"
	"github.com/ezrec/simplecomp/io"
)

const (
	MEMORY_SIZE    = 256 // Default memory size, in cells.
	REGISTER_COUNT = 16  // Default register count.
)

// Emulator state. CPU + program listing + IO channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Tape     io.Tape      // Tape IO channel.
	MaxTicks int          // Tick limit for Run, 0 for none.
	Logger   *slog.Logger // Destination of verbose logging.
}

// NewEmulator creates a new emulator with a memory of size cells and
// count registers.
func NewEmulator(size int, count int) (emu *Emulator, err error) {
	machine, err := cpu.NewCpu(size, count)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     machine,
		Program: &cpu.Program{},
	}

	emu.Cpu.Console = &emu.Tape

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	emulatorDefines := map[string]string{
		"MEMORY_SIZE":    fmt.Sprintf("%d", emu.Cpu.Memory.Size()),
		"REGISTER_COUNT": fmt.Sprintf("%d", emu.Cpu.Registers.Count()),
	}

	return internal.IterSeq2Concat(maps.All(emulatorDefines),
		emu.Cpu.Defines(),
	)
}

// Assemble parses program text into the emulator's program listing.
func (emu *Emulator) Assemble(input stdio.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset clears the machine and loads the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	emu.Cpu.Reset()

	err = emu.Program.Load(emu.Cpu.Memory)
	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// PC returns the current program counter.
func (emu *Emulator) PC() int {
	return emu.Cpu.Registers.PC()
}

// LineNo returns the source line number of the instruction at the
// program counter, or 0 if unknown.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.PC())
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	address := emu.PC()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: address, Err: err}
		}
	}()

	done, err = emu.Cpu.Tick()
	return
}

// Run executes from address 0 until the machine halts.
func (emu *Emulator) Run() (err error) {
	err = emu.Cpu.Registers.SetPC(0)
	if err != nil {
		return
	}

	for done := false; !done; {
		if emu.MaxTicks > 0 && emu.Ticks() >= emu.MaxTicks {
			err = &ErrRuntime{LineNo: emu.LineNo(), Address: emu.PC(), Err: ErrTickLimit}
			return
		}
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose && emu.Logger != nil {
		emu.Logger.Debug("emulator: halted", "ticks", emu.Ticks(), "pc", emu.PC())
	}

	return
}
