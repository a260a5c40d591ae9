package cpu

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// InstrEcho writes the value named by a descriptor to the console.
type InstrEcho struct {
	reg Descriptor
}

var _ Instruction = (*InstrEcho)(nil)

// NewEcho creates 'echo rX' or 'echo [rX+offset]'.
func NewEcho(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	reg, err := argRegister(args, 0)
	if err != nil {
		return
	}

	instr = &InstrEcho{reg: reg}
	return
}

func (instr *InstrEcho) Execute(cpu *Cpu) (halt bool, err error) {
	value, err := cpu.Resolve(instr.reg)
	if err != nil {
		return
	}

	if cpu.Console == nil {
		err = ErrConsoleAbsent
		return
	}

	err = cpu.Console.Write(value.String())
	return
}

func (instr *InstrEcho) String() string {
	return format("echo", instr.reg)
}

// InstrInput reads an integer from the console into memory. The flag
// reports whether the line was a valid integer.
type InstrInput struct {
	address address
}

var _ Instruction = (*InstrInput)(nil)

// NewInput creates 'input address'.
func NewInput(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	addr, err := argNumber(args, 0)
	if err != nil {
		return
	}

	instr = &InstrInput{address: address(addr)}
	return
}

func (instr *InstrInput) Execute(cpu *Cpu) (halt bool, err error) {
	if cpu.Console == nil {
		err = ErrConsoleAbsent
		return
	}

	line, err := cpu.Console.ReadLine()
	if errors.Is(err, io.EOF) {
		err = errors.Join(ErrInputClosed, err)
		return
	}
	if err != nil {
		return
	}

	regs := cpu.Registers
	value, perr := strconv.ParseInt(strings.TrimSuffix(line, "\r"), 10, 32)
	if perr != nil {
		regs.SetFlag(false)
		return
	}

	err = cpu.Memory.Write(int(instr.address), Int(int32(value)))
	if err != nil {
		return
	}

	regs.SetFlag(true)
	return
}

func (instr *InstrInput) String() string {
	return format("input", instr.address)
}
