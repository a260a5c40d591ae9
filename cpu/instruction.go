package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is a decoded, validated instruction.
type Instruction interface {
	// Execute runs the instruction, returning true if the machine halts.
	Execute(cpu *Cpu) (halt bool, err error)
	// String returns the instruction in assembler syntax.
	String() string
}

//go:generate go tool stringer -linecomment -type=ArgKind

// ArgKind is the kind of an instruction argument.
type ArgKind int

const (
	ARG_REGISTER = ArgKind(0) // register
	ARG_NUMBER   = ArgKind(1) // number
	ARG_STRING   = ArgKind(2) // string
)

// Argument is a typed instruction argument.
type Argument struct {
	Kind  ArgKind
	Value int32  // Descriptor or number.
	Text  string // Text literal.
}

// Register makes a register descriptor argument.
func Register(d Descriptor) Argument {
	return Argument{Kind: ARG_REGISTER, Value: int32(d)}
}

// Number makes a numeric literal argument.
func Number(value int32) Argument {
	return Argument{Kind: ARG_NUMBER, Value: value}
}

// Literal makes a text literal argument.
func Literal(text string) Argument {
	return Argument{Kind: ARG_STRING, Text: text}
}

// Descriptor returns the register descriptor of a register argument.
func (arg Argument) Descriptor() Descriptor {
	return Descriptor(uint32(arg.Value))
}

func (arg Argument) String() string {
	switch arg.Kind {
	case ARG_REGISTER:
		return arg.Descriptor().String()
	case ARG_STRING:
		return strconv.Quote(arg.Text)
	}
	return strconv.Itoa(int(arg.Value))
}

// argCount checks the number of arguments.
func argCount(args []Argument, want int) (err error) {
	if len(args) != want {
		err = fmt.Errorf("%w: want %d, have %d", ErrArgCount, want, len(args))
	}
	return
}

// argDirect checks for a direct register argument.
func argDirect(args []Argument, index int) (d Descriptor, err error) {
	d, err = argRegister(args, index)
	if err != nil {
		return
	}

	if d.Indirect() {
		err = ErrArgument{Index: index, Err: ErrArgIndirect}
	}
	return
}

// argRegister checks for a direct or indirect register argument.
func argRegister(args []Argument, index int) (d Descriptor, err error) {
	if args[index].Kind != ARG_REGISTER {
		err = ErrArgument{Index: index, Err: ErrArgType}
		return
	}

	d = args[index].Descriptor()
	return
}

// argNumber checks for a numeric argument.
func argNumber(args []Argument, index int) (value int, err error) {
	if args[index].Kind != ARG_NUMBER {
		err = ErrArgument{Index: index, Err: ErrArgType}
		return
	}

	value = int(args[index].Value)
	return
}

// format renders a mnemonic and its operands.
func format(name string, operands ...fmt.Stringer) string {
	if len(operands) == 0 {
		return name
	}

	words := make([]string, len(operands))
	for n, op := range operands {
		words[n] = op.String()
	}
	return name + " " + strings.Join(words, ", ")
}

// address is a numeric operand holding a memory address.
type address int

func (a address) String() string {
	return strconv.Itoa(int(a))
}
