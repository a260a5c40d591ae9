package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Constructor builds an instruction from its arguments.
type Constructor func(args []Argument) (Instruction, error)

// instructionMap maps lower-cased mnemonics to constructors.
var instructionMap = map[string]Constructor{
	"add":        NewAdd,
	"sub":        NewSub,
	"mul":        NewMul,
	"increment":  NewIncrement,
	"decrement":  NewDecrement,
	"load":       NewLoad,
	"move":       NewMove,
	"push":       NewPush,
	"pop":        NewPop,
	"call":       NewCall,
	"ret":        NewRet,
	"jump":       NewJump,
	"jumpiftrue": NewJumpIfTrue,
	"testequals": NewTestEquals,
	"echo":       NewEcho,
	"input":      NewInput,
	"iinput":     NewInput,
	"halt":       NewHalt,
}

// NewInstruction constructs the instruction named by a mnemonic.
// Mnemonics are case insensitive.
func NewInstruction(name string, args []Argument) (instr Instruction, err error) {
	create, ok := instructionMap[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrInstructionInvalid, name)
		return
	}

	instr, err = create(args)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
	}
	return
}

// Mnemonics returns the known mnemonics, sorted.
func Mnemonics() []string {
	return slices.Sorted(maps.Keys(instructionMap))
}
