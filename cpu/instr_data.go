package cpu

// InstrLoad copies a memory cell into a register.
type InstrLoad struct {
	dst     Descriptor
	address address
}

var _ Instruction = (*InstrLoad)(nil)

// NewLoad creates 'load rD, address'.
func NewLoad(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 2)
	if err != nil {
		return
	}

	dst, err := argDirect(args, 0)
	if err != nil {
		return
	}
	addr, err := argNumber(args, 1)
	if err != nil {
		return
	}

	instr = &InstrLoad{dst: dst, address: address(addr)}
	return
}

// Execute reads the cell as is; an unset cell leaves the register unset.
func (instr *InstrLoad) Execute(cpu *Cpu) (halt bool, err error) {
	value, err := cpu.Memory.Read(int(instr.address))
	if err != nil {
		return
	}

	if value.Kind() == KIND_INSTRUCTION {
		err = ErrTypeMismatch
		return
	}

	err = cpu.Registers.Set(instr.dst.Index(), value)
	return
}

func (instr *InstrLoad) String() string {
	return format("load", instr.dst, instr.address)
}

// InstrMove copies a register or a number into a register or, through an
// indirect descriptor, into memory.
type InstrMove struct {
	dst Descriptor
	src Argument
}

var _ Instruction = (*InstrMove)(nil)

// NewMove creates 'move dst, src'.
func NewMove(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 2)
	if err != nil {
		return
	}

	dst, err := argRegister(args, 0)
	if err != nil {
		return
	}

	src := args[1]
	if src.Kind == ARG_STRING {
		err = ErrArgument{Index: 1, Err: ErrArgType}
		return
	}

	instr = &InstrMove{dst: dst, src: src}
	return
}

func (instr *InstrMove) Execute(cpu *Cpu) (halt bool, err error) {
	var value Value

	switch instr.src.Kind {
	case ARG_NUMBER:
		value = Int(instr.src.Value)
	case ARG_REGISTER:
		value, err = cpu.Resolve(instr.src.Descriptor())
		if err != nil {
			return
		}
	default:
		err = ErrArgType
		return
	}

	err = cpu.Assign(instr.dst, value)
	return
}

func (instr *InstrMove) String() string {
	return format("move", instr.dst, instr.src)
}
