package cpu

// InstrPush pushes a register onto the stack.
type InstrPush struct {
	reg Descriptor
}

var _ Instruction = (*InstrPush)(nil)

// NewPush creates 'push rX'.
func NewPush(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	reg, err := argDirect(args, 0)
	if err != nil {
		return
	}

	instr = &InstrPush{reg: reg}
	return
}

func (instr *InstrPush) Execute(cpu *Cpu) (halt bool, err error) {
	err = cpu.Push(instr.reg)
	return
}

func (instr *InstrPush) String() string {
	return format("push", instr.reg)
}

// InstrPop pops the top of the stack into a register.
type InstrPop struct {
	reg Descriptor
}

var _ Instruction = (*InstrPop)(nil)

// NewPop creates 'pop rX'.
func NewPop(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	reg, err := argDirect(args, 0)
	if err != nil {
		return
	}

	instr = &InstrPop{reg: reg}
	return
}

func (instr *InstrPop) Execute(cpu *Cpu) (halt bool, err error) {
	err = cpu.Pop(instr.reg)
	return
}

func (instr *InstrPop) String() string {
	return format("pop", instr.reg)
}

// InstrCall calls the subroutine at an address.
type InstrCall struct {
	target address
}

var _ Instruction = (*InstrCall)(nil)

// NewCall creates 'call address'.
func NewCall(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	target, err := argNumber(args, 0)
	if err != nil {
		return
	}

	instr = &InstrCall{target: address(target)}
	return
}

func (instr *InstrCall) Execute(cpu *Cpu) (halt bool, err error) {
	err = cpu.Call(int(instr.target))
	return
}

func (instr *InstrCall) String() string {
	return format("call", instr.target)
}

// InstrRet returns from a subroutine.
type InstrRet struct{}

var _ Instruction = (*InstrRet)(nil)

// NewRet creates 'ret'.
func NewRet(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 0)
	if err != nil {
		return
	}

	instr = &InstrRet{}
	return
}

func (instr *InstrRet) Execute(cpu *Cpu) (halt bool, err error) {
	err = cpu.Return()
	return
}

func (instr *InstrRet) String() string {
	return "ret"
}

// InstrJump transfers control to an address, optionally only when the
// flag is set.
type InstrJump struct {
	target      address
	conditional bool
}

var _ Instruction = (*InstrJump)(nil)

func newJump(conditional bool, args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	target, err := argNumber(args, 0)
	if err != nil {
		return
	}

	instr = &InstrJump{target: address(target), conditional: conditional}
	return
}

// NewJump creates 'jump address'.
func NewJump(args []Argument) (Instruction, error) {
	return newJump(false, args)
}

// NewJumpIfTrue creates 'jumpIfTrue address'.
func NewJumpIfTrue(args []Argument) (Instruction, error) {
	return newJump(true, args)
}

// Execute leaves the program counter one short of the target, as the
// execution unit increments it after every instruction.
func (instr *InstrJump) Execute(cpu *Cpu) (halt bool, err error) {
	regs := cpu.Registers
	if instr.conditional && !regs.Flag() {
		return
	}

	err = regs.SetPC(int(instr.target) - 1)
	return
}

func (instr *InstrJump) String() string {
	if instr.conditional {
		return format("jumpIfTrue", instr.target)
	}
	return format("jump", instr.target)
}

// InstrHalt stops the machine.
type InstrHalt struct{}

var _ Instruction = (*InstrHalt)(nil)

// NewHalt creates 'halt'.
func NewHalt(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 0)
	if err != nil {
		return
	}

	instr = &InstrHalt{}
	return
}

func (instr *InstrHalt) Execute(cpu *Cpu) (halt bool, err error) {
	halt = true
	return
}

func (instr *InstrHalt) String() string {
	return "halt"
}
