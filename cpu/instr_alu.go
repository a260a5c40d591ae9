package cpu

// InstrArithmetic sets a register to a binary operation of two registers.
type InstrArithmetic struct {
	name string
	op   func(a, b int32) int32

	dst  Descriptor
	srcA Descriptor
	srcB Descriptor
}

var _ Instruction = (*InstrArithmetic)(nil)

func newArithmetic(name string, op func(a, b int32) int32, args []Argument) (instr Instruction, err error) {
	err = argCount(args, 3)
	if err != nil {
		return
	}

	var regs [3]Descriptor
	for n := range regs {
		regs[n], err = argDirect(args, n)
		if err != nil {
			return
		}
	}

	instr = &InstrArithmetic{
		name: name,
		op:   op,
		dst:  regs[0],
		srcA: regs[1],
		srcB: regs[2],
	}
	return
}

// NewAdd creates 'add rD, rA, rB'.
func NewAdd(args []Argument) (Instruction, error) {
	return newArithmetic("add", func(a, b int32) int32 { return a + b }, args)
}

// NewSub creates 'sub rD, rA, rB'.
func NewSub(args []Argument) (Instruction, error) {
	return newArithmetic("sub", func(a, b int32) int32 { return a - b }, args)
}

// NewMul creates 'mul rD, rA, rB'.
func NewMul(args []Argument) (Instruction, error) {
	return newArithmetic("mul", func(a, b int32) int32 { return a * b }, args)
}

func (instr *InstrArithmetic) Execute(cpu *Cpu) (halt bool, err error) {
	a, err := cpu.resolveInt(instr.srcA)
	if err != nil {
		return
	}
	b, err := cpu.resolveInt(instr.srcB)
	if err != nil {
		return
	}

	err = cpu.Registers.Set(instr.dst.Index(), Int(instr.op(a, b)))
	return
}

func (instr *InstrArithmetic) String() string {
	return format(instr.name, instr.dst, instr.srcA, instr.srcB)
}

// InstrUnary replaces a register with a unary operation of itself.
type InstrUnary struct {
	name string
	op   func(a int32) int32

	reg Descriptor
}

var _ Instruction = (*InstrUnary)(nil)

func newUnary(name string, op func(a int32) int32, args []Argument) (instr Instruction, err error) {
	err = argCount(args, 1)
	if err != nil {
		return
	}

	reg, err := argDirect(args, 0)
	if err != nil {
		return
	}

	instr = &InstrUnary{name: name, op: op, reg: reg}
	return
}

// NewIncrement creates 'increment rX'.
func NewIncrement(args []Argument) (Instruction, error) {
	return newUnary("increment", func(a int32) int32 { return a + 1 }, args)
}

// NewDecrement creates 'decrement rX'.
func NewDecrement(args []Argument) (Instruction, error) {
	return newUnary("decrement", func(a int32) int32 { return a - 1 }, args)
}

func (instr *InstrUnary) Execute(cpu *Cpu) (halt bool, err error) {
	a, err := cpu.resolveInt(instr.reg)
	if err != nil {
		return
	}

	err = cpu.Registers.Set(instr.reg.Index(), Int(instr.op(a)))
	return
}

func (instr *InstrUnary) String() string {
	return format(instr.name, instr.reg)
}

// InstrTestEquals sets the flag when two registers hold equal values.
type InstrTestEquals struct {
	regA Descriptor
	regB Descriptor
}

var _ Instruction = (*InstrTestEquals)(nil)

// NewTestEquals creates 'testEquals rA, rB'.
func NewTestEquals(args []Argument) (instr Instruction, err error) {
	err = argCount(args, 2)
	if err != nil {
		return
	}

	a, err := argDirect(args, 0)
	if err != nil {
		return
	}
	b, err := argDirect(args, 1)
	if err != nil {
		return
	}

	instr = &InstrTestEquals{regA: a, regB: b}
	return
}

func (instr *InstrTestEquals) Execute(cpu *Cpu) (halt bool, err error) {
	a, err := cpu.Resolve(instr.regA)
	if err != nil {
		return
	}
	b, err := cpu.Resolve(instr.regB)
	if err != nil {
		return
	}

	cpu.Registers.SetFlag(a.Equal(b))
	return
}

func (instr *InstrTestEquals) String() string {
	return format("testEquals", instr.regA, instr.regB)
}
