package cpu

const (
	STACK_REGISTER = 15 // Register holding the stack pointer.
)

// stackPointer reads the stack pointer register, which must hold an integer.
func (cpu *Cpu) stackPointer() (sp int, err error) {
	value, err := cpu.Registers.Get(STACK_REGISTER)
	if err != nil {
		return
	}

	v, err := value.Int()
	if err != nil {
		err = ErrStackPointer
		return
	}

	sp = int(v)
	return
}

func (cpu *Cpu) setStackPointer(sp int) error {
	return cpu.Registers.Set(STACK_REGISTER, Int(int32(sp)))
}

// pushValue stores a value at the stack pointer, then moves the pointer down.
func (cpu *Cpu) pushValue(value Value) (err error) {
	sp, err := cpu.stackPointer()
	if err != nil {
		return
	}

	err = cpu.Memory.Write(sp, value)
	if err != nil {
		return
	}

	err = cpu.setStackPointer(sp - 1)
	return
}

// popValue moves the stack pointer up, then reads the value it points at.
func (cpu *Cpu) popValue() (value Value, err error) {
	sp, err := cpu.stackPointer()
	if err != nil {
		return
	}

	sp++
	err = cpu.setStackPointer(sp)
	if err != nil {
		return
	}

	value, err = cpu.Memory.Read(sp)
	return
}

// Push pushes the value named by a descriptor.
func (cpu *Cpu) Push(d Descriptor) (err error) {
	value, err := cpu.Resolve(d)
	if err != nil {
		return
	}

	err = cpu.pushValue(value)
	return
}

// Pop pops a value into the cell named by a descriptor.
func (cpu *Cpu) Pop(d Descriptor) (err error) {
	value, err := cpu.popValue()
	if err != nil {
		return
	}

	err = cpu.Assign(d, value)
	return
}

// Call pushes the program counter and transfers control to target.
// The program counter is left one short of target, as the execution
// unit increments it after every instruction. A target below 1 fails
// before anything is pushed.
func (cpu *Cpu) Call(target int) (err error) {
	regs := cpu.Registers

	if target < 1 {
		err = ErrProgramCounter(target - 1)
		return
	}

	err = cpu.pushValue(Int(int32(regs.PC())))
	if err != nil {
		return
	}

	err = regs.SetPC(target - 1)
	return
}

// Return pops the program counter saved by Call. Execution resumes after
// the calling instruction once the execution unit increments it.
func (cpu *Cpu) Return() (err error) {
	value, err := cpu.popValue()
	if err != nil {
		return
	}

	pc, err := value.Int()
	if err != nil {
		return
	}

	err = cpu.Registers.SetPC(int(pc))
	return
}
