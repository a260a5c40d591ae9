package cpu

// Registers is the register file: general purpose cells, the program
// counter, and the flag.
type Registers struct {
	cells []Value
	pc    int
	flag  bool
}

// NewRegisters creates a register file of count unset registers.
func NewRegisters(count int) (regs *Registers, err error) {
	if count <= STACK_REGISTER {
		err = ErrRegisterCount
		return
	}

	regs = &Registers{
		cells: make([]Value, count),
	}

	return
}

// Count returns the number of general purpose registers.
func (regs *Registers) Count() int {
	return len(regs.cells)
}

// Reset unsets all registers, and clears the program counter and flag.
func (regs *Registers) Reset() {
	clear(regs.cells)
	regs.pc = 0
	regs.flag = false
}

func (regs *Registers) check(index int) (err error) {
	if index < 0 || index >= len(regs.cells) {
		err = ErrRegister{Index: index, Count: len(regs.cells)}
	}
	return
}

// Get returns the content of a register, without initialization.
func (regs *Registers) Get(index int) (value Value, err error) {
	err = regs.check(index)
	if err != nil {
		return
	}

	value = regs.cells[index]
	return
}

// Set replaces the content of a register.
func (regs *Registers) Set(index int, value Value) (err error) {
	err = regs.check(index)
	if err != nil {
		return
	}

	regs.cells[index] = value
	return
}

// PC returns the program counter.
func (regs *Registers) PC() int {
	return regs.pc
}

// SetPC sets the program counter, which may not be negative.
func (regs *Registers) SetPC(value int) (err error) {
	if value < 0 {
		err = ErrProgramCounter(value)
		return
	}

	regs.pc = value
	return
}

// IncrementPC advances the program counter by one.
func (regs *Registers) IncrementPC() {
	regs.pc++
}

// Flag returns the flag register.
func (regs *Registers) Flag() bool {
	return regs.flag
}

// SetFlag sets the flag register.
func (regs *Registers) SetFlag(value bool) {
	regs.flag = value
}
