package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStackCpu(t *testing.T, sp int32) *Cpu {
	cpu, err := NewCpu(128, 16)
	if err != nil {
		t.Fatal(err)
	}
	err = cpu.Registers.Set(STACK_REGISTER, Int(sp))
	if err != nil {
		t.Fatal(err)
	}
	return cpu
}

func TestStack_PushPop(t *testing.T) {
	assert := assert.New(t)

	cpu := newStackCpu(t, 100)
	r1 := MakeDescriptor(1, 0, false)
	r2 := MakeDescriptor(2, 0, false)

	assert.NoError(cpu.Registers.Set(1, Int(7)))
	assert.NoError(cpu.Push(r1))

	sp, _ := cpu.Registers.Get(STACK_REGISTER)
	assert.Equal(Int(99), sp)
	value, _ := cpu.Memory.Read(100)
	assert.Equal(Int(7), value)

	assert.NoError(cpu.Pop(r2))
	sp, _ = cpu.Registers.Get(STACK_REGISTER)
	assert.Equal(Int(100), sp)
	value, _ = cpu.Registers.Get(2)
	assert.Equal(Int(7), value)
}

func TestStack_Order(t *testing.T) {
	assert := assert.New(t)

	cpu := newStackCpu(t, 50)
	r0 := MakeDescriptor(0, 0, false)

	for _, v := range []int32{1, 2, 3} {
		assert.NoError(cpu.Registers.Set(0, Int(v)))
		assert.NoError(cpu.Push(r0))
	}

	for _, v := range []int32{3, 2, 1} {
		assert.NoError(cpu.Pop(r0))
		value, _ := cpu.Registers.Get(0)
		assert.Equal(Int(v), value)
	}

	sp, _ := cpu.Registers.Get(STACK_REGISTER)
	assert.Equal(Int(50), sp)
}

func TestStack_PushUnset(t *testing.T) {
	assert := assert.New(t)

	cpu := newStackCpu(t, 10)

	// Pushing an unset register materializes it as zero.
	assert.NoError(cpu.Push(MakeDescriptor(3, 0, false)))
	value, _ := cpu.Memory.Read(10)
	assert.Equal(Int(0), value)
}

func TestStack_Errors(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(16, 16)
	assert.NoError(err)

	// Stack pointer never set.
	err = cpu.Push(MakeDescriptor(0, 0, false))
	assert.ErrorIs(err, ErrStackPointer)
	err = cpu.Pop(MakeDescriptor(0, 0, false))
	assert.ErrorIs(err, ErrStackPointer)

	// Stack pointer is text.
	assert.NoError(cpu.Registers.Set(STACK_REGISTER, Text("top")))
	err = cpu.Return()
	assert.ErrorIs(err, ErrStackPointer)

	// Stack overflows below memory.
	assert.NoError(cpu.Registers.Set(STACK_REGISTER, Int(-1)))
	err = cpu.Push(MakeDescriptor(0, 0, false))
	assert.ErrorIs(err, ErrOutOfRange)

	// Stack underflows above memory.
	assert.NoError(cpu.Registers.Set(STACK_REGISTER, Int(15)))
	err = cpu.Pop(MakeDescriptor(0, 0, false))
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestStack_CallReturn(t *testing.T) {
	assert := assert.New(t)

	cpu := newStackCpu(t, 100)
	assert.NoError(cpu.Registers.SetPC(3))

	assert.NoError(cpu.Call(20))
	assert.Equal(19, cpu.Registers.PC())
	value, _ := cpu.Memory.Read(100)
	assert.Equal(Int(3), value)

	assert.NoError(cpu.Return())
	assert.Equal(3, cpu.Registers.PC())
	sp, _ := cpu.Registers.Get(STACK_REGISTER)
	assert.Equal(Int(100), sp)

	// Call to address zero leaves the program counter negative, and
	// pushes nothing.
	assert.NoError(cpu.Memory.Write(100, Value{}))
	err := cpu.Call(0)
	assert.ErrorIs(err, ErrOutOfRange)
	assert.Equal(3, cpu.Registers.PC())
	sp, _ = cpu.Registers.Get(STACK_REGISTER)
	assert.Equal(Int(100), sp)
	value, _ = cpu.Memory.Read(100)
	assert.False(value.IsSet())

	// Return through a non-integer cell.
	cpu = newStackCpu(t, 100)
	assert.NoError(cpu.Memory.Write(101, Text("bad")))
	err = cpu.Return()
	assert.ErrorIs(err, ErrTypeMismatch)
}
