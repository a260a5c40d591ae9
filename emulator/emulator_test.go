package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/simplecomp/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(MEMORY_SIZE, REGISTER_COUNT)
	assert.NoError(err)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(MEMORY_SIZE, emu.Cpu.Memory.Size())

	_, err = NewEmulator(0, REGISTER_COUNT)
	assert.ErrorIs(err, cpu.ErrMemorySize)
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(128, 20)
	assert.NoError(err)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("128", defines["MEMORY_SIZE"])
	assert.Equal("20", defines["REGISTER_COUNT"])
	assert.Equal("15", defines["STACK_REGISTER"])
}

func doRun(t *testing.T, program []string, input string) (output string, err error) {
	emu, err := NewEmulator(MEMORY_SIZE, REGISTER_COUNT)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	emu.Tape.Input = strings.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output
	emu.MaxTicks = 10000

	err = emu.Run()
	output = tape_output.String()
	return
}

func TestEmulator_Echo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        load r1, @msg",
		"        echo r1",
		"        move r2, 6",
		"        move r3, 7",
		"        mul r0, r2, r3",
		"        echo r0",
		"        load r1, @nl",
		"        echo r1",
		"        halt",
		"msg:    DEFSTR \"answer=\"",
		"nl:     DEFSTR \"\\n\"",
	}

	output, err := doRun(t, program, "")
	assert.NoError(err)
	assert.Equal("answer=42\n", output)
}

func TestEmulator_Subroutine(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        move r15, $(MEMORY_SIZE-1)",
		"        move r1, 5",
		"        call @fact",
		"        echo r0",
		"        halt",
		"# r0 = r1!",
		"fact:   move r0, 1",
		"        move r2, 0",
		"floop:  testEquals r1, r2",
		"        jumpIfTrue @fdone",
		"        mul r0, r0, r1",
		"        decrement r1",
		"        jump @floop",
		"fdone:  ret",
	}

	output, err := doRun(t, program, "")
	assert.NoError(err)
	assert.Equal("120", output)
}

func TestEmulator_InputLoop(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        move r0, 0",
		"read:   input @value",
		"        jumpIfTrue @got",
		"        jump @done",
		"got:    load r1, @value",
		"        add r0, r0, r1",
		"        jump @read",
		"done:   echo r0",
		"        halt",
		"value:  RESERVE",
	}

	output, err := doRun(t, program, "1\n2\r\n39\nend\n")
	assert.NoError(err)
	assert.Equal("42", output)

	// Input is exhausted before a non-number arrives.
	_, err = doRun(t, program, "1\n2\n")
	assert.ErrorIs(err, cpu.ErrInputClosed)
}

func TestEmulator_RuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        move r1, 1",
		"        load r2, @text",
		"",
		"        add r0, r1, r2",
		"        halt",
		"text:   DEFSTR \"x\"",
	}

	_, err := doRun(t, program, "")
	assert.ErrorIs(err, cpu.ErrTypeMismatch)

	var errRuntime *ErrRuntime
	if assert.True(errors.As(err, &errRuntime)) {
		assert.Equal(4, errRuntime.LineNo)
		assert.Equal(2, errRuntime.Address)
	}
}

func TestEmulator_TickLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        move r0, 0",
		"loop:   increment r0",
		"        jump @loop",
	}

	_, err := doRun(t, program, "")
	assert.ErrorIs(err, ErrTickLimit)
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(16, REGISTER_COUNT)
	assert.NoError(err)

	err = emu.Assemble(strings.NewReader("move r1, 3\nincrement r1\nhalt\n"))
	assert.NoError(err)
	assert.NoError(emu.Reset())
	assert.Equal(1, emu.LineNo())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(2, emu.LineNo())
	assert.Equal(1, emu.Ticks())

	assert.NoError(emu.Reset())
	assert.Equal(0, emu.PC())
	assert.Equal(0, emu.Ticks())
	value, _ := emu.Cpu.Registers.Get(1)
	assert.False(value.IsSet())

	// Reserved space past the end of memory fails to assemble.
	err = emu.Assemble(strings.NewReader("halt\nRESERVE 20\n"))
	assert.ErrorIs(err, cpu.ErrOutOfRange)
	assert.Equal(3, emu.Program.Size())

	// Program too large for memory.
	err = emu.Assemble(strings.NewReader("RESERVE 15\nhalt\nhalt\n"))
	assert.NoError(err)
	assert.ErrorIs(emu.Reset(), cpu.ErrOutOfRange)

	// Assembly errors keep the previous program.
	err = emu.Assemble(strings.NewReader("bogus\n"))
	assert.ErrorIs(err, cpu.ErrInstructionInvalid)
	assert.Equal(17, emu.Program.Size())
}
