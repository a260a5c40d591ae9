package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, lines ...string) (asm *Assembler, prog *Program) {
	asm = &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))
	assert.Equal(0, prog.Size())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("15", asm.Equate["STACK_REGISTER"])
}

func TestAssembler_Listing(t *testing.T) {
	assert := assert.New(t)

	asm, prog := parse(t,
		"# counting loop",
		"@start: move r0, 5",
		"        add r1, r0, r0",
		"",
		"loop:   decrement r0   # count down",
		"        jumpIfTrue @loop",
		"msg:    DEFSTR \"hi # there\\n\"",
		"num:    DEFINT 42",
		"buf:    RESERVE:3",
		"end:    halt",
	)

	assert.Equal(map[string]int{
		"start": 0,
		"loop":  2,
		"msg":   4,
		"num":   5,
		"buf":   6,
		"end":   9,
	}, asm.Label)

	assert.Equal(10, prog.Size())
	assert.Equal(8, len(prog.Lines))

	line := prog.Lines[0]
	assert.Equal(2, line.LineNo)
	assert.Equal(0, line.Address)
	assert.Equal([]string{"move", "r0", "5"}, line.Words)
	assert.Equal("move r0, 5", line.Cells[0].String())

	assert.Equal("jumpIfTrue 2", prog.Lines[3].Cells[0].String())
	assert.Equal([]Value{Text("hi # there\n")}, prog.Lines[4].Cells)
	assert.Equal([]Value{Int(42)}, prog.Lines[5].Cells)

	buf := prog.Lines[6]
	assert.Equal(6, buf.Address)
	assert.Equal(3, len(buf.Cells))
	for _, cell := range buf.Cells {
		assert.False(cell.IsSet())
	}

	assert.Equal(KIND_INSTRUCTION, prog.Lines[7].Cells[0].Kind())
	assert.Equal(9, prog.Lines[7].Address)
}

func TestAssembler_Arguments(t *testing.T) {
	assert := assert.New(t)

	_, prog := parse(t,
		".equ SP r15",
		".equ COUNT 3",
		"        move SP, 100",
		"        move r1, 'A'",
		"        move [r2 + 4], -7",
		"        move [r3-data], 0x10",
		"        move r4, $(COUNT * 2 + 1)",
		"        echo [r0+data]",
		"        call @sub",
		"        jump end",
		"data:   RESERVE $(COUNT*2)",
		"sub:    ret",
		"end:    DEFINT LINENO",
	)

	expect := []string{
		"move r15, 100",
		"move r1, 65",
		"move [r2+4], -7",
		"move [r3-8], 16",
		"move r4, 7",
		"echo [r0+8]",
		"call 14",
		"jump 15",
	}
	for n, text := range expect {
		assert.Equal(text, prog.Lines[n].Cells[0].String())
	}

	assert.Equal(6, len(prog.Lines[8].Cells))
	assert.Equal(14, prog.Lines[9].Address)
	assert.Equal([]Value{Int(13)}, prog.Lines[10].Cells)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("MEMORY_SIZE", "256")
	asm.Predefine("MEMORY_SIZE", "128")

	prog, err := asm.Parse(strings.NewReader("move r15, $(MEMORY_SIZE-1)\nhalt\n"))
	assert.NoError(err)
	assert.Equal("move r15, 127", prog.Lines[0].Cells[0].String())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"mnemonic", "halt\nbogus r1", 2, ErrInstructionInvalid},
		{"arity", "add r1, r2", 1, ErrArgCount},
		{"label_dup", "a: halt\na: halt", 2, ErrLabelDuplicate},
		{"label_syntax", "1a: halt", 1, ErrLabelSyntax},
		{"offset", "move [r1+40000], 1", 1, ErrOffsetRange},
		{"defint", "DEFINT \"x\"", 1, ErrDirectiveSyntax},
		{"defstr", "DEFSTR 12", 1, ErrDirectiveSyntax},
		{"reserve", "RESERVE -1", 1, ErrDirectiveSyntax},
		{"quote", "DEFSTR \"open", 1, ErrStringSyntax},
		{"equ_dup", ".equ A 1\n.equ A 2", 2, ErrEquateDuplicate},
		{"equ_syntax", ".equ A", 1, ErrEquateSyntax},
		{"indirect_push", "push [r1]", 1, ErrArgIndirect},
		{"move_text", "move r1, \"text\"", 1, ErrArgType},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.text))
		assert.ErrorIs(err, entry.err, entry.name)

		var errSyntax ErrSyntax
		if assert.True(errors.As(err, &errSyntax), entry.name) {
			assert.Equal(entry.lineno, errSyntax.LineNo, entry.name)
		}
	}
}

func TestAssembler_ErrorValues(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("jump @nowhere"))
	var errLabel ErrLabelMissing
	assert.True(errors.As(err, &errLabel))
	assert.Equal(ErrLabelMissing("nowhere"), errLabel)

	_, err = asm.Parse(strings.NewReader("move r1, 12ab"))
	var errNumber ErrParseNumber
	assert.True(errors.As(err, &errNumber))

	_, err = asm.Parse(strings.NewReader("move r1, $(1 +)"))
	assert.Error(err)

	_, err = asm.Parse(strings.NewReader("move r1, $(\"a\")"))
	var errExpr ErrParseExpression
	assert.True(errors.As(err, &errExpr))

	_, err = asm.Parse(strings.NewReader("move r1, [r300]"))
	var errValue ErrParseValue
	assert.True(errors.As(err, &errValue))
}

func TestAssembler_Load(t *testing.T) {
	assert := assert.New(t)

	_, prog := parse(t,
		"        move r15, 60",
		"        call @square",
		"        echo r0",
		"        halt",
		"square: mul r0, r1, r1",
		"        ret",
	)

	cpu, err := NewCpu(64, 16)
	assert.NoError(err)
	assert.NoError(prog.Load(cpu.Memory))
	assert.NoError(cpu.Registers.Set(1, Int(12)))

	// echo needs a console, which this cpu lacks.
	err = cpu.Run()
	assert.ErrorIs(err, ErrConsoleAbsent)
	value, _ := cpu.Registers.Get(0)
	assert.Equal(Int(144), value)
}

func TestAssembler_StringVerbatim(t *testing.T) {
	assert := assert.New(t)

	_, prog := parse(t,
		".equ PRICE 3",
		"        DEFSTR \"cost $(1+1) each\"",
		"        DEFSTR \"$(PRICE) $(missing)\"",
		"        DEFINT $(PRICE+1)",
	)

	assert.Equal([]Value{Text("cost $(1+1) each")}, prog.Lines[0].Cells)
	assert.Equal([]Value{Text("$(PRICE) $(missing)")}, prog.Lines[1].Cells)
	assert.Equal([]Value{Int(4)}, prog.Lines[2].Cells)
}

func TestAssembler_ReserveLimit(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		size   string
		text   string
		lineno int
	}){
		{"huge", "256", "RESERVE 20000000", 1},
		{"past_end", "256", "halt\nRESERVE 256", 2},
		{"expression", "16", "halt\nRESERVE:$(MEMORY_SIZE)", 2},
		{"no_memory_size", "", "RESERVE 2000000000", 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		if len(entry.size) != 0 {
			asm.Predefine("MEMORY_SIZE", entry.size)
		}

		_, err := asm.Parse(strings.NewReader(entry.text))
		assert.ErrorIs(err, ErrDirectiveSyntax, entry.name)
		assert.ErrorIs(err, ErrOutOfRange, entry.name)

		var errSyntax ErrSyntax
		if assert.True(errors.As(err, &errSyntax), entry.name) {
			assert.Equal(entry.lineno, errSyntax.LineNo, entry.name)
		}
	}

	// Filling memory exactly is permitted.
	asm := &Assembler{}
	asm.Predefine("MEMORY_SIZE", "16")
	prog, err := asm.Parse(strings.NewReader("halt\nRESERVE 15\n"))
	assert.NoError(err)
	assert.Equal(16, prog.Size())
}
