package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	assert := assert.New(t)

	var unset Value
	assert.False(unset.IsSet())
	assert.Equal(KIND_UNSET, unset.Kind())
	assert.Equal("null", unset.String())

	num := Int(-42)
	assert.True(num.IsSet())
	assert.Equal(KIND_INTEGER, num.Kind())
	assert.Equal("-42", num.String())
	v, err := num.Int()
	assert.NoError(err)
	assert.Equal(int32(-42), v)
	_, err = num.Text()
	assert.ErrorIs(err, ErrTypeMismatch)

	text := Text("hello")
	assert.Equal(KIND_TEXT, text.Kind())
	assert.Equal("hello", text.String())
	_, err = text.Int()
	assert.ErrorIs(err, ErrTypeMismatch)

	halt := &InstrHalt{}
	code := Code(halt)
	assert.Equal(KIND_INSTRUCTION, code.Kind())
	assert.Equal("halt", code.String())
	instr, err := code.Instruction()
	assert.NoError(err)
	assert.Same(halt, instr)
	_, err = num.Instruction()
	assert.ErrorIs(err, ErrTypeMismatch)
}

func TestValue_Equal(t *testing.T) {
	assert := assert.New(t)

	jump := &InstrJump{target: 1}

	table := [](struct {
		name  string
		a, b  Value
		equal bool
	}){
		{"unset", Value{}, Value{}, true},
		{"int", Int(3), Int(3), true},
		{"int_differ", Int(3), Int(4), false},
		{"text", Text("a"), Text("a"), true},
		{"text_int", Text("3"), Int(3), false},
		{"unset_zero", Value{}, Int(0), false},
		{"code_same", Code(jump), Code(jump), true},
		{"code_other", Code(jump), Code(&InstrJump{target: 1}), false},
	}

	for _, entry := range table {
		assert.Equal(entry.equal, entry.a.Equal(entry.b), entry.name)
		assert.Equal(entry.equal, entry.b.Equal(entry.a), entry.name)
	}
}
