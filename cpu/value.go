package cpu

import (
	"strconv"
)

//go:generate go tool stringer -linecomment -type=Kind

// Kind is the type of the content of a register or memory cell.
type Kind int

const (
	KIND_UNSET       = Kind(0) // unset
	KIND_INTEGER     = Kind(1) // integer
	KIND_TEXT        = Kind(2) // text
	KIND_INSTRUCTION = Kind(3) // instruction
)

// Value is the content of a register or memory cell.
// The zero Value is unset.
type Value struct {
	kind  Kind
	num   int32
	text  string
	instr Instruction
}

// Int makes an integer value.
func Int(value int32) Value {
	return Value{kind: KIND_INTEGER, num: value}
}

// Text makes a text value.
func Text(value string) Value {
	return Value{kind: KIND_TEXT, text: value}
}

// Code makes a value holding an instruction.
func Code(instr Instruction) Value {
	return Value{kind: KIND_INSTRUCTION, instr: instr}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsSet is false only for a cell that was never written.
func (v Value) IsSet() bool {
	return v.kind != KIND_UNSET
}

// Int returns the integer content.
func (v Value) Int() (value int32, err error) {
	if v.kind != KIND_INTEGER {
		err = ErrTypeMismatch
		return
	}

	value = v.num
	return
}

// Text returns the text content.
func (v Value) Text() (value string, err error) {
	if v.kind != KIND_TEXT {
		err = ErrTypeMismatch
		return
	}

	value = v.text
	return
}

// Instruction returns the instruction content.
func (v Value) Instruction() (instr Instruction, err error) {
	if v.kind != KIND_INSTRUCTION {
		err = ErrTypeMismatch
		return
	}

	instr = v.instr
	return
}

// Equal compares kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KIND_INTEGER:
		return v.num == other.num
	case KIND_TEXT:
		return v.text == other.text
	case KIND_INSTRUCTION:
		return v.instr == other.instr
	}

	return true
}

// String is the textual form written by echo.
func (v Value) String() string {
	switch v.kind {
	case KIND_INTEGER:
		return strconv.FormatInt(int64(v.num), 10)
	case KIND_TEXT:
		return v.text
	case KIND_INSTRUCTION:
		return v.instr.String()
	}

	return "null"
}
