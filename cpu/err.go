package cpu

import (
	"errors"

	"github.com/ezrec/simplecomp/translate"
)

var f = translate.From

var (
	// Machine construction errors
	ErrMemorySize    = errors.New(f("memory size must be greater than 0"))
	ErrRegisterCount = errors.New(f("register count must be greater than %d", STACK_REGISTER))

	// Addressing errors
	ErrOutOfRange    = errors.New(f("out of range"))
	ErrTypeMismatch  = errors.New(f("type mismatch"))
	ErrStackPointer  = errors.New(f("stack pointer is not an integer"))
	ErrNotCode       = errors.New(f("not an instruction"))
	ErrInputClosed   = errors.New(f("input closed"))
	ErrConsoleAbsent = errors.New(f("console not attached"))

	// Instruction construction errors
	ErrArgCount           = errors.New(f("argument count"))
	ErrArgType            = errors.New(f("argument type"))
	ErrArgIndirect        = errors.New(f("indirect register not permitted"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelSyntax     = errors.New(f("label syntax"))
	ErrDirectiveSyntax = errors.New(f("directive syntax"))
	ErrOffsetRange     = errors.New(f("offset does not fit 16 bits"))
	ErrStringSyntax    = errors.New(f("string syntax"))
)

// ErrRegister is an out of range register index.
type ErrRegister struct {
	Index int
	Count int
}

func (err ErrRegister) Error() string {
	return f("register %d out of range [0, %d)", err.Index, err.Count)
}

func (err ErrRegister) Is(target error) bool {
	return target == ErrOutOfRange
}

// ErrAddress is an out of range memory address.
type ErrAddress struct {
	Address int
	Size    int
}

func (err ErrAddress) Error() string {
	return f("address %d out of range [0, %d)", err.Address, err.Size)
}

func (err ErrAddress) Is(target error) bool {
	return target == ErrOutOfRange
}

// ErrProgramCounter is an attempt to set a negative program counter.
type ErrProgramCounter int

func (err ErrProgramCounter) Error() string {
	return f("program counter %d is negative", int(err))
}

func (err ErrProgramCounter) Is(target error) bool {
	return target == ErrOutOfRange
}

// ErrArgument locates a construction error on a single argument.
type ErrArgument struct {
	Index int
	Err   error
}

func (err ErrArgument) Error() string {
	return f("argument %d: %v", err.Index, err.Err)
}

func (err ErrArgument) Unwrap() error {
	return err.Err
}

// ErrFetch is a failed instruction fetch.
type ErrFetch struct {
	Address int
	Err     error
}

func (err *ErrFetch) Error() string {
	return f("fetch at %d: %v", err.Address, err.Err)
}

func (err *ErrFetch) Unwrap() error {
	return err.Err
}

// ErrExecute is a fatal error raised by an executing instruction.
type ErrExecute struct {
	Address int
	Text    string
	Err     error
}

func (err *ErrExecute) Error() string {
	return f("%d '%v' %v", err.Address, err.Text, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
