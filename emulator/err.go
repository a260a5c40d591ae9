package emulator

import (
	"errors"

	"github.com/ezrec/simplecomp/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int
	Address int
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("line %d address %d %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
