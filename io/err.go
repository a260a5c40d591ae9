package io

import (
	"errors"

	"github.com/ezrec/simplecomp/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrNoInput  = errors.New(f("no input attached"))
	ErrNoOutput = errors.New(f("no output attached"))
)
