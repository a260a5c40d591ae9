package io

import (
	"bufio"
	"io"
	"strings"
)

// Tape provides sequential line I/O over an io.Reader for input and an
// io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

var _ Console = (*Tape)(nil)

// ReadLine reads the next line of input. A final line without a line
// terminator is returned as is; io.EOF follows it.
func (tc *Tape) ReadLine() (line string, err error) {
	if tc.Input == nil {
		err = ErrNoInput
		return
	}

	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}

	line, err = tc.reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err != nil {
		return
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return
}

// Write writes text to the output.
func (tc *Tape) Write(text string) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	_, err = io.WriteString(tc.Output, text)
	return
}
