package io

import (
	"io"
	"strings"
)

// Temporary is an in-memory console. Input lines are consumed in order,
// output accumulates in Output.
type Temporary struct {
	Lines  []string        // Input lines.
	Output strings.Builder // Everything written.

	ReadIndex int
}

var _ Console = (*Temporary)(nil)

// Rewind restarts the input and discards the output.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.Output.Reset()
}

// ReadLine returns the next input line, or io.EOF when all lines are consumed.
func (temp *Temporary) ReadLine() (line string, err error) {
	if temp.ReadIndex >= len(temp.Lines) {
		err = io.EOF
		return
	}

	line = temp.Lines[temp.ReadIndex]
	temp.ReadIndex++
	return
}

// Write appends text to the output.
func (temp *Temporary) Write(text string) (err error) {
	_, err = temp.Output.WriteString(text)
	return
}
