// Package io provides the line oriented I/O channels of the simplecomp
// machine: a Tape over a reader and writer pair, and an in-memory
// Temporary console.
package io

// Console defines the interface for the machine's I/O channel.
type Console interface {
	// ReadLine returns the next line of input without its line terminator,
	// or io.EOF when the input is exhausted.
	ReadLine() (line string, err error)
	// Write sends text to the output, as is.
	Write(text string) (err error)
}
