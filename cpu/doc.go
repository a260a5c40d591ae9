// Package cpu implements the simplecomp virtual machine and its assembler.
//
// The machine consists of a register file (at least 16 general-purpose
// registers, a program counter, and a flag), a fixed size memory of untyped
// cells, and a fetch-execute loop. Register 15 is used by convention as a
// descending stack pointer for push, pop, call and ret.
//
// Operands name registers through 32-bit register descriptors, which carry a
// register index, a signed 16-bit offset, and an indirect flag. Indirect
// descriptors address the memory cell at the register's value plus the
// offset.
//
// The assembler translates the simplecomp program text, with labels,
// DEFINT/DEFSTR/RESERVE directives, equates and compile-time expressions,
// into a program listing that is loaded into memory.
package cpu
