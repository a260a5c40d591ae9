package cpu

import (
	"iter"
)

// Line is a line of assembled program text with the cells it generated.
type Line struct {
	LineNo  int      // Source line number.
	Address int      // Address of the first cell.
	Words   []string // Mnemonic or directive, then its arguments.
	Cells   []Value  // Generated cells; unset cells are reserved space.
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the line that generated the cell at an address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, line := range prog.Lines {
		if address >= line.Address && address < line.Address+len(line.Cells) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: address - line.Address,
			}
			break
		}
	}

	return
}

// Size returns the number of cells the program occupies.
func (prog *Program) Size() (size int) {
	if len(prog.Lines) == 0 {
		return
	}

	last := prog.Lines[len(prog.Lines)-1]
	size = last.Address + len(last.Cells)
	return
}

// Cells iterates over every generated cell and its address.
func (prog *Program) Cells() iter.Seq2[int, Value] {
	return func(yield func(address int, value Value) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Cells {
				if !yield(line.Address+n, value) {
					return
				}
			}
		}
	}
}

// Load writes the program into memory, starting at address 0.
func (prog *Program) Load(mem *Memory) (err error) {
	if size := prog.Size(); size > mem.Size() {
		err = ErrAddress{Address: size - 1, Size: mem.Size()}
		return
	}

	for address, value := range prog.Cells() {
		if !value.IsSet() {
			continue
		}
		err = mem.Write(address, value)
		if err != nil {
			return
		}
	}

	return
}
