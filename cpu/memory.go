package cpu

import (
	"iter"
	"maps"
	"slices"
)

// Memory is a sparse, fixed capacity array of cells.
type Memory struct {
	size  int
	cells map[int]Value
}

// NewMemory creates a memory of size unset cells.
func NewMemory(size int) (mem *Memory, err error) {
	if size <= 0 {
		err = ErrMemorySize
		return
	}

	mem = &Memory{
		size:  size,
		cells: make(map[int]Value, max(32, size/8)),
	}

	return
}

// Size returns the capacity of the memory.
func (mem *Memory) Size() int {
	return mem.size
}

// Reset unsets all cells.
func (mem *Memory) Reset() {
	clear(mem.cells)
}

func (mem *Memory) check(address int) (err error) {
	if address < 0 || address >= mem.size {
		err = ErrAddress{Address: address, Size: mem.size}
	}
	return
}

// Read returns the content of a cell. A cell never written is unset.
func (mem *Memory) Read(address int) (value Value, err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	value = mem.cells[address]
	return
}

// Write replaces the content of a cell.
func (mem *Memory) Write(address int, value Value) (err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	if value.IsSet() {
		mem.cells[address] = value
	} else {
		delete(mem.cells, address)
	}
	return
}

// Cells iterates over the written cells in address order.
func (mem *Memory) Cells() iter.Seq2[int, Value] {
	return func(yield func(address int, value Value) bool) {
		for _, address := range slices.Sorted(maps.Keys(mem.cells)) {
			if !yield(address, mem.cells[address]) {
				return
			}
		}
	}
}
