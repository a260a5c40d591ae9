package cpu

import (
	"fmt"
)

// Register descriptor field layout.
const (
	DESC_INDEX_MASK    = uint32(0x0000_00ff) // Register index, bits 0-7.
	DESC_OFFSET_MASK   = uint32(0x00ff_ff00) // Signed offset, bits 8-23.
	DESC_OFFSET_SHIFT  = 8
	DESC_INDIRECT_MASK = uint32(0x0100_0000) // Indirect flag, bit 24.
)

// Descriptor is a register descriptor: an index, a 16-bit signed offset,
// and an indirect addressing flag packed in a 32-bit word.
type Descriptor uint32

// MakeDescriptor encodes a register descriptor.
func MakeDescriptor(index int, offset int, indirect bool) Descriptor {
	word := uint32(index) & DESC_INDEX_MASK
	word |= (uint32(offset) << DESC_OFFSET_SHIFT) & DESC_OFFSET_MASK
	if indirect {
		word |= DESC_INDIRECT_MASK
	}
	return Descriptor(word)
}

// Index returns the register index.
func (d Descriptor) Index() int {
	return int(uint32(d) & DESC_INDEX_MASK)
}

// Indirect returns true if the descriptor addresses memory through the register.
func (d Descriptor) Indirect() bool {
	return (uint32(d) & DESC_INDIRECT_MASK) != 0
}

// Offset returns the sign-extended offset.
func (d Descriptor) Offset() int {
	field := uint16((uint32(d) & DESC_OFFSET_MASK) >> DESC_OFFSET_SHIFT)
	return int(int16(field))
}

// Direct returns the direct descriptor of the same register.
func (d Descriptor) Direct() Descriptor {
	return MakeDescriptor(d.Index(), 0, false)
}

func (d Descriptor) String() string {
	if !d.Indirect() {
		return fmt.Sprintf("r%d", d.Index())
	}

	offset := d.Offset()
	switch {
	case offset > 0:
		return fmt.Sprintf("[r%d+%d]", d.Index(), offset)
	case offset < 0:
		return fmt.Sprintf("[r%d%d]", d.Index(), offset)
	}
	return fmt.Sprintf("[r%d]", d.Index())
}

// EffectiveAddress computes the memory address of an indirect descriptor:
// the integer in the descriptor's register plus its offset.
func (cpu *Cpu) EffectiveAddress(d Descriptor) (address int, err error) {
	base, err := cpu.Resolve(d.Direct())
	if err != nil {
		return
	}

	value, err := base.Int()
	if err != nil {
		err = fmt.Errorf("%w: r%d holds %v", err, d.Index(), base.Kind())
		return
	}

	address = int(value) + d.Offset()
	return
}
