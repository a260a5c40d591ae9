package cpu

// Resolve reads the value named by a descriptor: the register itself when
// direct, or the memory cell at the effective address when indirect.
// A cell that was never written is set to zero by the read.
func (cpu *Cpu) Resolve(d Descriptor) (value Value, err error) {
	if !d.Indirect() {
		regs := cpu.Registers
		index := d.Index()
		value, err = regs.Get(index)
		if err != nil || value.IsSet() {
			return
		}
		err = regs.Set(index, Int(0))
		if err != nil {
			return
		}
		value, err = regs.Get(index)
		return
	}

	address, err := cpu.EffectiveAddress(d)
	if err != nil {
		return
	}

	mem := cpu.Memory
	value, err = mem.Read(address)
	if err != nil || value.IsSet() {
		return
	}
	err = mem.Write(address, Int(0))
	if err != nil {
		return
	}
	value, err = mem.Read(address)
	return
}

// Assign writes the value named by a descriptor.
func (cpu *Cpu) Assign(d Descriptor, value Value) (err error) {
	if !d.Indirect() {
		err = cpu.Registers.Set(d.Index(), value)
		return
	}

	address, err := cpu.EffectiveAddress(d)
	if err != nil {
		return
	}

	err = cpu.Memory.Write(address, value)
	return
}

// resolveInt resolves a descriptor that must hold an integer.
func (cpu *Cpu) resolveInt(d Descriptor) (value int32, err error) {
	v, err := cpu.Resolve(d)
	if err != nil {
		return
	}

	value, err = v.Int()
	return
}
