package debugger

import (
	"fmt"
	"strings"

	"github.com/ezrec/simplecomp/cpu"
)

// Row is a name and value pair of the register table.
type Row struct {
	Name  string
	Value string
}

// MemoryRow is a line of the memory table.
type MemoryRow struct {
	Address int
	Value   string
	Source  string // Source line of the cell, if any.
	Current bool   // Set for the cell at the program counter.
}

// cellText renders a cell for display. Text is quoted, so that
// whitespace is visible.
func cellText(value cpu.Value) string {
	switch value.Kind() {
	case cpu.KIND_UNSET:
		return "-"
	case cpu.KIND_TEXT:
		return fmt.Sprintf("%q", value.String())
	}
	return value.String()
}

// RegisterRows lists the program counter, the flag and every register.
func RegisterRows(regs *cpu.Registers) (rows []Row) {
	rows = append(rows,
		Row{Name: "pc", Value: fmt.Sprintf("%d", regs.PC())},
		Row{Name: "flag", Value: fmt.Sprintf("%v", regs.Flag())},
	)

	for n := range regs.Count() {
		value, _ := regs.Get(n)
		name := fmt.Sprintf("r%d", n)
		if n == cpu.STACK_REGISTER {
			name += " (sp)"
		}
		rows = append(rows, Row{Name: name, Value: cellText(value)})
	}

	return
}

// MemoryRows lists count cells of memory around the program counter.
func MemoryRows(mem *cpu.Memory, prog *cpu.Program, pc int, count int) (rows []MemoryRow) {
	start := max(0, pc-count/4)
	end := min(mem.Size(), start+count)
	start = max(0, min(start, end-count))

	for address := start; address < end; address++ {
		value, _ := mem.Read(address)

		row := MemoryRow{
			Address: address,
			Value:   cellText(value),
			Current: address == pc,
		}

		if prog != nil {
			dbg := prog.Debug(address)
			if dbg.Line != nil && dbg.Index == 0 {
				row.Source = fmt.Sprintf("%d: %s", dbg.LineNo, strings.Join(dbg.Words, " "))
			}
		}

		rows = append(rows, row)
	}

	return
}

// Status describes the machine state.
func Status(ticks int, lineno int, halted bool, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("error after %d ticks: %v", ticks, err)
	case halted:
		return fmt.Sprintf("halted after %d ticks", ticks)
	}
	return fmt.Sprintf("ticks %d, line %d", ticks, lineno)
}
