// Package debugger is an interactive single-step viewer of the machine.
package debugger

import (
	"bytes"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ezrec/simplecomp/emulator"
)

const (
	MEMORY_ROWS    = 32     // Memory cells shown around the program counter.
	CONTINUE_LIMIT = 100000 // Ticks run by a single continue.
)

const help = "[yellow]s[-]/Enter step  [yellow]c[-] continue  [yellow]r[-] reset  [yellow]q[-]/Esc quit"

// Debugger shows the registers, the memory and the output of an emulator,
// and steps it on key presses.
type Debugger struct {
	emu *emulator.Emulator

	app *tview.Application

	registerView *tview.Table
	memoryView   *tview.Table
	outputView   *tview.TextView
	statusView   *tview.TextView

	output bytes.Buffer
	halted bool
	err    error
}

// New creates a debugger of an emulator, which must hold a program.
// The emulator's tape output is captured by the debugger.
func New(emu *emulator.Emulator) (dbg *Debugger) {
	dbg = &Debugger{
		emu: emu,
		app: tview.NewApplication(),
	}

	emu.Tape.Output = &dbg.output

	dbg.registerView = tview.NewTable().SetBorders(false)
	dbg.registerView.SetTitle("Registers").SetBorder(true)

	dbg.memoryView = tview.NewTable().SetBorders(false)
	dbg.memoryView.SetTitle("Memory").SetBorder(true)

	dbg.outputView = tview.NewTextView().SetDynamicColors(false)
	dbg.outputView.SetTitle("Output").SetBorder(true)

	dbg.statusView = tview.NewTextView().SetDynamicColors(true)

	helpView := tview.NewTextView().SetDynamicColors(true).SetText(help)

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(dbg.memoryView, 0, 3, false).
		AddItem(dbg.outputView, 0, 1, false)

	mainPane := tview.NewFlex().
		AddItem(dbg.registerView, 28, 0, false).
		AddItem(rightPane, 0, 1, true)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainPane, 0, 1, true).
		AddItem(dbg.statusView, 1, 0, false).
		AddItem(helpView, 1, 0, false)

	root.SetInputCapture(dbg.handleKey)
	dbg.app.SetRoot(root, true).SetFocus(root)

	return
}

// Run resets the emulator and runs the debugger until quit.
func (dbg *Debugger) Run() (err error) {
	dbg.Reset()

	err = dbg.app.Run()
	if err != nil {
		return
	}

	err = dbg.err
	return
}

// Stop quits the debugger.
func (dbg *Debugger) Stop() {
	dbg.app.Stop()
}

func (dbg *Debugger) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		dbg.Stop()
		return nil
	case tcell.KeyEnter:
		dbg.Step()
		return nil
	}

	switch event.Rune() {
	case 's', 'n', ' ':
		dbg.Step()
		return nil
	case 'c':
		dbg.Continue()
		return nil
	case 'r':
		dbg.Reset()
		return nil
	case 'q':
		dbg.Stop()
		return nil
	}

	return event
}

// Reset reloads the program, and clears the output.
func (dbg *Debugger) Reset() {
	dbg.output.Reset()
	dbg.halted = false
	dbg.err = dbg.emu.Reset()
	dbg.Draw()
}

// Step executes a single instruction.
func (dbg *Debugger) Step() {
	dbg.tick()
	dbg.Draw()
}

// Continue executes until the machine halts, fails or reaches the
// emulator's tick limit.
func (dbg *Debugger) Continue() {
	for range CONTINUE_LIMIT {
		if !dbg.tick() {
			break
		}
	}
	dbg.Draw()
}

// tick executes an instruction, returning false once the machine stopped.
func (dbg *Debugger) tick() bool {
	if dbg.halted || dbg.err != nil {
		return false
	}

	emu := dbg.emu
	if emu.MaxTicks > 0 && emu.Ticks() >= emu.MaxTicks {
		dbg.err = &emulator.ErrRuntime{LineNo: emu.LineNo(), Address: emu.PC(), Err: emulator.ErrTickLimit}
		return false
	}

	dbg.halted, dbg.err = emu.Tick()
	return !dbg.halted && dbg.err == nil
}

// Draw refreshes every view.
func (dbg *Debugger) Draw() {
	emu := dbg.emu

	dbg.registerView.Clear()
	for n, row := range RegisterRows(emu.Cpu.Registers) {
		dbg.registerView.SetCell(n, 0, tview.NewTableCell(row.Name).
			SetAttributes(tcell.AttrBold))
		dbg.registerView.SetCell(n, 1, tview.NewTableCell(row.Value).
			SetAlign(tview.AlignRight))
	}

	dbg.memoryView.Clear()
	for n, row := range MemoryRows(emu.Cpu.Memory, emu.Program, emu.PC(), MEMORY_ROWS) {
		address := tview.NewTableCell(fmt.Sprintf("%04d", row.Address)).
			SetTextColor(tcell.ColorDimGray)
		value := tview.NewTableCell(row.Value)
		source := tview.NewTableCell(row.Source).SetExpansion(1)
		if row.Current {
			value.SetAttributes(tcell.AttrReverse)
			source.SetTextColor(tcell.ColorYellow)
		}
		dbg.memoryView.SetCell(n, 0, address)
		dbg.memoryView.SetCell(n, 1, value)
		dbg.memoryView.SetCell(n, 2, source)
	}

	dbg.outputView.SetText(dbg.output.String())
	dbg.outputView.ScrollToEnd()

	status := Status(emu.Ticks(), emu.LineNo(), dbg.halted, dbg.err)
	if dbg.err != nil {
		status = "[red]" + tview.Escape(status) + "[-]"
	}
	dbg.statusView.SetText(status)
}
