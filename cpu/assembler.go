// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ADDRESS_LIMIT bounds RESERVE when no MEMORY_SIZE is predefined.
const ADDRESS_LIMIT = 1 << 20

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"STACK_REGISTER": fmt.Sprintf("%d", STACK_REGISTER),
}

var (
	reLabel    = regexp.MustCompile(`^@?[A-Za-z_][A-Za-z0-9_]*$`)
	reRegister = regexp.MustCompile(`^r([0-9]+)$`)
	reIndirect = regexp.MustCompile(`^\[\s*r([0-9]+)\s*(?:([+-])\s*(.+?))?\s*\]$`)
	reParen    = regexp.MustCompile(`\$\([^\$]*\)`)
)

// statement is a line of program text split into its parts.
type statement struct {
	lineno  int
	line    string
	address int
	name    string
	args    []string
	size    int
}

// Assembler is a two pass assembler for simplecomp program text.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word: a number, a character, a
// label or an equate.
func (asm *Assembler) valueOf(word string) (value int32, err error) {
	if len(word) == 0 {
		err = ErrParseValue(word)
		return
	}

	if equ, ok := asm.Equate[word]; ok && len(equ) != 0 {
		word = equ
	}

	if word[0] == '\'' {
		var r rune
		r, err = asm.character(word)
		value = int32(r)
		return
	}

	if reLabel.MatchString(word) {
		name := strings.TrimPrefix(word, "@")
		address, ok := asm.Label[name]
		if !ok {
			err = ErrLabelMissing(name)
			return
		}
		value = int32(address)
		return
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = int32(uint32(v64))
	return
}

// character decodes a quoted character.
func (asm *Assembler) character(word string) (r rune, err error) {
	text, err := strconv.Unquote(word)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	runes := []rune(text)
	if len(runes) != 1 {
		err = ErrParseNumber(word)
		return
	}

	r = runes[0]
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 int32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

// expand replaces the $(...) expressions in a word with their values.
func (asm *Assembler) expand(word string) (expanded string, err error) {
	expanded = reParen.ReplaceAllStringFunc(word, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	return
}

// parseArgument parses a single instruction argument.
func (asm *Assembler) parseArgument(word string) (arg Argument, err error) {
	if equ, ok := asm.Equate[word]; ok {
		word = equ
	}

	// String literals are kept verbatim.
	if strings.HasPrefix(word, "\"") {
		var text string
		text, err = strconv.Unquote(word)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrStringSyntax, word)
			return
		}
		arg = Literal(text)
		return
	}

	word, err = asm.expand(word)
	if err != nil {
		return
	}

	switch {
	case len(word) == 0:
		err = ErrParseValue(word)
	case word[0] == '[':
		m := reIndirect.FindStringSubmatch(word)
		if m == nil {
			err = ErrParseValue(word)
			return
		}
		var index, offset int
		index, err = asm.registerIndex(m[1])
		if err != nil {
			return
		}
		if len(m[3]) != 0 {
			var value int32
			value, err = asm.valueOf(m[3])
			if err != nil {
				return
			}
			offset = int(value)
			if m[2] == "-" {
				offset = -offset
			}
		}
		if offset < -0x8000 || offset > 0x7fff {
			err = fmt.Errorf("%w: %v", ErrOffsetRange, word)
			return
		}
		arg = Register(MakeDescriptor(index, offset, true))
	case reRegister.MatchString(word):
		var index int
		index, err = asm.registerIndex(reRegister.FindStringSubmatch(word)[1])
		if err != nil {
			return
		}
		arg = Register(MakeDescriptor(index, 0, false))
	default:
		var value int32
		value, err = asm.valueOf(word)
		if err != nil {
			return
		}
		arg = Number(value)
	}

	return
}

// registerIndex parses a register number, which must fit a descriptor.
func (asm *Assembler) registerIndex(digits string) (index int, err error) {
	index, err = strconv.Atoi(digits)
	if err != nil || index > int(DESC_INDEX_MASK) {
		err = ErrParseValue("r" + digits)
	}
	return
}

// stripComment removes a '#' comment, ignoring '#' in quotes.
func stripComment(line string) string {
	quote := rune(0)
	escaped := false
	for n, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote == 0 && r == '#':
			return line[:n]
		}
	}
	return line
}

// splitArgs splits an argument list on commas outside of quotes.
func splitArgs(text string) (args []string, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	quote := rune(0)
	escaped := false
	start := 0
	for n, r := range text {
		switch {
		case escaped:
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote == 0 && r == ',':
			args = append(args, strings.TrimSpace(text[start:n]))
			start = n + 1
		}
	}
	if quote != 0 {
		err = ErrStringSyntax
		return
	}
	args = append(args, strings.TrimSpace(text[start:]))

	for _, arg := range args {
		if len(arg) == 0 {
			err = ErrParseValue(arg)
			return
		}
	}

	return
}

// cutField splits the first whitespace separated field from a line.
func cutField(line string) (field, rest string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	n := strings.IndexFunc(line, unicode.IsSpace)
	if n < 0 {
		return line, ""
	}
	return line[:n], strings.TrimSpace(line[n:])
}

// parseLine splits a line into labels, a mnemonic and its arguments.
// Labels are bound to address. The returned statement is nil for lines
// without content.
func (asm *Assembler) parseLine(line string, lineno int, address int) (stmt *statement, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	text := strings.TrimSpace(stripComment(line))

	// .equ CONST VALUE
	if field, rest := cutField(text); field == ".equ" {
		name, value := cutField(rest)
		if len(name) == 0 || len(value) == 0 || strings.ContainsFunc(value, unicode.IsSpace) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = value
		return
	}

	for len(text) != 0 {
		field, rest := cutField(text)
		if !strings.HasSuffix(field, ":") {
			break
		}
		label := field[:len(field)-1]
		if !reLabel.MatchString(label) {
			err = fmt.Errorf("%w: %v", ErrLabelSyntax, label)
			return
		}
		label = strings.TrimPrefix(label, "@")
		_, ok := asm.Label[label]
		if ok {
			err = fmt.Errorf("%w: %v", ErrLabelDuplicate, label)
			return
		}
		asm.Label[label] = address
		text = rest
	}

	if len(text) == 0 {
		return
	}

	name, rest := cutField(text)
	args, err := splitArgs(rest)
	if err != nil {
		return
	}

	stmt = &statement{
		lineno:  lineno,
		line:    line,
		address: address,
		name:    name,
		args:    args,
		size:    1,
	}

	// RESERVE:n is RESERVE n
	if upper := strings.ToUpper(name); strings.HasPrefix(upper, "RESERVE:") {
		stmt.name = "RESERVE"
		stmt.args = append([]string{name[len("RESERVE:"):]}, args...)
	}

	if strings.ToUpper(stmt.name) == "RESERVE" {
		stmt.size, err = asm.reserveSize(stmt.args, address)
	}

	return
}

// addressLimit is the number of addressable cells: the MEMORY_SIZE
// predefine, or ADDRESS_LIMIT without one.
func (asm *Assembler) addressLimit() int {
	size, err := strconv.Atoi(asm.Equate["MEMORY_SIZE"])
	if err != nil || size <= 0 {
		return ADDRESS_LIMIT
	}
	return size
}

// reserveSize evaluates the cell count of a RESERVE directive at address.
func (asm *Assembler) reserveSize(args []string, address int) (size int, err error) {
	switch len(args) {
	case 0:
		size = 1
		return
	case 1:
		// pass
	default:
		err = fmt.Errorf("%w: RESERVE takes one count", ErrDirectiveSyntax)
		return
	}

	word, err := asm.expand(args[0])
	if err != nil {
		return
	}

	count, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if count < 0 {
		err = fmt.Errorf("%w: RESERVE count %d", ErrDirectiveSyntax, count)
		return
	}
	if limit := asm.addressLimit(); int64(address)+int64(count) > int64(limit) {
		err = fmt.Errorf("%w: RESERVE %d: %w", ErrDirectiveSyntax, count,
			ErrAddress{Address: address + int(count) - 1, Size: limit})
		return
	}

	size = int(count)
	return
}

// assemble generates the cells of a statement.
func (asm *Assembler) assemble(stmt *statement) (cells []Value, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", stmt.lineno)

	args := make([]Argument, len(stmt.args))
	if strings.ToUpper(stmt.name) != "RESERVE" {
		for n, word := range stmt.args {
			args[n], err = asm.parseArgument(word)
			if err != nil {
				return
			}
		}
	}

	switch strings.ToUpper(stmt.name) {
	case "DEFINT":
		if len(args) != 1 || args[0].Kind != ARG_NUMBER {
			err = fmt.Errorf("%w: DEFINT takes one number", ErrDirectiveSyntax)
			return
		}
		cells = []Value{Int(args[0].Value)}
	case "DEFSTR":
		if len(args) != 1 || args[0].Kind != ARG_STRING {
			err = fmt.Errorf("%w: DEFSTR takes one string", ErrDirectiveSyntax)
			return
		}
		cells = []Value{Text(args[0].Text)}
	case "RESERVE":
		cells = make([]Value, stmt.size)
	default:
		var instr Instruction
		instr, err = NewInstruction(stmt.name, args)
		if err != nil {
			return
		}
		cells = []Value{Code(instr)}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// First pass: bind labels and size every statement.
	var stmts []*statement
	address := 0
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			slog.Debug("asm", "lineno", lineno, "line", line)
		}

		var stmt *statement
		stmt, err = asm.parseLine(line, lineno, address)
		if err != nil {
			return
		}
		if stmt == nil {
			continue
		}

		stmts = append(stmts, stmt)
		address += stmt.size
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: all labels are known.
	for _, stmt := range stmts {
		line = stmt.line
		lineno = stmt.lineno

		var cells []Value
		cells, err = asm.assemble(stmt)
		if err != nil {
			return
		}

		words := append([]string{stmt.name}, stmt.args...)
		asm.Lines = append(asm.Lines, Line{
			LineNo:  stmt.lineno,
			Address: stmt.address,
			Words:   words,
			Cells:   cells,
		})
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}
