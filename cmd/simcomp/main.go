// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ezrec/simplecomp/config"
	"github.com/ezrec/simplecomp/debugger"
	"github.com/ezrec/simplecomp/emulator"
	"github.com/ezrec/simplecomp/logs"
	"github.com/ezrec/simplecomp/translate"
)

const (
	EXIT_RUNTIME = 1 // Usage or runtime failure.
	EXIT_PROGRAM = 2 // Program file missing, or failed to assemble.
)

// fail logs a message and exits with a status code.
func fail(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}

// programPath returns the program argument, or asks for it.
func programPath(stdin *bufio.Reader) (path string) {
	switch flag.NArg() {
	case 0:
		// pass
	case 1:
		return flag.Arg(0)
	default:
		fail(EXIT_RUNTIME, "%v: %v", os.Args[0], translate.From("expected a single program path, have %d arguments", flag.NArg()))
	}

	err := translate.Fprint(os.Stdout, "Please provide path to assembler program: \n")
	if err != nil {
		fail(EXIT_RUNTIME, "%v: %v", os.Args[0], err)
	}

	line, err := stdin.ReadString('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		fail(EXIT_RUNTIME, "%v: %v", os.Args[0], err)
	}

	path = strings.TrimSpace(line)
	return
}

func main() {
	var configPath string
	var input string
	var output string
	var verbose bool
	var debug bool

	flag.StringVar(&configPath, "config", "", ".cue machine configuration")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&debug, "debug", false, "Interactive debugger")

	flag.Parse()

	stdin := bufio.NewReader(os.Stdin)

	path := programPath(stdin)

	info, err := os.Stat(path)
	if err != nil {
		fail(EXIT_PROGRAM, "%v: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		fail(EXIT_PROGRAM, "%v: %v", path, translate.From("not a regular file"))
	}

	var configPaths []string
	if len(configPath) != 0 {
		configPaths = append(configPaths, configPath)
	}
	cfg, err := config.Load(configPaths...)
	if err != nil {
		log.Fatalf("%v: %v", configPath, err)
	}

	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}

	logger, closeTrace, err := logs.New(logs.Options{
		Writer:    os.Stderr,
		Level:     level,
		TracePath: cfg.Trace,
		Journal:   cfg.Journal,
	})
	if err != nil {
		log.Fatalf("%v: %v", cfg.Trace, err)
	}
	defer closeTrace()
	slog.SetDefault(logger)

	emu, err := emulator.NewEmulator(cfg.MemorySize, cfg.Registers)
	if err != nil {
		log.Fatalf("%v: %v", configPath, err)
	}
	emu.Verbose = verbose
	emu.Logger = logger
	emu.MaxTicks = cfg.MaxTicks

	inf, err := os.Open(path)
	if err != nil {
		fail(EXIT_PROGRAM, "%v: %v", path, err)
	}
	err = emu.Assemble(inf)
	inf.Close()
	if err != nil {
		fail(EXIT_PROGRAM, "%v: %v", path, err)
	}

	if input == "-" {
		emu.Tape.Input = stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if debug {
		if input == "-" {
			// The terminal belongs to the debugger.
			emu.Tape.Input = strings.NewReader("")
		}
		err = debugger.New(emu).Run()
	} else {
		err = emu.Reset()
		if err == nil {
			err = emu.Run()
		}
	}

	if err != nil {
		logger.Error(path, "error", err, "ticks", emu.Ticks())
		closeTrace()
		os.Exit(EXIT_RUNTIME)
	}

	if verbose {
		logger.Debug("done", "ticks", emu.Ticks())
	}
}
