// Package config loads the machine configuration from cue files.
package config

import (
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema of a configuration file. Every field has a default.
const Schema = `
memory_size: int & >0 | *256
registers:   int & >15 | *16
max_ticks:   int & >=0 | *0
log_level:   "debug" | "info" | "warn" | "error" | *"info"
trace?:      string
journal:     bool | *false
`

// Config is the machine configuration.
type Config struct {
	MemorySize int    `json:"memory_size"`     // Memory size, in cells.
	Registers  int    `json:"registers"`       // General purpose register count.
	MaxTicks   int    `json:"max_ticks"`       // Tick limit, 0 for none.
	LogLevel   string `json:"log_level"`       // Minimum log level.
	Trace      string `json:"trace,omitempty"` // JSON trace file, if any.
	Journal    bool   `json:"journal"`         // Log to the systemd journal.
}

// Load reads and validates configuration files. Later files refine earlier
// ones; conflicting values are an error. With no files, the defaults are
// returned.
func Load(paths ...string) (cfg Config, err error) {
	ctx := cuecontext.New()

	value := ctx.CompileString("close({" + Schema + "})")
	if err = value.Err(); err != nil {
		return
	}

	for _, path := range paths {
		var content []byte
		content, err = os.ReadFile(path)
		if err != nil {
			return
		}

		file := ctx.CompileBytes(content, cue.Filename(path))
		if err = file.Err(); err != nil {
			return
		}

		value = value.Unify(file)
	}

	if err = value.Validate(); err != nil {
		return
	}

	err = value.Decode(&cfg)
	return
}

// Level returns the slog level of the configured log level.
func (cfg Config) Level() slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
