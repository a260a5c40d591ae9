// Package logs builds the slog logger shared by the machine and its tools.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options of a logger.
type Options struct {
	Writer    io.Writer    // Terminal output, os.Stderr if nil.
	Level     slog.Leveler // Minimum level of every sink.
	TracePath string       // If set, JSON records are also written here.
	Journal   bool         // If set, records are also sent to the systemd journal.
}

// New creates a logger fanned out to every configured sink. The returned
// close function releases the trace file.
func New(opts Options) (logger *slog.Logger, closer func() error, err error) {
	closer = func() error { return nil }

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	handlerOptions := &slog.HandlerOptions{
		Level: opts.Level,
	}

	terminalHandler := slog.NewTextHandler(writer, handlerOptions)
	handlers := []slog.Handler{terminalHandler}

	if len(opts.TracePath) != 0 {
		var trace *os.File
		trace, err = os.Create(opts.TracePath)
		if err != nil {
			return
		}
		closer = trace.Close
		handlers = append(handlers, slog.NewJSONHandler(trace, handlerOptions))
	}

	if opts.Journal {
		journalHandler, journalErr := slogjournal.NewHandler(&slogjournal.Options{
			Level: opts.Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if journalErr != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", journalErr)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	logger = slog.New(slogmulti.Fanout(handlers...))
	return
}

// toJournalKey maps an attribute key to a journal field name.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}
