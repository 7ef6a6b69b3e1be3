// Package logging builds the process logger: JSON to stdout, optionally
// fanned out to a log file and the systemd journal.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"

	"tasklist/internal/config"
)

// New constructs the logger from config. The returned close function
// releases the log file, if any.
func New(cfg config.Config) (*slog.Logger, func(), error) {
	level := cfg.ParseLogLevel()
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{slog.NewJSONHandler(os.Stdout, opts)}
	closeFn := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closeFn = func() { f.Close() }
	}

	if cfg.LogJournal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			// No journal socket; keep going with the remaining handlers.
			slog.New(handlers[0]).Warn("journal handler unavailable", "error", err)
		} else {
			handlers = append(handlers, journal)
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// toJournalKey maps an attribute key to the restricted journald field
// character set (uppercase letters, digits, underscore).
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
