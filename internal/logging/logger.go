package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inconshreveable/log15"
)

// Output formats accepted by New.
const (
	FormatTerminal = "terminal"
	FormatLogfmt   = "logfmt"
	FormatJSON     = "json"
)

// Config controls the root logger.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds a log15 logger that filters below Level and writes Format to
// Output (stderr when nil).
func New(cfg Config) (log15.Logger, error) {
	level := strings.TrimSpace(strings.ToLower(cfg.Level))
	if level == "" {
		level = "info"
	}
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	format, err := formatFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger := log15.New()
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(out, format)))
	return logger, nil
}

// Discard returns a logger that drops every record.
func Discard() log15.Logger {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())
	return logger
}

// ValidFormat reports whether name is an accepted output format.
func ValidFormat(name string) bool {
	_, err := formatFor(name)
	return err == nil
}

func formatFor(name string) (log15.Format, error) {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "", FormatTerminal:
		return log15.TerminalFormat(), nil
	case FormatLogfmt:
		return log15.LogfmtFormat(), nil
	case FormatJSON:
		return log15.JsonFormat(), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", name)
	}
}
