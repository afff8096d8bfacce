package log

import (
	"io"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Log output formats accepted by Setup.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Setup installs the process-wide logger writing to w. level is one of the
// names accepted by ParseLevel, format is FormatConsole or FormatJSON.
func Setup(w io.Writer, level, format string) error {
	lvl, ok := ParseLevel(level)
	if !ok {
		return errors.NewConfigurationError("log-level", "expected debug, info, warn or error", level)
	}
	switch format {
	case FormatConsole:
		SetLogger(NewConsoleLogger(w, lvl))
	case FormatJSON:
		SetLogger(NewZerologLogger(w, lvl))
	default:
		return errors.NewConfigurationError("log-format", "expected console or json", format)
	}
	return nil
}
