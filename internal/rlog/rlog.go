// Package rlog is the library's internal diagnostic logger.
//
// richline writes directly to the user's terminal, so by default nothing is
// logged anywhere: an unexpected line on stdout/stderr would corrupt the
// very screen the line editor is drawing on. A host that wants visibility
// calls ToFile to redirect structured logs to a file, mirroring the
// debug-file pattern used by TUI programs that can't log to the console
// they're drawing on.
package rlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(io.Discard)

// ToFile redirects the package logger to the file at path, creating or
// appending to it, at the given zerolog level. Pass zerolog.Disabled to
// silence logging again.
func ToFile(path string, level zerolog.Level) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return nil
}

// Disable silences the logger, discarding everything written to it.
func Disable() {
	logger = zerolog.New(io.Discard)
}

func Debug(msg string) { logger.Debug().Msg(msg) }

func Debugf(format string, args ...interface{}) { logger.Debug().Msgf(format, args...) }

func Warnf(format string, args ...interface{}) { logger.Warn().Msgf(format, args...) }
