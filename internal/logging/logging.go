// Package logging owns the process-wide zerolog logger. The TUI draws on
// stdout, so logs go to a file under the state dir instead.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todoc/internal/config"
)

const logFileName = "todoc.log"

var globalLogger = zerolog.New(io.Discard)

// L returns the global logger.
func L() *zerolog.Logger {
	return &globalLogger
}

// Init opens the log file and configures the global logger. When the state
// dir cannot be created the logger stays a no-op; the client still works.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	dir, err := config.Dir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}

	globalLogger = zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}
