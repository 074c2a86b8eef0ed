package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var levels = map[string]zerolog.Level{
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
	"PANIC": zerolog.PanicLevel,
}

// SetupLogging aligns zerolog field names with the common services log schema.
func SetupLogging() {
	zerolog.LevelFieldName = "level_name"
	zerolog.TimestampFieldName = "timestamp"
}

// NewLogger returns a component-scoped logger. The level is read from
// MDL_COMN_LOGLEVEL and defaults to INFO.
func NewLogger(component string) zerolog.Logger {
	levelValue, ok := levels[os.Getenv("MDL_COMN_LOGLEVEL")]
	if !ok {
		levelValue = zerolog.InfoLevel
	}

	return zerolog.New(os.Stderr).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(levelValue)
}
