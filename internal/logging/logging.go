package logging

import (
	"io"
	"strings"
	"time"

	gnarklog "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// ParseLevel maps a config log level to zerolog. Unknown values fall back
// to warn so narration on stdout is not buried.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// New builds a human readable logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Setup builds the process logger and hands it to gnark as well, so circuit
// compilation and proving report through the same writer.
func Setup(w io.Writer, level string) zerolog.Logger {
	l := New(w, level)
	gnarklog.Set(l)
	l.Debug().Str("loglevel", l.GetLevel().String()).Msg("Logging set up")
	return l
}
