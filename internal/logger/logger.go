package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Logger is the global logger instance
	Logger zerolog.Logger
)

// stdout carries the bar protocol, so every log line goes to stderr.
func init() {
	Logger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = Logger
}

// LogLevel represents the logging level
type LogLevel string

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

// Levels lists the level names accepted in configuration
func Levels() []LogLevel {
	return []LogLevel{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel}
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to warn.
func ParseLevel(level string) zerolog.Level {
	switch LogLevel(strings.ToLower(level)) {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel, "warning":
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case DisabledLevel, "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// Init initializes the global logger with the specified level.
// Console formatting is used when stderr is a terminal.
func Init(level string) {
	InitWithWriter(level, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
}

// InitWithWriter initializes the global logger writing to out.
func InitWithWriter(level string, out io.Writer, pretty bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	output := out
	if pretty {
		if f, ok := out.(*os.File); ok {
			output = colorable.NewColorable(f)
		}
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Logger()

	log.Logger = Logger
}

// WithComponent returns a logger with a component field set
func WithComponent(component string) *zerolog.Logger {
	l := Logger.With().Str("component", component).Logger()
	return &l
}
