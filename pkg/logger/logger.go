package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger envuelve zerolog para tener un tipo propio.
type Logger struct {
	zl zerolog.Logger
}

// Config opciones mínimas del logger.
type Config struct {
	Env   string // development => consola pretty; otro => JSON
	Level string // trace, debug, info, warn, error
}

// New construye un logger raíz según la configuración.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(cfg.Env, "development") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level := parseLevel(cfg.Level)
	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With devuelve un logger hijo con un campo adicional constante.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Debug inicia un evento de nivel debug.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info inicia un evento de nivel info.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn inicia un evento de nivel warn.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error inicia un evento de nivel error.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal inicia un evento de nivel fatal (termina el proceso al llamar Msg/Send).
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Nop devuelve un logger que descarta todo (útil en tests).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}
