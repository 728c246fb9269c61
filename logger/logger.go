package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const serviceName = "fetchkit"

// Logger is a zerolog logger carrying fetchkit's common fields.
type Logger struct {
	zl zerolog.Logger
}

var global atomic.Pointer[Logger]

// Init builds the global logger from cfg and sets zerolog's global level.
// Component loggers obtained from Get afterwards inherit it.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	SetGlobalLogger(New(&cfg))
	zerolog.SetGlobalLevel(cfg.level())
}

// New creates a logger writing to cfg.Output.
func New(cfg *Config) *Logger {
	return build(cfg, outputWriter(cfg.Output))
}

// NewWithWriter creates a JSON logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *Logger {
	return build(&Config{Level: level, Format: FormatJSON}, w)
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func build(cfg *Config, w io.Writer) *Logger {
	if strings.EqualFold(cfg.Format, FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000", NoColor: cfg.NoColor}
	}
	zc := zerolog.New(w).Level(cfg.level()).With().Timestamp().Str("service", serviceName)
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger()}
}

// SetGlobalLogger replaces the logger returned by GetGlobalLogger and used
// as the parent of unregistered component loggers.
func SetGlobalLogger(l *Logger) {
	global.Store(l)
	resetComponents()
}

// GetGlobalLogger returns the global logger, creating a console logger on
// stdout when Init was never called.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, New(&Config{Level: "info", Format: FormatConsole}))
	return global.Load()
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{zl: l.zl.With().Str(FieldComponent, name).Logger()}
}

// WithFields returns a child logger carrying fields on every event.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

// WithError returns a child logger carrying err.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().Err(err).Logger()}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error(), msg, fields)
}

// WithComponent tags the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

func emit(e *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, f := range fields {
		e = e.Fields(f)
	}
	e.Msg(msg)
}

func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stderr":
		return os.Stderr
	case "discard":
		return io.Discard
	default:
		return os.Stdout
	}
}
