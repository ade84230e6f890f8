// Package logger provides leveled console logging for mplemon.
// Warnings are always printed; debug and info messages appear once verbose
// mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	level            = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	output io.Writer = os.Stderr
	base             = newZap(os.Stderr)
)

func newZap(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      bracketLevel,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level))
}

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.WarnLevel)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newZap(w)
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	current().Sugar().Debugf(format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	current().Sugar().Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	current().Sugar().Warnf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	if !IsVerbose() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Logger is a handle carrying fixed fields, such as the run id.
// It satisfies the core services' Logger port and always writes through
// the current package output and level.
type Logger struct {
	fields []zap.Field
}

// New returns a Logger tagged with fields.
func New(fields ...zap.Field) *Logger {
	return &Logger{fields: fields}
}

// WithRun returns a Logger tagged with a run id.
func WithRun(id string) *Logger {
	return New(zap.String("run", id))
}

// With returns a copy of l with an extra string field.
func (l *Logger) With(key, value string) *Logger {
	fields := append(append([]zap.Field(nil), l.fields...), zap.String(key, value))
	return &Logger{fields: fields}
}

func (l *Logger) sugar() *zap.SugaredLogger {
	return current().With(l.fields...).Sugar()
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...any) {
	l.sugar().Debugf(format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.sugar().Infof(format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.sugar().Warnf(format, args...)
}
