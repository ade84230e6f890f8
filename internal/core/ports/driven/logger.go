package driven

// Logger receives progress and diagnostics from core services.
// Messages use fmt-style formatting.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
}
