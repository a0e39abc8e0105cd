package tooltip

import (
	"context"
	"log/slog"
	"time"
)

// LogLevel grades a LogEvent.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
)

// LogEvent describes something the engine did or failed to do.
type LogEvent struct {
	Level     LogLevel
	Message   string
	TooltipID string
	State     State
	Fields    map[string]any
	Duration  time.Duration
	Err       error
}

// Logger records engine events.
type Logger interface {
	Log(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// Log implements Logger.
func (f LoggerFunc) Log(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) Log(LogEvent) {}

// SlogLogger forwards events to a slog.Logger. A nil logger uses
// slog.Default.
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Log(event LogEvent) {
	attrs := make([]slog.Attr, 0, len(event.Fields)+4)
	if event.TooltipID != "" {
		attrs = append(attrs, slog.String("tooltip", event.TooltipID), slog.String("state", event.State.String()))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}
	for key, value := range event.Fields {
		attrs = append(attrs, slog.Any(key, value))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	l.logger.LogAttrs(context.Background(), slogLevel(event.Level), event.Message, attrs...)
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
