package events

import (
	"context"
	"log/slog"
)

var Emit = func(ctx context.Context, name string, evt ToolEvent) {}

// EnableLogEmitter routes every event to logger at a level matching its type.
func EnableLogEmitter(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	SetCustomEmitter(func(ctx context.Context, name string, evt ToolEvent) {
		logEvent(ctx, logger, name, evt)
	})
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt ToolEvent)) {
	if f == nil {
		Emit = func(context.Context, string, ToolEvent) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt ToolEvent) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}
		f(ctx, name, evt)
	}
}

func logEvent(ctx context.Context, logger *slog.Logger, name string, evt ToolEvent) {
	level := slog.LevelInfo
	switch evt.Type {
	case EventError:
		level = slog.LevelError
	case EventWarn:
		level = slog.LevelWarn
	case EventInfo:
		level = slog.LevelDebug
	}

	attrs := []any{"event", name, "id", evt.ID}
	if evt.SessionKey != "" {
		attrs = append(attrs, "session", evt.SessionKey)
	}
	for k, v := range evt.Metadata {
		attrs = append(attrs, k, v)
	}
	logger.Log(ctx, level, evt.Message, attrs...)
}
