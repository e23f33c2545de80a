package events

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event names passed to Emit.
const (
	JarvisEventTool  = "event:jarvis:tool"
	JarvisEventBatch = "event:jarvis:batch"
)

// ToolEvent describes one tool call or batch stage.
type ToolEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type sessionKey struct{}

// WithSession tags ctx with the jarvis session the following events belong
// to. Blank sessions leave ctx as is.
func WithSession(ctx context.Context, session string) context.Context {
	if strings.TrimSpace(session) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	session, _ := ctx.Value(sessionKey{}).(string)
	return session
}

func newEvent(t EventType, message string) ToolEvent {
	return ToolEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func NewInfo(message string) ToolEvent    { return newEvent(EventInfo, message) }
func NewWarn(message string) ToolEvent    { return newEvent(EventWarn, message) }
func NewError(message string) ToolEvent   { return newEvent(EventError, message) }
func NewSuccess(message string) ToolEvent { return newEvent(EventSuccess, message) }

// WithMetadata returns a copy of e with key set. e itself is not modified.
func (e ToolEvent) WithMetadata(key, value string) ToolEvent {
	md := make(map[string]string, len(e.Metadata)+1)
	maps.Copy(md, e.Metadata)
	md[key] = value
	e.Metadata = md
	return e
}
