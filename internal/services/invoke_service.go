package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"jarvis/internal/agentruntime"
)

const InvokeAppName = "jarvis_invoke"

// InvokeService sends a single prompt to the agent runtime.
type InvokeService struct {
	runtime agentruntime.Invoker
	logger  *slog.Logger
}

func NewInvokeService(runtime agentruntime.Invoker, logger *slog.Logger) *InvokeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvokeService{runtime: runtime, logger: logger}
}

// Invoke generates a session id when sessionID is empty so the runtime can
// thread follow-up calls.
func (s *InvokeService) Invoke(ctx context.Context, agent, message, sessionID string) (*agentruntime.Result, error) {
	if strings.TrimSpace(agent) == "" {
		return nil, errors.New("agent name is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message is required")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	log := s.logger.With("agent", agent, "session_id", sessionID)
	log.Info("invoking agent")
	start := time.Now()

	res, err := s.runtime.Invoke(ctx, agentruntime.Request{
		Agent:     agent,
		Message:   message,
		SessionID: sessionID,
		Metadata: map[string]any{
			"app_name": InvokeAppName,
			"tags":     []string{InvokeAppName},
		},
	})
	if err != nil {
		log.Error("agent invocation failed", "error", err, "duration", time.Since(start))
		return nil, err
	}
	log.Info("agent invocation complete", "duration", time.Since(start))
	return res, nil
}
