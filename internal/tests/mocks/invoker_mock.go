package mocks

import (
	"context"
	"sync"

	"jarvis/internal/agentruntime"
)

// InvokerMock echoes the message back unless InvokeFunc is set. Every request
// is recorded.
type InvokerMock struct {
	InvokeFunc func(ctx context.Context, req agentruntime.Request) (*agentruntime.Result, error)

	mu       sync.Mutex
	requests []agentruntime.Request
}

func (m *InvokerMock) Invoke(ctx context.Context, req agentruntime.Request) (*agentruntime.Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, req)
	}
	return &agentruntime.Result{Agent: req.Agent, SessionID: req.SessionID, Output: req.Message}, nil
}

func (m *InvokerMock) Requests() []agentruntime.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]agentruntime.Request, len(m.requests))
	copy(out, m.requests)
	return out
}
