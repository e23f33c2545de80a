package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/agentruntime"
	"jarvis/internal/events"
	"jarvis/internal/tests/mocks"
	"jarvis/internal/utils"
)

func TestInvokeService_GeneratesSessionID(t *testing.T) {
	runtime := &mocks.InvokerMock{}
	s := NewInvokeService(runtime, utils.DiscardLogger())

	res, err := s.Invoke(context.Background(), "joke_agent", "Tell me a joke", "")
	require.NoError(t, err)
	assert.Equal(t, "Tell me a joke", res.Output)

	reqs := runtime.Requests()
	require.Len(t, reqs, 1)
	_, err = uuid.Parse(reqs[0].SessionID)
	assert.NoError(t, err)
	assert.Equal(t, InvokeAppName, reqs[0].Metadata["app_name"])
}

func TestInvokeService_KeepsSessionID(t *testing.T) {
	runtime := &mocks.InvokerMock{}
	s := NewInvokeService(runtime, utils.DiscardLogger())

	res, err := s.Invoke(context.Background(), "weather_agent", "Weather in Tokyo?", "session-42")
	require.NoError(t, err)
	assert.Equal(t, "session-42", res.SessionID)
}

func TestInvokeService_PropagatesRuntimeError(t *testing.T) {
	boom := errors.New("runtime down")
	runtime := &mocks.InvokerMock{
		InvokeFunc: func(context.Context, agentruntime.Request) (*agentruntime.Result, error) {
			return nil, boom
		},
	}
	_, err := NewInvokeService(runtime, utils.DiscardLogger()).Invoke(context.Background(), "joke_agent", "hi", "")
	assert.ErrorIs(t, err, boom)
}

func TestInvokeService_RequiresAgentAndMessage(t *testing.T) {
	s := NewInvokeService(&mocks.InvokerMock{}, utils.DiscardLogger())

	_, err := s.Invoke(context.Background(), " ", "hi", "")
	assert.EqualError(t, err, "agent name is required")

	_, err = s.Invoke(context.Background(), "joke_agent", "", "")
	assert.EqualError(t, err, "message is required")
}

func TestBatchService_RejectsAgentOutsideGate(t *testing.T) {
	runtime := &mocks.InvokerMock{}
	s := NewBatchService(runtime, []string{"joke_agent", "weather_agent"}, 2, utils.DiscardLogger())

	_, err := s.Run(context.Background(), "jarvis", []string{"hi"})
	assert.ErrorIs(t, err, ErrAgentNotBatchEnabled)
	assert.ErrorContains(t, err, "Agent 'jarvis' is not enabled for batch processing. Valid batch-enabled agents: joke_agent, weather_agent")
	assert.Empty(t, runtime.Requests())
}

func TestBatchService_RejectsEmptyRecords(t *testing.T) {
	s := NewBatchService(&mocks.InvokerMock{}, []string{"joke_agent"}, 2, utils.DiscardLogger())

	_, err := s.Run(context.Background(), "joke_agent", nil)
	assert.ErrorIs(t, err, ErrEmptyRecords)
}

func TestBatchService_CapturesPerRecordFailures(t *testing.T) {
	runtime := &mocks.InvokerMock{
		InvokeFunc: func(_ context.Context, req agentruntime.Request) (*agentruntime.Result, error) {
			if req.Message == "bad" {
				return nil, fmt.Errorf("cannot answer %q", req.Message)
			}
			return &agentruntime.Result{Output: "ok: " + req.Message}, nil
		},
	}
	s := NewBatchService(runtime, []string{"joke_agent"}, 2, utils.DiscardLogger())

	res, err := s.Run(context.Background(), "joke_agent", []string{"one", "bad", "three"})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total())
	assert.Equal(t, RecordResult{Index: 0, Success: true, Output: "ok: one"}, res.Results[0])
	assert.Equal(t, RecordResult{Index: 1, Error: `cannot answer "bad"`}, res.Results[1])
	assert.Equal(t, RecordResult{Index: 2, Success: true, Output: "ok: three"}, res.Results[2])
	assert.Len(t, res.Successes(), 2)
	assert.Len(t, res.Failures(), 1)

	for _, req := range runtime.Requests() {
		assert.Equal(t, BatchAppName, req.Metadata["app_name"])
		assert.Equal(t, "joke_agent", req.Metadata["user_id"])
	}
}

func TestBatchService_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	runtime := &mocks.InvokerMock{
		InvokeFunc: func(_ context.Context, req agentruntime.Request) (*agentruntime.Result, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return &agentruntime.Result{Output: req.Message}, nil
		},
	}
	s := NewBatchService(runtime, []string{"joke_agent"}, 3, utils.DiscardLogger())

	records := make([]string, 20)
	for i := range records {
		records[i] = fmt.Sprintf("prompt %d", i)
	}
	res, err := s.Run(context.Background(), "joke_agent", records)
	require.NoError(t, err)
	assert.Len(t, res.Successes(), 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestBatchService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewBatchService(&mocks.InvokerMock{}, []string{"joke_agent"}, 1, utils.DiscardLogger())
	_, err := s.Run(ctx, "joke_agent", []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchService_EmitsStartAndCompletionEvents(t *testing.T) {
	t.Cleanup(func() { events.SetCustomEmitter(nil) })

	var got []events.ToolEvent
	events.SetCustomEmitter(func(_ context.Context, name string, evt events.ToolEvent) {
		assert.Equal(t, events.JarvisEventBatch, name)
		got = append(got, evt)
	})

	runtime := &mocks.InvokerMock{
		InvokeFunc: func(_ context.Context, req agentruntime.Request) (*agentruntime.Result, error) {
			if req.Message == "bad" {
				return nil, errors.New("nope")
			}
			return &agentruntime.Result{Output: "ok"}, nil
		},
	}
	s := NewBatchService(runtime, []string{"joke_agent"}, 1, utils.DiscardLogger())

	_, err := s.Run(context.Background(), "joke_agent", []string{"good"})
	require.NoError(t, err)
	_, err = s.Run(context.Background(), "joke_agent", []string{"good", "bad"})
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, events.EventInfo, got[0].Type)
	assert.Equal(t, "jarvis_batch: running 1 records", got[0].Message)
	assert.Equal(t, events.EventSuccess, got[1].Type)
	assert.Equal(t, "jarvis_batch: 1/1 records succeeded", got[1].Message)
	assert.Equal(t, events.EventInfo, got[2].Type)
	assert.Equal(t, "joke_agent", got[2].Metadata["agent"])
	assert.Equal(t, events.EventWarn, got[3].Type)
	assert.Equal(t, "joke_agent", got[3].Metadata["agent"])
}
