package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"jarvis/internal/agentruntime"
	"jarvis/internal/events"
)

const BatchAppName = "jarvis_batch"

var (
	ErrAgentNotBatchEnabled = errors.New("agent not enabled for batch processing")
	ErrEmptyRecords         = errors.New("records must not be empty")
)

type RecordResult struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BatchResult struct {
	Agent   string         `json:"agent"`
	Results []RecordResult `json:"results"`
}

func (r *BatchResult) Total() int {
	return len(r.Results)
}

func (r *BatchResult) Successes() []RecordResult {
	return r.filter(true)
}

func (r *BatchResult) Failures() []RecordResult {
	return r.filter(false)
}

func (r *BatchResult) filter(success bool) []RecordResult {
	var out []RecordResult
	for _, rec := range r.Results {
		if rec.Success == success {
			out = append(out, rec)
		}
	}
	return out
}

// BatchService gates batch runs to the configured batch-enabled agents and
// fans the records out to the agent runtime.
type BatchService struct {
	runtime     agentruntime.Invoker
	agents      []string
	concurrency int
	logger      *slog.Logger
}

func NewBatchService(runtime agentruntime.Invoker, agents []string, concurrency int, logger *slog.Logger) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchService{
		runtime:     runtime,
		agents:      slices.Clone(agents),
		concurrency: concurrency,
		logger:      logger,
	}
}

// Agents lists the batch-enabled agent names.
func (s *BatchService) Agents() []string {
	return slices.Clone(s.agents)
}

// Validate applies the batch gate without invoking anything.
func (s *BatchService) Validate(agent string, records []string) error {
	if !slices.Contains(s.agents, agent) {
		return fmt.Errorf("%w: Agent '%s' is not enabled for batch processing. Valid batch-enabled agents: %s",
			ErrAgentNotBatchEnabled, agent, strings.Join(s.agents, ", "))
	}
	if len(records) == 0 {
		return ErrEmptyRecords
	}
	return nil
}

// Run invokes agent once per record. A failing record is reported in the
// result and does not stop the others; only a rejected batch or a cancelled
// ctx returns an error.
func (s *BatchService) Run(ctx context.Context, agent string, records []string) (*BatchResult, error) {
	if err := s.Validate(agent, records); err != nil {
		return nil, err
	}

	s.logger.Info("jarvis_batch starting", "agent", agent, "records", len(records))
	events.Emit(ctx, events.JarvisEventBatch,
		events.NewInfo(fmt.Sprintf("jarvis_batch: running %d records", len(records))).WithMetadata("agent", agent))

	result := &BatchResult{Agent: agent, Results: make([]RecordResult, len(records))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, prompt := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.runtime.Invoke(gctx, agentruntime.Request{
				Agent:   agent,
				Message: prompt,
				Metadata: map[string]any{
					"app_name": BatchAppName,
					"user_id":  agent,
					"tags":     []string{BatchAppName},
					"index":    i,
				},
			})
			rec := RecordResult{Index: i}
			if err != nil {
				rec.Error = err.Error()
			} else {
				rec.Success = true
				rec.Output = res.Output
			}
			result.Results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failures := len(result.Failures())
	s.logger.Info("jarvis_batch complete", "agent", agent,
		"successes", result.Total()-failures, "failures", failures)

	evt := events.NewSuccess(fmt.Sprintf("jarvis_batch: %d/%d records succeeded", result.Total()-failures, result.Total()))
	if failures > 0 {
		evt = events.NewWarn(fmt.Sprintf("jarvis_batch: %d/%d records failed", failures, result.Total()))
	}
	events.Emit(ctx, events.JarvisEventBatch, evt.WithMetadata("agent", agent))
	return result, nil
}
