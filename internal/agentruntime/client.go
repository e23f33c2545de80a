// Package agentruntime is the narrow client Jarvis uses to hand prompts to
// the external agent runtime. Orchestration happens on the other side.
package agentruntime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Request struct {
	Agent     string         `json:"-"`
	Message   string         `json:"message"`
	SessionID string         `json:"session_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type Result struct {
	Agent     string         `json:"agent"`
	SessionID string         `json:"session_id"`
	Output    string         `json:"output"`
	State     map[string]any `json:"state,omitempty"`
}

type Invoker interface {
	Invoke(ctx context.Context, req Request) (*Result, error)
}

// HTTPClient posts requests to "<base>/agents/<agent>/invoke".
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Invoke(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Agent) == "" {
		return nil, fmt.Errorf("agent name is required")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/agents/" + url.PathEscape(req.Agent) + "/invoke"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", req.Agent, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("invoke %s: runtime returned %s: %s", req.Agent, resp.Status, strings.TrimSpace(string(excerpt)))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invoke %s: decode response: %w", req.Agent, err)
	}
	if result.Agent == "" {
		result.Agent = req.Agent
	}
	if result.SessionID == "" {
		result.SessionID = req.SessionID
	}
	return &result, nil
}
