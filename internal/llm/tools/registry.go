package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

var ErrUnknownTool = errors.New("unknown tool")

// ToolNames lists the registered tools in the order agents see them.
var ToolNames = []string{
	"tell_joke",
	"get_joke_categories",
	"get_weather",
	"get_forecast",
	"get_context",
	"set_context",
}

// Registry holds the jarvis tools wrapped as eino invokable tools.
type Registry struct {
	tools map[string]tool.InvokableTool
}

func NewRegistry(ts *Toolset) (*Registry, error) {
	builders := map[string]func(name, desc string) (tool.InvokableTool, error){
		"tell_joke": func(name, desc string) (tool.InvokableTool, error) {
			return utils.InferTool(name, desc, ts.TellJoke)
		},
		"get_joke_categories": func(name, desc string) (tool.InvokableTool, error) {
			return utils.InferTool(name, desc, ts.JokeCategories)
		},
		"get_weather": func(name, desc string) (tool.InvokableTool, error) {
			return utils.InferTool(name, desc, ts.Weather)
		},
		"get_forecast": func(name, desc string) (tool.InvokableTool, error) {
			return utils.InferTool(name, desc, ts.Forecast)
		},
		"get_context": func(name, desc string) (tool.InvokableTool, error) {
			return utils.InferTool(name, desc, ts.GetContext)
		},
		"set_context": func(name, desc string) (tool.InvokableTool, error) {
			return utils.InferTool(name, desc, ts.SetContext)
		},
	}

	r := &Registry{tools: make(map[string]tool.InvokableTool, len(ToolNames))}
	for _, name := range ToolNames {
		t, err := builders[name](name, ToolDescription(name))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tool: %w", name, err)
		}
		r.tools[name] = t
	}
	return r, nil
}

// Tools returns the tools in ToolNames order, ready for a ToolsNodeConfig.
func (r *Registry) Tools() []tool.BaseTool {
	out := make([]tool.BaseTool, 0, len(ToolNames))
	for _, name := range ToolNames {
		out = append(out, r.tools[name])
	}
	return out
}

func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	out := make([]*schema.ToolInfo, 0, len(ToolNames))
	for _, name := range ToolNames {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool %s info: %w", name, err)
		}
		out = append(out, info)
	}
	return out, nil
}

// Run invokes the named tool with JSON arguments and returns its text reply.
// An empty argument string is treated as "{}".
func (r *Registry) Run(ctx context.Context, name, arguments string) (*ToolOutput, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}

	raw, err := t.InvokableRun(ctx, arguments)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	var out ToolOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("run %s: decode output: %w", name, err)
	}
	return &out, nil
}
