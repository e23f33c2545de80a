// Package tools exposes the jarvis agent tools. Every tool replies with text;
// service errors are rendered into the reply so the agent can relay them.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jarvis/internal/events"
	"jarvis/internal/models"
	"jarvis/internal/services"
)

type JokeSource interface {
	Categories() []string
	Random(category string) (services.Joke, error)
}

type WeatherSource interface {
	Current(location string) (services.Weather, error)
	Forecast(location string, days int) (services.Forecast, error)
}

type ContextSource interface {
	Get(ctx context.Context, key string) (models.Fields, bool, error)
	Set(ctx context.Context, key string, data models.Payload) (models.Fields, error)
}

// ToolOutput is what every tool returns. Output is the text shown to the
// agent; Metadata carries machine-readable hints such as "error".
type ToolOutput struct {
	Title    string            `json:"title"`
	Output   string            `json:"output"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Toolset binds the tool functions to their backing services.
type Toolset struct {
	jokes    JokeSource
	weather  WeatherSource
	contexts ContextSource
}

func NewToolset(jokes JokeSource, weather WeatherSource, contexts ContextSource) *Toolset {
	return &Toolset{jokes: jokes, weather: weather, contexts: contexts}
}

func success(ctx context.Context, tool, title, output string) *ToolOutput {
	events.Emit(ctx, events.JarvisEventTool,
		events.NewSuccess(fmt.Sprintf("%s: done", tool)).WithMetadata("tool", tool))
	return &ToolOutput{Title: title, Output: output}
}

func failure(ctx context.Context, tool, title, kind string, err error) *ToolOutput {
	events.Emit(ctx, events.JarvisEventTool,
		events.NewError(fmt.Sprintf("%s: %v", tool, err)).WithMetadata("tool", tool))
	return &ToolOutput{
		Title:    title,
		Output:   fmt.Sprintf("Error: %s", userMessage(err)),
		Metadata: map[string]string{"error": kind},
	}
}

var userFacing = []error{
	services.ErrInvalidCategory,
	services.ErrUnknownLocation,
	models.ErrValidation,
}

// userMessage drops the sentinel prefix from wrapped service errors so the
// reply reads as a sentence.
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range userFacing {
		if errors.Is(err, sentinel) {
			msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}
