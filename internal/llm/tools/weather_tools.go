package tools

import (
	"context"
	"fmt"
	"strings"

	"jarvis/internal/services"
)

const defaultForecastDays = 3

type WeatherInput struct {
	Location string `json:"location" jsonschema:"description=City name, e.g. San Francisco or Tokyo"`
}

type ForecastInput struct {
	Location string `json:"location" jsonschema:"description=City name, e.g. San Francisco or Tokyo"`
	Days     int    `json:"days,omitempty" jsonschema:"description=Number of days between 1 and 7. Defaults to 3"`
}

func (t *Toolset) Weather(ctx context.Context, in *WeatherInput) (*ToolOutput, error) {
	location := ""
	if in != nil {
		location = strings.TrimSpace(in.Location)
	}
	w, err := t.weather.Current(location)
	if err != nil {
		return failure(ctx, "get_weather", location, "unknown_location", err), nil
	}
	out := fmt.Sprintf("Weather in %s: %s, %s", w.Location, w.Conditions, formatTemperature(w.Temperature))
	return success(ctx, "get_weather", w.Location, out), nil
}

func (t *Toolset) Forecast(ctx context.Context, in *ForecastInput) (*ToolOutput, error) {
	location, days := "", defaultForecastDays
	if in != nil {
		location = strings.TrimSpace(in.Location)
		if in.Days != 0 {
			days = in.Days
		}
	}
	f, err := t.weather.Forecast(location, days)
	if err != nil {
		return failure(ctx, "get_forecast", location, "unknown_location", err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d-day forecast for %s:", len(f.Days), f.Location)
	for i, day := range f.Days {
		fmt.Fprintf(&b, "\nDay %d: %s", i+1, day)
	}
	return success(ctx, "get_forecast", f.Location, b.String()), nil
}

func formatTemperature(t services.Temperature) string {
	unit := "F"
	if t.Unit == "celsius" {
		unit = "C"
	}
	return fmt.Sprintf("%d°%s", t.Value, unit)
}
