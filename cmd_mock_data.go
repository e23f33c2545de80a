package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jarvis/internal/services"
)

const defaultJokeCategory = "programming"

// JokeCmd returns the joke command
func JokeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "joke [category]",
		Short: "Tell a random joke",
		Long:  `Tell a random joke from a category (default "programming").`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := defaultJokeCategory
			if len(args) == 1 {
				category = args[0]
			}
			joke, err := app.services.Jokes.Random(category)
			if err != nil {
				return err
			}
			return render(cmd, joke,
				[]string{"Category", "Rating", "Joke"},
				[][]string{{joke.Category, fmt.Sprintf("%d/5", joke.Rating), joke.Text}})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List joke categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := app.services.Jokes.Categories()
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{c})
			}
			return render(cmd, categories, []string{"Category"}, rows)
		},
	})
	return cmd
}

func temperatureText(t services.Temperature) string {
	unit := "F"
	if t.Unit == "celsius" {
		unit = "C"
	}
	return fmt.Sprintf("%d°%s", t.Value, unit)
}

// WeatherCmd returns the weather command
func WeatherCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weather <location>",
		Short: "Show the current weather for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.services.Weather.Current(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return render(cmd, w,
				[]string{"Location", "Conditions", "Temperature"},
				[][]string{{w.Location, w.Conditions, temperatureText(w.Temperature)}})
		},
	}
}

// ForecastCmd returns the forecast command
func ForecastCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "forecast <location>",
		Short: "Show a multi-day forecast for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.services.Weather.Forecast(strings.Join(args, " "), days)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(f.Days))
			for i, day := range f.Days {
				rows = append(rows, []string{strconv.Itoa(i + 1), day})
			}
			return render(cmd, f, []string{"Day", f.Location}, rows)
		},
	}

	cmd.Flags().IntVar(&days, "days", 3, "Number of days (1-7)")
	return cmd
}
