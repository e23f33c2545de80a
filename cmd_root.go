package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// RootCmd returns the jarvis command tree bound to app.
func RootCmd(app *App) *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "jarvis",
		Short: "Jarvis - context store and tools for the jarvis agents",
		Long: `Jarvis keeps per-session context (user, repository, Jira ticket) in a
database with a write-through cache, and exposes the joke, weather and
context tools the jarvis agents call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.startup(cmd.Context(), envFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.shutdown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: <project root>/.env)")
	rootCmd.PersistentFlags().StringP("output", "o", outputTable, "Output format: table or json")

	rootCmd.AddCommand(ServeCmd(app))
	rootCmd.AddCommand(ContextCmd(app))
	rootCmd.AddCommand(JokeCmd(app))
	rootCmd.AddCommand(WeatherCmd(app))
	rootCmd.AddCommand(ForecastCmd(app))
	rootCmd.AddCommand(ToolsCmd(app))
	rootCmd.AddCommand(InvokeCmd(app))
	rootCmd.AddCommand(BatchCmd(app))
	rootCmd.AddCommand(SecretCmd(app))

	return rootCmd
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	switch format {
	case outputTable, outputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table or json)", format)
	}
}

// render writes value as indented JSON when --output json is set and as a
// table of rows otherwise.
func render(cmd *cobra.Command, value any, headers []string, rows [][]string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if format == outputJSON {
		return writeJSON(w, value)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers(headers...).
		Rows(rows...)
	_, err = fmt.Fprintln(w, t)
	return err
}

// renderText prints text as is, or wrapped as {"output": text} for json.
func renderText(cmd *cobra.Command, text string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == outputJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"output": text})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
