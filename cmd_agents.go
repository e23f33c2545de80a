package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jarvis/internal/utils"
)

// InvokeCmd returns the invoke command
func InvokeCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "invoke <agent> <message>",
		Short: "Send one message to an agent",
		Long: `Send one message to an agent through the agent runtime
(JARVIS_AGENT_RUNTIME_URL). A session id is generated when --session is not set.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.services.Invoke.Invoke(cmd.Context(), args[0], strings.Join(args[1:], " "), session)
			if err != nil {
				return err
			}
			return render(cmd, res,
				[]string{"Agent", "Session", "Output"},
				[][]string{{res.Agent, res.SessionID, res.Output}})
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session id to continue")
	return cmd
}

// BatchCmd returns the batch command
func BatchCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch <agent> [prompt...]",
		Short: "Run many prompts against a batch-enabled agent",
		Long: `Run each prompt against a batch-enabled agent (JARVIS_BATCH_AGENTS).
Prompts come from the arguments and, with --file, from a text file with one
prompt per line ("-" reads stdin). A failing prompt does not stop the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records := append([]string(nil), args[1:]...)
			if file != "" {
				lines, err := utils.ReadNonEmptyLinesFile(file)
				if err != nil {
					return err
				}
				records = append(records, lines...)
			}

			result, err := app.services.Batch.Run(cmd.Context(), args[0], records)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, result.Total())
			for _, r := range result.Results {
				status, text := "ok", r.Output
				if !r.Success {
					status, text = "failed", r.Error
				}
				rows = append(rows, []string{strconv.Itoa(r.Index), status, text})
			}
			if err := render(cmd, result, []string{"#", "Status", "Output"}, rows); err != nil {
				return err
			}
			if len(result.Failures()) == result.Total() {
				return errors.New("every batch record failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File with one prompt per line")
	return cmd
}
