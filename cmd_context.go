package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jarvis/internal/models"
)

// ContextCmd returns the context command group
func ContextCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Read and write session context",
		Long:  `Read, write and delete the context stored for a session key.`,
	}

	cmd.AddCommand(contextGetCmd(app))
	cmd.AddCommand(contextSetCmd(app))
	cmd.AddCommand(contextDeleteCmd(app))
	cmd.AddCommand(contextShowCmd(app))
	return cmd
}

func fieldRows(fields models.Fields) [][]string {
	rows := make([][]string, 0, len(models.RecognizedFields))
	for _, name := range models.RecognizedFields {
		v, ok := fields[name]
		if !ok {
			v = "-"
		}
		rows = append(rows, []string{name, v})
	}
	return rows
}

func contextGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the context stored for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openStore(); err != nil {
				return err
			}
			fields, ok, err := app.services.Contexts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no context stored for %q", args[0])
			}
			return render(cmd, fields, []string{"Field", "Value"}, fieldRows(fields))
		},
	}
}

func contextSetCmd(app *App) *cobra.Command {
	var (
		userName   string
		userID     string
		repoName   string
		jiraNumber string
		data       string
	)

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Replace the context stored for a key",
		Long: `Replace the context stored for a key. Fields that are not given are
cleared. Use --data to pass a raw JSON object instead of the field flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openStore(); err != nil {
				return err
			}

			payload := models.Payload{}
			if data != "" {
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					return fmt.Errorf("--data must be a JSON object: %w", err)
				}
			}
			for name, value := range map[string]string{
				models.FieldUserName:   userName,
				models.AliasUserID:     userID,
				models.FieldRepoName:   repoName,
				models.FieldJiraNumber: jiraNumber,
			} {
				if cmd.Flags().Changed(flagName(name)) {
					payload[name] = value
				}
			}

			stored, err := app.services.Contexts.Set(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			return render(cmd, stored, []string{"Field", "Value"}, fieldRows(stored))
		},
	}

	cmd.Flags().StringVar(&userName, flagName(models.FieldUserName), "", "User name")
	cmd.Flags().StringVar(&userID, flagName(models.AliasUserID), "", "User id, used when --user-name is empty")
	cmd.Flags().StringVar(&repoName, flagName(models.FieldRepoName), "", "Repository name")
	cmd.Flags().StringVar(&jiraNumber, flagName(models.FieldJiraNumber), "", "Jira ticket, e.g. PROJ-123")
	cmd.Flags().StringVar(&data, "data", "", "Context as a JSON object")
	return cmd
}

// flagName turns a field name like "user_name" into "user-name".
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func contextDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete the context stored for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openStore(); err != nil {
				return err
			}
			if err := app.services.Contexts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return renderText(cmd, fmt.Sprintf("Deleted context %q", args[0]))
		},
	}
}

type recordView struct {
	Key       string        `json:"context_key"`
	Fields    models.Fields `json:"fields"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func contextShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Show the stored row for a key, bypassing the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openStore(); err != nil {
				return err
			}
			rec, err := app.services.Contexts.Record(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no context stored for %q", args[0])
			}

			view := recordView{
				Key:       rec.ContextKey,
				Fields:    rec.Fields(),
				CreatedAt: rec.CreatedAt,
				UpdatedAt: rec.UpdatedAt,
			}
			rows := append([][]string{{"context_key", rec.ContextKey}}, fieldRows(view.Fields)...)
			rows = append(rows,
				[]string{"created_at", rec.CreatedAt.Format(time.RFC3339)},
				[]string{"updated_at", rec.UpdatedAt.Format(time.RFC3339)},
				[]string{"cache", app.services.Contexts.CacheName()},
			)
			return render(cmd, view, []string{"Field", "Value"}, rows)
		},
	}
}
