package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jarvis/internal/events"
	"jarvis/internal/models"
)

type GetContextInput struct {
	SessionID string `json:"session_id" jsonschema:"description=Session whose context should be read"`
}

type SetContextInput struct {
	SessionID  string `json:"session_id" jsonschema:"description=Session whose context should be stored"`
	UserName   string `json:"user_name,omitempty" jsonschema:"description=Name of the user"`
	UserID     string `json:"user_id,omitempty" jsonschema:"description=User id, used when user_name is empty"`
	RepoName   string `json:"repo_name,omitempty" jsonschema:"description=Repository the user is working in"`
	JiraNumber string `json:"jira_number,omitempty" jsonschema:"description=Jira ticket, e.g. PROJ-123"`
}

func (t *Toolset) GetContext(ctx context.Context, in *GetContextInput) (*ToolOutput, error) {
	session := ""
	if in != nil {
		session = strings.TrimSpace(in.SessionID)
	}
	ctx = events.WithSession(ctx, session)

	fields, ok, err := t.contexts.Get(ctx, session)
	if err != nil {
		kind := "storage_error"
		if errors.Is(err, models.ErrValidation) {
			kind = "format_error"
		}
		return failure(ctx, "get_context", session, kind, err), nil
	}
	if !ok {
		return success(ctx, "get_context", session, fmt.Sprintf("No context stored for session '%s'.", session)), nil
	}
	return success(ctx, "get_context", session, fmt.Sprintf("Context for session '%s': %s", session, formatFields(fields))), nil
}

func (t *Toolset) SetContext(ctx context.Context, in *SetContextInput) (*ToolOutput, error) {
	if in == nil {
		return failure(ctx, "set_context", "", "format_error", errors.New("input is required")), nil
	}
	session := strings.TrimSpace(in.SessionID)
	ctx = events.WithSession(ctx, session)

	payload := models.Payload{}
	for name, value := range map[string]string{
		models.FieldUserName:   in.UserName,
		models.AliasUserID:     in.UserID,
		models.FieldRepoName:   in.RepoName,
		models.FieldJiraNumber: in.JiraNumber,
	} {
		if value != "" {
			payload[name] = value
		}
	}

	stored, err := t.contexts.Set(ctx, session, payload)
	if err != nil {
		kind := "storage_error"
		if errors.Is(err, models.ErrValidation) {
			kind = "format_error"
		}
		return failure(ctx, "set_context", session, kind, err), nil
	}
	return success(ctx, "set_context", session, fmt.Sprintf("Context updated for session '%s': %s", session, formatFields(stored))), nil
}

// formatFields renders fields in RecognizedFields order; unset fields show
// as "-".
func formatFields(fields models.Fields) string {
	parts := make([]string, 0, len(models.RecognizedFields))
	for _, name := range models.RecognizedFields {
		v, ok := fields[name]
		if !ok {
			v = "-"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", name, v))
	}
	return strings.Join(parts, ", ")
}
