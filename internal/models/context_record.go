package models

import "time"

// ContextRecord is the durable row behind a context key.
type ContextRecord struct {
	ContextKey string    `gorm:"column:context_key;primaryKey;size:512"`
	UserName   *string   `gorm:"column:user_name;size:255"`
	RepoName   *string   `gorm:"column:repo_name;size:255"`
	JiraNumber *string   `gorm:"column:jira_number;size:100"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ContextRecord) TableName() string {
	return "jarvis_context_store"
}

// Fields returns the non-null context fields of the record.
func (r *ContextRecord) Fields() Fields {
	out := Fields{}
	if r.UserName != nil {
		out[FieldUserName] = *r.UserName
	}
	if r.RepoName != nil {
		out[FieldRepoName] = *r.RepoName
	}
	if r.JiraNumber != nil {
		out[FieldJiraNumber] = *r.JiraNumber
	}
	return out
}

// NewContextRecord builds a row for key holding exactly fields. Fields missing
// from the map become NULL columns.
func NewContextRecord(key string, fields Fields) *ContextRecord {
	return &ContextRecord{
		ContextKey: key,
		UserName:   fields.lookup(FieldUserName),
		RepoName:   fields.lookup(FieldRepoName),
		JiraNumber: fields.lookup(FieldJiraNumber),
	}
}
