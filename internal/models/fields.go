package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unicode/utf8"
)

const (
	FieldUserName   = "user_name"
	FieldRepoName   = "repo_name"
	FieldJiraNumber = "jira_number"

	// AliasUserID is accepted in place of user_name.
	AliasUserID = "user_id"

	MaxContextKeyLength = 512
)

var (
	ErrValidation   = errors.New("invalid context")
	ErrInvalidKey   = fmt.Errorf("%w: context key", ErrValidation)
	ErrFieldTooLong = fmt.Errorf("%w: field too long", ErrValidation)
)

// RecognizedFields lists the persisted context fields in column order.
var RecognizedFields = []string{FieldUserName, FieldRepoName, FieldJiraNumber}

var fieldLimits = map[string]int{
	FieldUserName:   255,
	FieldRepoName:   255,
	FieldJiraNumber: 100,
}

// Payload is the loosely typed input of a context write. Only recognized
// fields survive projection.
type Payload map[string]any

// Fields holds the non-null context fields of a record.
type Fields map[string]string

func (f Fields) lookup(name string) *string {
	v, ok := f[name]
	if !ok {
		return nil
	}
	return &v
}

func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Payload converts f back into a write payload.
func (f Fields) Payload() Payload {
	out := make(Payload, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ValidateKey rejects empty keys and keys longer than the column allows.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidKey)
	}
	if n := utf8.RuneCountInString(key); n > MaxContextKeyLength {
		return fmt.Errorf("%w: %d characters exceeds %d", ErrInvalidKey, n, MaxContextKeyLength)
	}
	return nil
}

// Project maps a payload onto the recognized fields. A blank user_name falls
// back to user_id. Nil values count as absent; unknown keys are dropped.
func Project(p Payload) (Fields, error) {
	out := Fields{}

	if v, ok := stringValue(p[FieldUserName]); ok && v != "" {
		out[FieldUserName] = v
	} else if v, ok := stringValue(p[AliasUserID]); ok && v != "" {
		out[FieldUserName] = v
	}
	for _, name := range []string{FieldRepoName, FieldJiraNumber} {
		if v, ok := stringValue(p[name]); ok {
			out[name] = v
		}
	}

	for name, v := range out {
		if n := utf8.RuneCountInString(v); n > fieldLimits[name] {
			return nil, fmt.Errorf("%w: %s has %d characters, limit %d", ErrFieldTooLong, name, n, fieldLimits[name])
		}
	}
	return out, nil
}

// UnknownKeys returns the payload keys that projection discards, sorted.
func UnknownKeys(p Payload) []string {
	var unknown []string
	for k := range p {
		switch k {
		case FieldUserName, FieldRepoName, FieldJiraNumber, AliasUserID:
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// stringValue renders v as a column value. nil and nil pointers count as absent.
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", false
	}
	return fmt.Sprint(v), true
}
