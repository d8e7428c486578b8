package domain

import (
	"fmt"
	"strings"
)

// Field names accepted at the API boundary.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGoal        = "goal"
	FieldUnit        = "unit"
	FieldValue       = "value"
	FieldNote        = "note"
)

// Required field sets per operation.
var (
	ProjectCreateFields  = []string{FieldTitle, FieldDescription, FieldGoal, FieldUnit}
	ProjectReplaceFields = []string{FieldTitle, FieldDescription, FieldGoal, FieldUnit}
	ProgressCreateFields = []string{FieldValue}
)

// ValidationError lists required fields absent from a request body.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fieldMessage("Missing", e.Missing)
}

// InvalidFieldError lists fields that are present but null, of the wrong
// type, or violate a field-level constraint.
type InvalidFieldError struct {
	Fields []string
}

func (e *InvalidFieldError) Error() string {
	return fieldMessage("Invalid", e.Fields)
}

func fieldMessage(prefix string, fields []string) string {
	noun := "field"
	if len(fields) > 1 {
		noun = "fields"
	}
	return fmt.Sprintf("%s %s: %s", prefix, noun, strings.Join(fields, ", "))
}

// RequireFields checks that every required key exists in body. Presence is
// key existence only: a key holding null or an empty value counts as present.
// Missing fields are reported in the order of required.
func RequireFields[V any](required []string, body map[string]V) error {
	var missing []string
	for _, name := range required {
		if _, ok := body[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Validate enforces the field-level constraints of a project.
func (f ProjectFields) Validate() error {
	var invalid []string
	if strings.TrimSpace(f.Title) == "" {
		invalid = append(invalid, FieldTitle)
	}
	if strings.TrimSpace(f.Description) == "" {
		invalid = append(invalid, FieldDescription)
	}
	if len(invalid) > 0 {
		return &InvalidFieldError{Fields: invalid}
	}
	return nil
}
