package errorutil

import (
	"fmt"
	"strings"
)

// ValidationError represents a collection of validation failures
type ValidationError struct {
	Context string
	Errors  []FieldError
}

// FieldError represents a single field validation failure
type FieldError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s validation failed", e.Context)
	}

	messages := make([]string, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message))
	}

	return fmt.Sprintf("%s validation failed: %s", e.Context, strings.Join(messages, "; "))
}

// ValidationBuilder accumulates field errors and reports them together
type ValidationBuilder struct {
	context string
	errors  []FieldError
}

// NewValidationBuilder creates a new validation builder with context
func NewValidationBuilder(context string) *ValidationBuilder {
	return &ValidationBuilder{
		context: context,
		errors:  make([]FieldError, 0),
	}
}

// RequiredString validates that a string field is not blank
func (vb *ValidationBuilder) RequiredString(field, value string) *ValidationBuilder {
	if IsEmptyString(value) {
		vb.errors = append(vb.errors, FieldError{Field: field, Value: value, Message: "is required"})
	}
	return vb
}

// OneOf validates that value is one of the allowed options, ignoring case
func (vb *ValidationBuilder) OneOf(field, value string, options []string) *ValidationBuilder {
	if value == "" {
		return vb
	}

	for _, option := range options {
		if strings.EqualFold(strings.TrimSpace(value), option) {
			return vb
		}
	}

	vb.errors = append(vb.errors, FieldError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(options, ", ")),
	})
	return vb
}

// Custom adds a failure with message when predicate rejects value
func (vb *ValidationBuilder) Custom(field string, value interface{}, predicate func(interface{}) bool, message string) *ValidationBuilder {
	if !predicate(value) {
		vb.errors = append(vb.errors, FieldError{Field: field, Value: value, Message: message})
	}
	return vb
}

// Build returns the validation error if any errors were collected, nil otherwise
func (vb *ValidationBuilder) Build() error {
	if len(vb.errors) == 0 {
		return nil
	}

	return &ValidationError{
		Context: vb.context,
		Errors:  vb.errors,
	}
}

// IsEmptyString checks if a string is empty after trimming whitespace
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}
