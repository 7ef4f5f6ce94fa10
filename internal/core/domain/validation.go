package domain

import (
	"sort"
	"strings"
)

// ValidationError aggregates field-level constraint violations found while
// validating an entity at write time.
type ValidationError struct {
	Violations map[string][]string
}

// NewValidationError returns an empty violation collector.
func NewValidationError() *ValidationError {
	return &ValidationError{Violations: make(map[string][]string)}
}

// Add records a violation message for the given field.
func (e *ValidationError) Add(field, message string) {
	if e.Violations == nil {
		e.Violations = make(map[string][]string)
	}
	e.Violations[field] = append(e.Violations[field], message)
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	if !e.HasViolations() {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Violations[field], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
