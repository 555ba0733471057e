// =============================================================================
// Incident Report - Validation Engine
// =============================================================================
//
// This module checks that a hierarchical document only uses legal, unique
// field identifiers. Documents produced by the converter always pass; the
// checks matter for documents read back from disk, which may have been edited
// by hand.
//
// RULES:
//   - identifier : every field name is a legal identifier
//   - duplicate  : no field name appears twice in the same record
//
// Field values are never inspected.
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error carries the record number, field and offending value
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/incident-report/internal/identifier"
	"github.com/ginjaninja78/incident-report/internal/types"
)

// Rule names.
const (
	RuleIdentifier = "identifier"
	RuleDuplicate  = "duplicate"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// Severity is "error" or "warning".
	Severity string

	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RecordNumber is the 1-based position of the record in the document.
	RecordNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Record %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.RecordNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateDocument checks every record of doc.
//
// RETURNS:
//   - The collected errors, in document order. Empty when the document is clean.
func ValidateDocument(doc *types.Document) []*ValidationError {
	var errors []*ValidationError

	if doc.Len() == 0 {
		return errors
	}

	for i, record := range doc.Records {
		errors = append(errors, ValidateRecord(record, i+1)...)
	}

	return errors
}

// ValidateRecord checks the field names of a single record.
func ValidateRecord(record types.Record, recordNumber int) []*ValidationError {
	var errors []*ValidationError
	seen := make(map[string]bool, len(record.Fields))

	for _, field := range record.Fields {
		if !identifier.IsValid(field.Name) {
			errors = append(errors, &ValidationError{
				Severity:     "error",
				Field:        field.Name,
				Value:        field.Value,
				Rule:         RuleIdentifier,
				Message:      fmt.Sprintf("not a legal identifier, expected %q", identifier.Sanitize(field.Name, -1)),
				RecordNumber: recordNumber,
			})
		}

		if seen[field.Name] {
			errors = append(errors, &ValidationError{
				Severity:     "error",
				Field:        field.Name,
				Value:        field.Value,
				Rule:         RuleDuplicate,
				Message:      "identifier appears more than once in the record",
				RecordNumber: recordNumber,
			})
		}
		seen[field.Name] = true
	}

	return errors
}

// =============================================================================
// ERROR REPORTING
// =============================================================================

// FormatErrors formats validation errors for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes the formatted errors to filePath.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	if err := os.WriteFile(filePath, []byte(FormatErrors(errors)), 0644); err != nil {
		return fmt.Errorf("failed to write validation log: %w", err)
	}
	return nil
}
