package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers single-record lookups for ids that do not exist or
	// belong to another tenant.
	ErrNotFound = errors.New("audit event not found")

	// ErrSequenceExhausted means the tenant-day log id sequence hit its 4-digit
	// ceiling. The LOG<date><seq> format is an external contract, so ingestion
	// fails rather than widening the sequence.
	ErrSequenceExhausted = errors.New("log id sequence exhausted for tenant day")
)

// Validation failure reasons.
const (
	ReasonInvalidEnum  = "invalid_enum_value"
	ReasonMissingField = "missing_required_field"
	ReasonTooLong      = "field_too_long"
	ReasonInvalidValue = "invalid_value"
)

type ValidationError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidEnum(field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  ReasonInvalidEnum,
		Message: fmt.Sprintf("%s: unknown value %q", field, value),
	}
}

func missingField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  ReasonMissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func tooLong(field string, max int) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  ReasonTooLong,
		Message: fmt.Sprintf("%s exceeds %d characters", field, max),
	}
}
