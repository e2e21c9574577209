package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeLoad indicates the source dataset could not be read or parsed
	ErrorTypeLoad ErrorType = "LOAD"

	// ErrorTypeInvalidDateRange indicates an unparseable or inverted date filter
	ErrorTypeInvalidDateRange ErrorType = "INVALID_DATE_RANGE"

	// ErrorTypeEmptyResult indicates the active filters matched zero rows
	ErrorTypeEmptyResult ErrorType = "EMPTY_RESULT"

	// ErrorTypeAggregation indicates an unexpected failure while computing aggregates
	ErrorTypeAggregation ErrorType = "AGGREGATION"

	// ErrorTypeExport indicates the export action could not produce a report
	ErrorTypeExport ErrorType = "EXPORT"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType carried by err, or "" when err is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewLoadError creates a new dataset load error
func NewLoadError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeLoad,
		Message: message,
		Err:     err,
	}
}

// NewInvalidDateRangeError creates a new invalid date range error
func NewInvalidDateRangeError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidDateRange,
		Message: message,
	}
}

// NewEmptyResultError creates a new empty result error
func NewEmptyResultError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeEmptyResult,
		Message: message,
	}
}

// NewAggregationError creates a new aggregation error
func NewAggregationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeAggregation,
		Message: message,
		Err:     err,
	}
}

// NewExportError creates a new export error
func NewExportError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeExport,
		Message: message,
	}
}
