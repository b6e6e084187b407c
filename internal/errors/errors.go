package errors

import (
	"fmt"
)

// MdqError is the structured error type for mdq.
// It carries the classification used to decide whether a failure aborts the
// run (fatal setup errors) or is aggregated into the sync report (per-file
// errors).
type MdqError struct {
	// Code is the unique error code (e.g., "ERR_302_MISSING_FIELD").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Parse, Query, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Path is the source file the error relates to, if any.
	Path string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *MdqError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *MdqError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with MdqError.
func (e *MdqError) Is(target error) bool {
	if t, ok := target.(*MdqError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithPath returns a copy of the error with the source file path attached.
// The receiver is left untouched so shared sentinel errors stay clean.
func (e *MdqError) WithPath(path string) *MdqError {
	clone := *e
	clone.Path = path
	return &clone
}

// New creates a new MdqError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *MdqError {
	return &MdqError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf creates a new MdqError with a formatted message.
func Newf(code string, format string, args ...any) *MdqError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates an MdqError from an existing error.
// The error's message becomes the MdqError message.
func Wrap(code string, err error) *MdqError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the run; everything else is aggregated and reported.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if me, ok := err.(*MdqError); ok {
		return me.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from an MdqError.
// Returns empty string if not an MdqError.
func GetCode(err error) string {
	if me, ok := err.(*MdqError); ok {
		return me.Code
	}
	return ""
}

// GetCategory extracts the category from an MdqError.
// Returns empty string if not an MdqError.
func GetCategory(err error) Category {
	if me, ok := err.(*MdqError); ok {
		return me.Category
	}
	return ""
}
