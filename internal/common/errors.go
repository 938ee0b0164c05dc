package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	CodeRosterMismatch    = "ROSTER_MISMATCH"
	CodeMalformedDocument = "MALFORMED_DOCUMENT"
	CodeSelectionMismatch = "SELECTION_MISMATCH"
	CodeConfig            = "CONFIG_ERROR"
	CodeExtract           = "EXTRACT_FAILED"
	CodeRender            = "RENDER_FAILED"
)

// Common application errors
var (
	ErrRosterMismatch    = errors.New("rider not in roster")
	ErrMalformedDocument = errors.New("malformed document")
	ErrSelectionMismatch = errors.New("selected rider has no lap data")
	ErrInvalidInput      = errors.New("invalid input")
	ErrExtract           = errors.New("text extraction failed")
	ErrRender            = errors.New("render failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func RosterMismatchf(format string, args ...any) error {
	return NewAppError(CodeRosterMismatch, fmt.Sprintf(format, args...), ErrRosterMismatch)
}

func MalformedDocumentf(format string, args ...any) error {
	return NewAppError(CodeMalformedDocument, fmt.Sprintf(format, args...), ErrMalformedDocument)
}

func SelectionMismatchf(format string, args ...any) error {
	return NewAppError(CodeSelectionMismatch, fmt.Sprintf(format, args...), ErrSelectionMismatch)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf returns the AppError code in err's chain, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
