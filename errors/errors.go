package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Validation creates a non-retryable error for bad stage input.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// UnsupportedFormat creates an error for an audio artifact of an unaccepted type.
func UnsupportedFormat(ext string) *AppError {
	return New(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported audio format: %s", ext)).
		WithDetail("extension", ext)
}

// FileTooLarge creates an error for an audio artifact over the size ceiling.
func FileTooLarge(sizeBytes, maxBytes int64) *AppError {
	return New(ErrCodeFileTooLarge,
		fmt.Sprintf("file too large: %.2fMB (max %.2fMB)",
			float64(sizeBytes)/(1024*1024), float64(maxBytes)/(1024*1024))).
		WithDetail("size_bytes", sizeBytes).
		WithDetail("max_bytes", maxBytes)
}

// Provider creates a retryable error for a stage provider failure.
func Provider(stage, message string) *AppError {
	return New(ErrCodeProvider, message).WithDetail("stage", stage)
}

// Infrastructure creates a retryable error for an unreachable backing store.
func Infrastructure(service string, cause error) *AppError {
	return New(ErrCodeInfrastructure,
		fmt.Sprintf("%s is unavailable", service)).
		WithDetail("service", service).
		WithCause(cause)
}

// RetriesExhausted creates a terminal error for a job whose retry budget ran out.
func RetriesExhausted(attempts int, last error) *AppError {
	return New(ErrCodeRetriesExhausted,
		fmt.Sprintf("retries exhausted after %d attempts", attempts)).
		WithDetail("attempts", attempts).
		WithCause(last)
}

// NotFound creates an error for a resource that was not found.
func NotFound(resource, id string) *AppError {
	return New(ErrCodeNotFound,
		fmt.Sprintf("%s %s not found", resource, id)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// Internal creates an error for an unexpected internal failure.
func Internal(message string, cause error) *AppError {
	return New(ErrCodeInternal, message).WithCause(cause)
}

// --- Inspection helpers ---

// FromError extracts an *AppError from err's chain, or nil.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the error code of err, or ErrCodeInternal for plain errors.
func CodeOf(err error) ErrorCode {
	if appErr := FromError(err); appErr != nil {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether err should be retried. Plain errors are
// treated as retryable provider-side failures rather than permanent ones,
// so an unclassified transient fault does not kill a job on first contact.
func IsRetryable(err error) bool {
	if appErr := FromError(err); appErr != nil {
		return appErr.Retryable
	}
	return true
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
