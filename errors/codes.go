package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Stage input errors (not retryable; the input will not get better)
const (
	// ErrCodeValidation indicates a stage received invalid input.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
	// ErrCodeUnsupportedFormat indicates an audio artifact of an unaccepted type.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeFileTooLarge indicates an audio artifact over the provider's size ceiling.
	ErrCodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"
)

// Provider errors (retryable; transient upstream failures)
const (
	// ErrCodeProvider indicates a transport or processing failure in a stage provider.
	ErrCodeProvider ErrorCode = "PROVIDER_FAILED"
)

// Infrastructure errors (surfaced to the caller, never silently dropped)
const (
	// ErrCodeInfrastructure indicates the queue or record store is unreachable.
	ErrCodeInfrastructure ErrorCode = "INFRASTRUCTURE_UNAVAILABLE"
)

// Terminal pipeline errors
const (
	// ErrCodeRetriesExhausted indicates a job spent its retry budget.
	ErrCodeRetriesExhausted ErrorCode = "RETRIES_EXHAUSTED"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeProvider:       true,
	ErrCodeInfrastructure: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
