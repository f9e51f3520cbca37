// Package errors provides structured error handling for the minutes
// pipeline. It implements error types with machine-readable codes and
// retryable detection, which the job queue uses to decide between
// re-scheduling a job and moving it to the dead set.
package errors
