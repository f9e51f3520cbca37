// Package transcription defines the speech-to-text stage contract and
// common types.
//
// Backends are interchangeable behind Provider: a deterministic mock for
// tests and queue-less demos, and transcription/whisper for a real
// faster-whisper sidecar. Callers see no difference beyond latency and
// error rates.
package transcription
