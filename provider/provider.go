// Package provider defines the base capability interface shared by the
// pluggable stage backends (transcription, summarization), and a registry
// for selecting one by configuration at process startup.
package provider

import "context"

// Provider is the base interface all stage providers implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
