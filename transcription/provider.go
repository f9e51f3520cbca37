package transcription

import (
	"context"

	"github.com/skillsenselab/minutes/provider"
)

// Provider is the interface transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe converts the audio artifact at audioPath to text.
	// Failures are reported as UNSUPPORTED_FORMAT, FILE_TOO_LARGE, or
	// PROVIDER_FAILED application errors.
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// Result holds the outcome of a transcription call.
type Result struct {
	// Text is the full transcript.
	Text string `json:"text"`
	// Language is the detected or configured language (e.g. "en-US").
	Language string `json:"language,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// NewRegistry creates a provider registry for transcription backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
