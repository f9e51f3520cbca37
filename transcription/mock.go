package transcription

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"time"

	"github.com/skillsenselab/minutes/provider"
)

// MockProviderName is the registered name for the mock provider.
const MockProviderName = "mock"

// Sample transcripts returned by the mock, in the spirit of real meeting
// audio: one planning session, one sprint standup.
var sampleTranscripts = []string{
	`Meeting Transcript - Project Planning Session

John: Good morning everyone, thanks for joining today's project planning meeting. Let's start by reviewing our Q1 objectives.

Sarah: I've prepared the budget analysis. We're currently at 75% of our allocated budget with two months remaining.

Mike: The development team has completed the user authentication module. We're ahead of schedule on that front.

John: Excellent work Mike. Sarah, can you prepare a detailed budget breakdown for next week's stakeholder meeting?

Sarah: Absolutely, I'll have that ready by Friday.

Mike: We should also discuss the upcoming client presentation. I think we need to prepare some demo scenarios.

John: Good point. Let's schedule a follow-up meeting for next Tuesday to go through the presentation materials.

Sarah: I'll send out calendar invites once we confirm the time.

John: Great meeting everyone. Let's reconvene next Tuesday at 2 PM.`,

	`Team Standup Meeting - Sprint Review

Alice: Morning team! Let's go through yesterday's accomplishments and today's priorities.

Bob: I completed the database migration script and tested it on staging. All tests are passing.

Carol: I finished the UI mockups for the new dashboard. They're ready for review in Figma.

Dave: I worked on the API documentation and updated the Swagger specs.

Alice: Great progress everyone. Bob, can you deploy the migration to production today?

Bob: Yes, I'll schedule the deployment for 3 PM when traffic is low.

Carol: I need feedback on the mockups before I start implementation. Can we schedule a design review?

Dave: I can review them this afternoon and provide feedback by end of day.

Alice: Alright team, let's make it a productive day!`,
}

// MockConfig holds mock provider settings.
type MockConfig struct {
	// Delay simulates provider latency. Zero for tests.
	Delay time.Duration
}

// MockProvider is a deterministic, offline transcription backend. The
// transcript and duration are derived from the file name, so repeated runs
// on the same artifact converge on the same output.
type MockProvider struct {
	cfg MockConfig
}

// NewMockProvider creates a mock transcription provider.
func NewMockProvider(cfg MockConfig) *MockProvider {
	return &MockProvider{cfg: cfg}
}

// MockFactory returns a provider.Factory creating MockProvider instances.
func MockFactory() provider.Factory[Provider] {
	return func(cfg map[string]any) (Provider, error) {
		mc := MockConfig{}
		if v, ok := cfg["delay"].(time.Duration); ok {
			mc.Delay = v
		}
		return NewMockProvider(mc), nil
	}
}

var _ Provider = (*MockProvider)(nil)

// Name returns the provider name.
func (p *MockProvider) Name() string { return MockProviderName }

// IsAvailable always reports true; the mock has no external dependency.
func (p *MockProvider) IsAvailable(_ context.Context) bool { return true }

// Transcribe returns a deterministic transcript for the artifact.
func (p *MockProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if p.cfg.Delay > 0 {
		select {
		case <-time.After(p.cfg.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	h := fnv.New32a()
	h.Write([]byte(filepath.Base(audioPath)))
	seed := h.Sum32()

	text := sampleTranscripts[int(seed)%len(sampleTranscripts)]
	duration := float64(600 + seed%1800) // 10 to 40 minutes

	return &Result{
		Text:     text,
		Language: "en-US",
		Duration: duration,
		Segments: []Segment{{Start: 0, End: duration, Text: text}},
	}, nil
}
