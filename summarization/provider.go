package summarization

import (
	"context"

	"github.com/skillsenselab/minutes/provider"
)

// Provider is the interface summarization backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Summarize analyzes a meeting transcript and returns structured
	// minutes. Failures are reported as PROVIDER_FAILED application errors.
	Summarize(ctx context.Context, transcript string) (*Result, error)
}

// Result holds the structured output of a summarization call.
type Result struct {
	// Summary is a concise prose overview of the meeting.
	Summary string `json:"summary"`
	// KeyDecisions lists decisions made during the meeting.
	KeyDecisions []string `json:"keyDecisions"`
	// ActionItems lists follow-up work extracted from the transcript.
	ActionItems []ActionItem `json:"actionItems"`
	// KeyTopics lists the main topics discussed.
	KeyTopics []string `json:"keyTopics"`
	// Participants lists the people mentioned as speaking.
	Participants []string `json:"participants"`
	// NextSteps lists follow-up actions or topics for the next meeting.
	NextSteps []string `json:"nextSteps"`
}

// ActionItem is a follow-up task as extracted by a provider. DueDate stays
// a string here (YYYY-MM-DD or empty) because model output is not trusted
// to parse; the pipeline converts it when persisting.
type ActionItem struct {
	Text     string `json:"text"`
	Owner    string `json:"owner,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// NewRegistry creates a provider registry for summarization backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
