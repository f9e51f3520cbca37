package summarization

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/skillsenselab/minutes/provider"
)

// MockProviderName is the registered name for the mock provider.
const MockProviderName = "mock"

// MockConfig holds mock provider settings.
type MockConfig struct {
	// Delay simulates provider latency. Zero for tests.
	Delay time.Duration
}

// MockProvider is a deterministic, offline summarization backend. It
// derives minutes from transcript keywords, so the same transcript always
// yields the same summary bundle.
type MockProvider struct {
	cfg MockConfig
}

// NewMockProvider creates a mock summarization provider.
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

// Summarize builds structured minutes from the transcript content.
func (p *MockProvider) Summarize(ctx context.Context, transcript string) (*Result, error) {
	if p.cfg.Delay > 0 {
		select {
		case <-time.After(p.cfg.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Result{
		Summary:      mockSummary(transcript),
		KeyDecisions: mockDecisions(transcript),
		ActionItems:  mockActionItems(transcript),
		KeyTopics:    mockKeyTopics(transcript),
		Participants: mockParticipants(transcript),
		NextSteps:    mockNextSteps(transcript),
	}, nil
}

func mockSummary(transcript string) string {
	switch {
	case strings.Contains(transcript, "budget") || strings.Contains(transcript, "Q1"):
		return "This was a project planning session focused on Q1 objectives and budget analysis. " +
			"The team reviewed current progress, with development ahead of schedule on the authentication module. " +
			"Key discussions included budget breakdown preparation for stakeholder meetings and upcoming client presentations. " +
			"The meeting concluded with action items for budget analysis, with a follow-up meeting scheduled for next Tuesday."
	case strings.Contains(transcript, "sprint") || strings.Contains(transcript, "standup"):
		return "This sprint review meeting covered yesterday's accomplishments and today's priorities. " +
			"The team made good progress on database migration, UI mockups, and API documentation. " +
			"Key focus areas include production deployment scheduling and design review coordination. " +
			"The team is aligned on sprint goals and ready for productive development work."
	default:
		return "This meeting covered important project updates and team coordination. " +
			"Participants discussed progress on various initiatives, upcoming deadlines, and resource needs. " +
			"Key decisions were made regarding timelines and responsibilities, with several action items assigned to team members."
	}
}

func mockDecisions(transcript string) []string {
	var decisions []string
	if strings.Contains(transcript, "Tuesday") && strings.Contains(transcript, "2 PM") {
		decisions = append(decisions, "Schedule follow-up meeting for next Tuesday at 2 PM")
	}
	if strings.Contains(transcript, "Friday") {
		decisions = append(decisions, "Budget breakdown to be completed by Friday")
	}
	if strings.Contains(transcript, "3 PM") {
		decisions = append(decisions, "Production deployment scheduled for 3 PM")
	}
	if strings.Contains(transcript, "stakeholder") {
		decisions = append(decisions, "Proceed with stakeholder meeting preparation")
	}
	return decisions
}

func mockActionItems(transcript string) []ActionItem {
	var items []ActionItem
	if strings.Contains(transcript, "prepare") && strings.Contains(transcript, "budget") {
		items = append(items, ActionItem{
			Text:     "Prepare detailed budget breakdown for stakeholder meeting",
			Owner:    "Sarah",
			Priority: "high",
		})
	}
	if strings.Contains(transcript, "calendar") && strings.Contains(transcript, "invite") {
		items = append(items, ActionItem{
			Text:     "Send out calendar invites for follow-up meeting",
			Owner:    "Sarah",
			Priority: "high",
		})
	}
	if strings.Contains(transcript, "deploy") && strings.Contains(transcript, "production") {
		items = append(items, ActionItem{
			Text:     "Deploy database migration to production at 3 PM",
			Owner:    "Bob",
			Priority: "high",
		})
	}
	if strings.Contains(transcript, "review") && strings.Contains(transcript, "mockup") {
		items = append(items, ActionItem{
			Text:     "Review UI mockups and provide feedback",
			Owner:    "Dave",
			Priority: "medium",
		})
	}
	return items
}

func mockKeyTopics(transcript string) []string {
	var topics []string
	for _, kt := range []struct{ keyword, topic string }{
		{"budget", "Budget"},
		{"project", "Project Planning"},
		{"development", "Development"},
		{"presentation", "Client Presentation"},
		{"sprint", "Sprint Review"},
		{"database", "Database"},
		{"mockup", "UI/UX"},
		{"API", "API Development"},
	} {
		if strings.Contains(transcript, kt.keyword) {
			topics = append(topics, kt.topic)
		}
	}
	if len(topics) == 0 {
		topics = []string{"General"}
	}
	return topics
}

var speakerPattern = regexp.MustCompile(`(?m)^([A-Z][a-z]+):`)

func mockParticipants(transcript string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range speakerPattern.FindAllStringSubmatch(transcript, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

func mockNextSteps(transcript string) []string {
	var steps []string
	if strings.Contains(transcript, "Tuesday") {
		steps = append(steps, "Follow-up meeting scheduled for next Tuesday")
	}
	if strings.Contains(transcript, "Friday") {
		steps = append(steps, "Budget analysis due Friday")
	}
	if strings.Contains(transcript, "stakeholder") {
		steps = append(steps, "Prepare for stakeholder meeting")
	}
	steps = append(steps, "Monitor project progress and blockers")
	return steps
}
