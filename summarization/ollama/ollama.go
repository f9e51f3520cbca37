package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/skillsenselab/minutes/errors"
	"github.com/skillsenselab/minutes/provider"
	"github.com/skillsenselab/minutes/summarization"
)

const (
	// ProviderName is the registered name for the Ollama provider.
	ProviderName = "ollama"

	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3"
	defaultTimeout     = 120 * time.Second

	systemPrompt = "You are an expert meeting assistant. Your job is to analyze " +
		"meeting transcripts and create comprehensive summaries with actionable insights."

	promptTemplate = `Please analyze the following meeting transcript and provide a comprehensive summary in the following JSON format:

{
  "summary": "A concise 2-3 paragraph overview of the meeting",
  "keyDecisions": ["List of important decisions made during the meeting"],
  "actionItems": [
    {
      "text": "Description of the action item",
      "owner": "Person responsible (if mentioned)",
      "dueDate": "Due date if mentioned (YYYY-MM-DD format or null)",
      "priority": "high/medium/low"
    }
  ],
  "keyTopics": ["Main topics discussed"],
  "participants": ["List of participants mentioned"],
  "nextSteps": ["Follow-up actions or next meeting topics"]
}

Meeting Transcript:
%s

Please ensure the response is valid JSON and focuses on actionable insights and clear decisions.`
)

// Config holds configuration for the Ollama summarization provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Model       string        `json:"model" yaml:"model"`
	Temperature float64       `json:"temperature" yaml:"temperature"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements summarization.Provider using Ollama's chat API in
// JSON format mode.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Ollama summarization provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOllamaURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOllamaModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates Ollama Provider instances
// from a generic config map.
func Factory() provider.Factory[summarization.Provider] {
	return func(cfg map[string]any) (summarization.Provider, error) {
		oc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			oc.BaseURL = v
		}
		if v, ok := cfg["model"].(string); ok {
			oc.Model = v
		}
		if v, ok := cfg["temperature"].(float64); ok {
			oc.Temperature = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			oc.Timeout = v
		}
		return NewProvider(oc), nil
	}
}

var _ summarization.Provider = (*Provider)(nil)

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Ollama server is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Summarize sends the transcript to the model and parses the structured
// minutes from its reply.
func (p *Provider) Summarize(ctx context.Context, transcript string) (*summarization.Result, error) {
	chatReq := ollamaChatRequest{
		Model: p.cfg.Model,
		Messages: []ollamaChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, transcript)},
		},
		Stream:      false,
		Format:      "json",
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.doRequest(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	return summarization.ParseModelOutput(resp.Message.Content), nil
}

// --- internal Ollama API types ---

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model       string              `json:"model"`
	Messages    []ollamaChatMessage `json:"messages"`
	Stream      bool                `json:"stream"`
	Format      any                 `json:"format,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

type ollamaChatResponse struct {
	Model   string            `json:"model"`
	Message ollamaChatMessage `json:"message"`
	Done    bool              `json:"done"`
}

// doRequest marshals the request, sends it to the Ollama API, and decodes the response.
func (p *Provider) doRequest(ctx context.Context, req ollamaChatRequest) (*ollamaChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Internal("marshal ollama request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Internal("create ollama request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.Provider("summarization", "ollama request failed").WithCause(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		return nil, apperrors.Provider("summarization",
			fmt.Sprintf("ollama error (status %d): %s", httpResp.StatusCode, string(respBody)))
	}

	var resp ollamaChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, apperrors.Provider("summarization", "decode ollama response").WithCause(err)
	}

	return &resp, nil
}
