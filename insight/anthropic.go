package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider calls the Anthropic messages endpoint.
type AnthropicProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewAnthropicProvider returns a provider for the Anthropic API. baseURL
// defaults to the public endpoint when empty.
func NewAnthropicProvider(baseURL, model, apiKey string) *AnthropicProvider {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &AnthropicProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Summarize(ctx context.Context, sample []SampleRow, days int) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"model":      p.model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(sample, days)},
		},
	})
	if err != nil {
		return "", errs.Providerf(err, "anthropic: failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", errs.Providerf(err, "anthropic: failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errs.Providerf(err, "anthropic: request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.Providerf(nil, "anthropic: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errs.Providerf(err, "anthropic: failed to decode response")
	}

	var parts []string
	for _, block := range body.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return "", errs.Providerf(nil, "anthropic: empty response")
	}
	return text, nil
}

var _ Provider = (*AnthropicProvider)(nil)
