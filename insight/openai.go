package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
)

// OpenAIProvider calls an OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewOpenAIProvider returns a provider for the OpenAI API or any
// chat-completions compatible server. baseURL defaults to the public
// endpoint when empty.
func NewOpenAIProvider(baseURL, model, apiKey string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Summarize(ctx context.Context, sample []SampleRow, days int) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(sample, days)},
		},
	})
	if err != nil {
		return "", errs.Providerf(err, "openai: failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errs.Providerf(err, "openai: failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errs.Providerf(err, "openai: request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.Providerf(nil, "openai: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errs.Providerf(err, "openai: failed to decode response")
	}

	if len(body.Choices) == 0 {
		return "", errs.Providerf(nil, "openai: no choices in response")
	}

	text := strings.TrimSpace(body.Choices[0].Message.Content)
	if text == "" {
		return "", errs.Providerf(nil, "openai: empty response")
	}
	return text, nil
}

var _ Provider = (*OpenAIProvider)(nil)
