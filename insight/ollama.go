package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
)

// OllamaProvider calls a local Ollama server's generate endpoint.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider returns a provider for the Ollama server at baseURL.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Summarize(ctx context.Context, sample []SampleRow, days int) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"model":  p.model,
		"prompt": buildPrompt(sample, days),
		"stream": false,
	})
	if err != nil {
		return "", errs.Providerf(err, "ollama: failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", errs.Providerf(err, "ollama: failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errs.Providerf(err, "ollama: request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.Providerf(nil, "ollama: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errs.Providerf(err, "ollama: failed to decode response")
	}

	text := strings.TrimSpace(body.Response)
	if text == "" {
		return "", errs.Providerf(nil, "ollama: empty response")
	}
	return text, nil
}

var _ Provider = (*OllamaProvider)(nil)
