package insight

import (
	"github.com/researchaccelerator-hub/youtube-tracker/config"
	"github.com/researchaccelerator-hub/youtube-tracker/errs"
)

// NewProvider builds a provider by name.
func NewProvider(name, baseURL, model, apiKey string) (Provider, error) {
	switch name {
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil
	case "anthropic":
		return NewAnthropicProvider(baseURL, model, apiKey), nil
	case "openai":
		return NewOpenAIProvider(baseURL, model, apiKey), nil
	default:
		return nil, errs.Configf("unknown narrative provider: %s", name)
	}
}

// NewChainFromConfig assembles the provider chain from configuration: the
// primary provider, then at most one fallback when configured.
func NewChainFromConfig(cfg config.InsightConfig) (*Chain, error) {
	primary, err := NewProvider(cfg.Provider, cfg.BaseURL, cfg.Model, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	providers := []Provider{primary}
	if cfg.FallbackProvider != "" {
		fallback, err := NewProvider(cfg.FallbackProvider, cfg.FallbackBaseURL, cfg.FallbackModel, cfg.FallbackAPIKey)
		if err != nil {
			return nil, err
		}
		providers = append(providers, fallback)
	}

	return NewChain(cfg.Timeout, providers...), nil
}
