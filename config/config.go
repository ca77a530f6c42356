// Package config loads the tracker configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	YouTube YouTubeConfig
	Store   StoreConfig
	Ingest  IngestConfig
	Search  SearchConfig
	Insight InsightConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type YouTubeConfig struct {
	// APIKey may be empty: ingestion then fails with a config error while
	// read-only metrics on already stored data keep working.
	APIKey      string `envconfig:"YOUTUBE_API_KEY"`
	QuotaBudget int    `envconfig:"YOUTUBE_QUOTA_BUDGET" default:"10000"`
}

type StoreConfig struct {
	Path string `envconfig:"STORE_PATH" default:"data/store.json"`
}

type IngestConfig struct {
	MaxRecords int `envconfig:"INGEST_MAX_RECORDS" default:"500"`
	PageSize   int `envconfig:"INGEST_PAGE_SIZE" default:"50"`
	BatchSize  int `envconfig:"INGEST_BATCH_SIZE" default:"50"`
}

type SearchConfig struct {
	MaxPages int `envconfig:"SEARCH_MAX_PAGES" default:"3"`
}

type InsightConfig struct {
	// Provider and FallbackProvider name the ordered chain: "ollama",
	// "anthropic" or "openai". FallbackProvider may be empty.
	Provider         string        `envconfig:"LLM_PROVIDER" default:"ollama"`
	Model            string        `envconfig:"LLM_MODEL" default:"llama3.2"`
	BaseURL          string        `envconfig:"LLM_BASE_URL" default:"http://localhost:11434"`
	APIKey           string        `envconfig:"LLM_API_KEY"`
	FallbackProvider string        `envconfig:"LLM_FALLBACK_PROVIDER"`
	FallbackModel    string        `envconfig:"LLM_FALLBACK_MODEL"`
	FallbackBaseURL  string        `envconfig:"LLM_FALLBACK_BASE_URL"`
	FallbackAPIKey   string        `envconfig:"LLM_FALLBACK_API_KEY"`
	Timeout          time.Duration `envconfig:"LLM_TIMEOUT" default:"90s"`
	SampleMaxRows    int           `envconfig:"INSIGHT_SAMPLE_MAX_ROWS" default:"120"`
	SampleTitleLen   int           `envconfig:"INSIGHT_SAMPLE_TITLE_LEN" default:"80"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
