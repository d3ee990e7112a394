package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"docqa/internal/domain"
)

// ChunkingConfig controls the fixed-length overlapping windows.
type ChunkingConfig struct {
	MaxLength int `yaml:"max_length"`
	Overlap   int `yaml:"overlap"`
}

// RetrievalConfig controls top-k search and the context character budget.
type RetrievalConfig struct {
	TopK            int `yaml:"top_k"`
	MaxContextChars int `yaml:"max_context_chars"`
}

// EmbedderConfig configures the OpenAI-compatible embeddings endpoint.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AnswerConfig configures the chat completion endpoint.
type AnswerConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// SummaryConfig controls the post-load document summary.
type SummaryConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Answer    AnswerConfig    `yaml:"answer"`
	Summary   SummaryConfig   `yaml:"summary"`
}

// Load reads configuration from path. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns the reference parameters: 500-byte windows with 100 bytes
// of overlap, top-5 retrieval, a 500-character context budget, and the
// reference model call defaults.
func Default() *AppConfig {
	return &AppConfig{
		Chunking:  ChunkingConfig{MaxLength: 500, Overlap: 100},
		Retrieval: RetrievalConfig{TopK: 5, MaxContextChars: 500},
		Embedder: EmbedderConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "text-embedding-3-small",
			TimeoutSecs: 30,
		},
		Answer: AnswerConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   150,
			Temperature: 0.7,
			TimeoutSecs: 90,
		},
		Summary: SummaryConfig{MaxSentences: 3},
	}
}

func applyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.MaxContextChars == 0 {
		cfg.Retrieval.MaxContextChars = def.Retrieval.MaxContextChars
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = def.Embedder.APIKeyEnv
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = def.Embedder.Model
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = def.Embedder.TimeoutSecs
	}
	if cfg.Answer.APIKeyEnv == "" {
		cfg.Answer.APIKeyEnv = def.Answer.APIKeyEnv
	}
	if cfg.Answer.Model == "" {
		cfg.Answer.Model = def.Answer.Model
	}
	if cfg.Answer.MaxTokens == 0 {
		cfg.Answer.MaxTokens = def.Answer.MaxTokens
	}
	// Temperature is deliberately not refilled: 0 is a meaningful value
	// (deterministic sampling) and Load unmarshals over the defaults, so an
	// absent key already keeps 0.7.
	if cfg.Answer.TimeoutSecs == 0 {
		cfg.Answer.TimeoutSecs = def.Answer.TimeoutSecs
	}
	if cfg.Summary.MaxSentences == 0 {
		cfg.Summary.MaxSentences = def.Summary.MaxSentences
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	if c.Chunking.MaxLength <= 0 {
		return fmt.Errorf("%w: chunking.max_length must be positive", domain.ErrChunkConfig)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.MaxLength {
		return fmt.Errorf("%w: chunking.overlap must be in [0, max_length)", domain.ErrChunkConfig)
	}
	if c.Retrieval.TopK <= 0 {
		return errors.New("retrieval.top_k must be positive")
	}
	if c.Retrieval.MaxContextChars <= 0 {
		return errors.New("retrieval.max_context_chars must be positive")
	}
	if c.Answer.MaxTokens <= 0 {
		return errors.New("answer.max_tokens must be positive")
	}
	return nil
}
