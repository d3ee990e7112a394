// Package embedding wraps an OpenAI-compatible embeddings endpoint behind
// the domain.Embedder capability interface.
package embedding

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docqa/internal/domain"
)

// Config configures the embeddings client. The API key is read from the
// environment, never stored in config files.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// OpenAIEmbedder is a batch embeddings client. Output order follows input
// order and every vector shares the model's fixed dimensionality.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates the embeddings client from config, resolving the API key
// from the environment.
func NewOpenAI(cfg Config) (*OpenAIEmbedder, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", keyEnv)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Embed returns one vector per input text, in input order. Empty inputs are
// rejected before any network call; whitespace-only texts are legitimate
// (an overlapping window over a whitespace run produces them) and are sent
// through. Any failure wraps domain.ErrModel and yields no vectors, so a
// caller can never index partial output.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to embed", domain.ErrModel)
	}
	for i, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("%w: text %d is empty", domain.ErrModel, i)
		}
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModel, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrModel, len(resp.Data), len(texts))
	}

	// The API tags each embedding with the index of its input; place by tag
	// so the order contract holds even if the response is reordered.
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", domain.ErrModel, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	dim := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: missing embedding for text %d", domain.ErrModel, i)
		}
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return nil, fmt.Errorf("%w: embedding %d has dimension %d, expected %d",
				domain.ErrModel, i, len(v), dim)
		}
	}
	return vectors, nil
}
