// Package service orchestrates the retrieval pipeline: chunk, embed, index
// on load; embed, search, assemble, prompt, complete on ask.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"docqa/internal/chunker"
	"docqa/internal/domain"
	"docqa/internal/index"
	"docqa/internal/prompt"
)

// Options are the retrieval and generation parameters for a service.
type Options struct {
	TopK             int
	MaxContextChars  int
	MaxTokens        int
	Temperature      float32
	SystemPrompt     string
	SummarySentences int
}

// Session holds the document/chunk/index triple for one loaded document.
// It is isolated per load: a new upload gets a fresh Session and the old one
// is discarded, never updated.
type Session struct {
	Document domain.Document
	Chunks   []domain.Chunk
	Summary  string
	idx      *index.Flat
}

// ChunkCount returns the number of chunks indexed for the session.
func (s *Session) ChunkCount() int { return len(s.Chunks) }

// Answer is the result of one question.
type Answer struct {
	Text    string
	Context string
	Results []domain.SearchResult
}

// Service wires the capability interfaces together. All operations are
// synchronous; a call runs to completion or fails.
type Service struct {
	chunker    *chunker.WindowChunker
	embedder   domain.Embedder
	completer  domain.Completer
	summarizer domain.Summarizer
	opts       Options
	log        *log.Logger
}

// New creates a Service. summarizer may be nil to skip the load summary.
func New(c *chunker.WindowChunker, e domain.Embedder, a domain.Completer, s domain.Summarizer, opts Options, logger *log.Logger) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxContextChars <= 0 {
		opts.MaxContextChars = 500
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 150
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = prompt.DefaultSystemPrompt
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		chunker:    c,
		embedder:   e,
		completer:  a,
		summarizer: s,
		opts:       opts,
		log:        logger,
	}
}

// LoadDocument chunks, embeds, and indexes the document, returning the
// session questions will run against. A document with zero chunks blocks
// question-answering here, before any query can reach an empty index.
func (s *Service) LoadDocument(ctx context.Context, name, content string) (*Session, error) {
	doc := domain.Document{Name: name, Content: content}
	chunks := s.chunker.Chunk(doc)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %q produced no chunks", domain.ErrEmptyIndex, name)
	}
	s.log.Info("document chunked", "name", name, "bytes", len(content), "chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return nil, err
	}
	s.log.Info("index built", "vectors", idx.Len(), "dimension", idx.Dimension())

	summary := ""
	if s.summarizer != nil {
		summary, err = s.summarizer.Summarize(content, s.opts.SummarySentences)
		if err != nil {
			return nil, err
		}
	}

	return &Session{Document: doc, Chunks: chunks, Summary: summary, idx: idx}, nil
}

// Ask answers a question against the session's document. The empty question
// is rejected before any embedding call is made.
func (s *Service) Ask(ctx context.Context, sess *Session, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}
	if sess == nil || sess.idx == nil {
		return nil, fmt.Errorf("%w: no document loaded", domain.ErrEmptyIndex)
	}

	queryVectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	results, err := sess.idx.Search(queryVectors[0], s.opts.TopK)
	if err != nil {
		return nil, err
	}
	s.log.Debug("retrieved chunks", "question", question, "results", len(results))

	texts := make([]string, len(sess.Chunks))
	for i, ch := range sess.Chunks {
		texts[i] = ch.Text
	}
	order := make([]int, len(results))
	for i, r := range results {
		order[i] = r.Position
	}
	contextText := prompt.Assemble(texts, order, s.opts.MaxContextChars)

	rendered := prompt.Build(s.opts.SystemPrompt, contextText, question)
	answer, err := s.completer.Complete(ctx, rendered, s.opts.MaxTokens, s.opts.Temperature)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Text:    strings.TrimSpace(answer),
		Context: contextText,
		Results: results,
	}, nil
}
