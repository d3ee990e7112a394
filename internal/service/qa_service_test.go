package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"docqa/internal/chunker"
	"docqa/internal/domain"
	"docqa/internal/embedding"
)

// fakeEmbedder maps each text to a deterministic 2-vector so retrieval is
// predictable in tests.
type fakeEmbedder struct {
	calls   int
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := f.vectors[t]; ok {
			out[i] = v
			continue
		}
		out[i] = []float32{float32(len(t)), float32(strings.Count(t, "a"))}
	}
	return out, nil
}

type fakeCompleter struct {
	lastPrompt string
	answer     string
	err        error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int, _ float32) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestService(t *testing.T, emb *fakeEmbedder, comp *fakeCompleter, opts Options) *Service {
	t.Helper()
	c, err := chunker.NewWindowChunker(4, 1)
	if err != nil {
		t.Fatal(err)
	}
	return New(c, emb, comp, nil, opts, quietLogger())
}

func TestLoadDocument_EmptyDocumentBlocksQuestions(t *testing.T) {
	emb := &fakeEmbedder{}
	svc := newTestService(t, emb, &fakeCompleter{}, Options{})

	_, err := svc.LoadDocument(context.Background(), "empty.txt", "")
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
	if emb.calls != 0 {
		t.Fatalf("expected no embedding calls for an empty document, got %d", emb.calls)
	}
}

func TestAsk_EmptyQuestionRejectedBeforeEmbedding(t *testing.T) {
	emb := &fakeEmbedder{}
	svc := newTestService(t, emb, &fakeCompleter{answer: "x"}, Options{})
	sess, err := svc.LoadDocument(context.Background(), "doc", "ABCDEFGHIJ")
	if err != nil {
		t.Fatal(err)
	}
	embedCallsAfterLoad := emb.calls

	_, err = svc.Ask(context.Background(), sess, "   ")
	if !errors.Is(err, domain.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	if emb.calls != embedCallsAfterLoad {
		t.Fatal("embedder must not be called for an empty question")
	}
}

func TestAsk_NoSession(t *testing.T) {
	svc := newTestService(t, &fakeEmbedder{}, &fakeCompleter{}, Options{})
	if _, err := svc.Ask(context.Background(), nil, "why?"); !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestAsk_EndToEnd(t *testing.T) {
	// Document "ABCDEFGHIJ" with window 4 and overlap 1 chunks into
	// ABCD, DEFG, GHIJ. Pin vectors so "DEFG" is the closest chunk.
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"ABCD":     {0, 0},
		"DEFG":     {10, 0},
		"GHIJ":     {0, 10},
		"closest?": {9, 0},
	}}
	comp := &fakeCompleter{answer: "  the answer  "}
	svc := newTestService(t, emb, comp, Options{TopK: 2, MaxContextChars: 9})

	sess, err := svc.LoadDocument(context.Background(), "doc", "ABCDEFGHIJ")
	if err != nil {
		t.Fatal(err)
	}
	if sess.ChunkCount() != 3 {
		t.Fatalf("expected 3 chunks, got %d", sess.ChunkCount())
	}

	ans, err := svc.Ask(context.Background(), sess, "closest?")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Text != "the answer" {
		t.Fatalf("expected trimmed answer, got %q", ans.Text)
	}
	if len(ans.Results) != 2 || ans.Results[0].Position != 1 {
		t.Fatalf("expected chunk 1 to rank first, got %+v", ans.Results)
	}
	// Context is "DEFG ABCD" hard-cut to 9 characters.
	if ans.Context != "DEFG ABCD" {
		t.Fatalf("unexpected context %q", ans.Context)
	}
	if !strings.Contains(comp.lastPrompt, "DEFG ABCD") {
		t.Fatal("expected assembled context inside prompt")
	}
	if !strings.Contains(comp.lastPrompt, "Question : closest? [/INST]") {
		t.Fatalf("prompt template not rendered: %q", comp.lastPrompt)
	}
}

func TestLoadDocument_WhitespaceOnlyChunkLoads(t *testing.T) {
	// "AB  CD" with window 2 and no overlap chunks into "AB", "  ", "CD".
	// The interior all-whitespace chunk must not block loading; the real
	// embedding client has to accept it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		type item struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			data[i] = item{Object: "embedding", Embedding: []float32{float32(i), 1}, Index: i}
		}
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_KEY", "test-key")

	emb, err := embedding.NewOpenAI(embedding.Config{BaseURL: srv.URL, Model: "test-model"})
	if err != nil {
		t.Fatal(err)
	}
	ch, err := chunker.NewWindowChunker(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	svc := New(ch, emb, &fakeCompleter{answer: "x"}, nil, Options{}, quietLogger())

	sess, err := svc.LoadDocument(context.Background(), "doc", "AB  CD")
	if err != nil {
		t.Fatalf("document with whitespace-only chunk must load, got %v", err)
	}
	if sess.ChunkCount() != 3 {
		t.Fatalf("expected 3 chunks, got %d", sess.ChunkCount())
	}
	if sess.Chunks[1].Text != "  " {
		t.Fatalf("expected interior whitespace chunk, got %q", sess.Chunks[1].Text)
	}
}

func TestAsk_CompletionFailurePropagates(t *testing.T) {
	emb := &fakeEmbedder{}
	comp := &fakeCompleter{err: domain.ErrRateLimited}
	svc := newTestService(t, emb, comp, Options{})
	sess, err := svc.LoadDocument(context.Background(), "doc", "ABCDEFGHIJ")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Ask(context.Background(), sess, "why?"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited to propagate, got %v", err)
	}
}
