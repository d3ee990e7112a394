package summarizer

import (
	"strings"
	"testing"
)

func TestSummarize_KeepsDocumentOrder(t *testing.T) {
	text := "Alpha beta gamma. Filler words only here. Alpha beta again gamma delta. Beta gamma delta alpha."
	s := NewFrequency()
	got, err := s.Summarize(text, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Fatal("expected non-empty summary")
	}
	sentences := strings.Split(got, ". ")
	if len(sentences) > 2 {
		t.Fatalf("expected at most 2 sentences, got %d: %q", len(sentences), got)
	}
	// Selected sentences must appear in the same order as in the document.
	last := -1
	for _, sent := range sentences {
		idx := strings.Index(text, strings.TrimSuffix(strings.TrimSpace(sent), "."))
		if idx < last {
			t.Fatalf("summary reordered sentences: %q", got)
		}
		last = idx
	}
}

func TestSummarize_NoSentencePunctuation(t *testing.T) {
	s := NewFrequency()
	got, err := s.Summarize("just a fragment without punctuation", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "just a fragment without punctuation" {
		t.Fatalf("expected trimmed text back, got %q", got)
	}
}

func TestSummarize_MoreRequestedThanAvailable(t *testing.T) {
	s := NewFrequency()
	got, err := s.Summarize("One sentence. Two sentence.", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != "One sentence. Two sentence." {
		t.Fatalf("expected both sentences, got %q", got)
	}
}
