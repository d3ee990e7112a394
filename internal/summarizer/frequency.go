// Package summarizer produces the short extractive summary shown after a
// document is loaded.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
	wordRe     = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// Frequency ranks sentences by normalized token frequency, with stopwords
// filtered, and keeps the highest-scoring ones in document order.
type Frequency struct {
	stopwords map[string]struct{}
}

// NewFrequency creates a frequency-based summarizer.
func NewFrequency() *Frequency {
	return &Frequency{stopwords: stopwordSet()}
}

// Summarize returns up to maxSentences sentences of the text, ordered as
// they appear in the document.
func (f *Frequency) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := f.tokenFrequencies(sentences)
	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sent := range sentences {
		scores[i] = ranked{idx: i, score: f.sentenceScore(sent, freq)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	keep := make([]int, maxSentences)
	for i := range keep {
		keep[i] = scores[i].idx
	}
	sort.Ints(keep)

	parts := make([]string, len(keep))
	for i, idx := range keep {
		parts[i] = strings.TrimSpace(sentences[idx])
	}
	return strings.Join(parts, " "), nil
}

// tokenFrequencies counts non-stopword tokens across all sentences and
// normalizes counts to [0,1].
func (f *Frequency) tokenFrequencies(sentences []string) map[string]float64 {
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range tokens(sent) {
			if _, skip := f.stopwords[tok]; skip {
				continue
			}
			freq[tok]++
		}
	}
	maxCount := 0.0
	for _, c := range freq {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount > 0 {
		for tok, c := range freq {
			freq[tok] = c / maxCount
		}
	}
	return freq
}

// sentenceScore sums token weights, damped by sentence length so long
// sentences do not dominate.
func (f *Frequency) sentenceScore(sentence string, freq map[string]float64) float64 {
	toks := tokens(sentence)
	if len(toks) == 0 {
		return 0
	}
	total := 0.0
	for _, tok := range toks {
		total += freq[tok]
	}
	return total / math.Sqrt(float64(len(toks)))
}

func tokens(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

func stopwordSet() map[string]struct{} {
	words := strings.Fields(
		"a an the and or but if then else for to of in on at by with as is are was were be been being " +
			"it this that these those from up down over under again further than so such into about between " +
			"through during before after above below out off own same too very can will just don should now")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
