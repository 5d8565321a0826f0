package textenc

import (
	"sort"
	"strings"
)

// TokenizerName identifies the tokenizer a stored vocabulary was fitted
// with. Artifacts recording a different tokenizer are rejected at load
// time.
const TokenizerName = "whitespace-lower"

// Vectorizer is a fixed-vocabulary bag-of-words counter: whitespace
// tokens, lowercased, vocabulary sorted lexicographically. It is fitted
// once on the training corpus and reused verbatim at inference time.
type Vectorizer struct {
	vocab map[string]int
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// NewFromVocabulary restores a fitted vectorizer from terms listed in
// index order.
func NewFromVocabulary(terms []string) *Vectorizer {
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return &Vectorizer{vocab: vocab}
}

// Fit builds the vocabulary from the corpus. Refitting replaces the
// previous vocabulary.
func (v *Vectorizer) Fit(corpus []string) {
	seen := make(map[string]struct{})
	for _, doc := range corpus {
		for _, tok := range tokenize(doc) {
			seen[tok] = struct{}{}
		}
	}

	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v.vocab = make(map[string]int, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
	}
}

// Transform counts vocabulary tokens in the text. Tokens outside the
// vocabulary are dropped; text with no known tokens yields the zero
// vector.
func (v *Vectorizer) Transform(text string) []float64 {
	counts := make([]float64, len(v.vocab))
	for _, tok := range tokenize(text) {
		if i, ok := v.vocab[tok]; ok {
			counts[i]++
		}
	}
	return counts
}

// Dim returns the vocabulary size, which is the model's input width.
func (v *Vectorizer) Dim() int {
	return len(v.vocab)
}

// Vocabulary returns the fitted terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	terms := make([]string, len(v.vocab))
	for t, i := range v.vocab {
		terms[i] = t
	}
	return terms
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
