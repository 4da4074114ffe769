package risk

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const maxFeatures = 5000

// Vectorizer maps text to l2-normalized tf-idf vectors over word unigrams
// and bigrams. The vocabulary and idf table are fixed at fit time; unseen
// terms are ignored afterwards.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// terms returns unigrams plus adjacent bigrams ("severe tumor").
func terms(text string) []string {
	tokens := tokenize(text)
	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// FitVectorizer builds the vocabulary and idf table from the training corpus.
// When the corpus yields more than maxFeatures distinct terms, the most
// frequent ones win; ties break lexicographically so fitting is deterministic.
func FitVectorizer(texts []string) *Vectorizer {
	corpusFreq := map[string]int{}
	docFreq := map[string]int{}
	for _, text := range texts {
		seen := map[string]bool{}
		for _, term := range terms(text) {
			corpusFreq[term]++
			if !seen[term] {
				docFreq[term]++
				seen[term] = true
			}
		}
	}

	selected := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		selected = append(selected, term)
	}
	sort.Slice(selected, func(i, j int) bool {
		if corpusFreq[selected[i]] != corpusFreq[selected[j]] {
			return corpusFreq[selected[i]] > corpusFreq[selected[j]]
		}
		return selected[i] < selected[j]
	})
	if len(selected) > maxFeatures {
		selected = selected[:maxFeatures]
	}
	sort.Strings(selected)

	vocab := make(map[string]int, len(selected))
	idf := make([]float64, len(selected))
	n := float64(len(texts))
	for i, term := range selected {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return &Vectorizer{Vocabulary: vocab, IDF: idf}
}

// Transform maps one text onto the fitted feature space.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, term := range terms(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
