package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFitVectorizer_BuildsUnigramsAndBigrams(t *testing.T) {
	v := FitVectorizer([]string{"severe tumor found", "normal checkup"})
	require.Contains(t, v.Vocabulary, "severe")
	require.Contains(t, v.Vocabulary, "tumor")
	require.Contains(t, v.Vocabulary, "severe tumor")
	require.Contains(t, v.Vocabulary, "normal checkup")
	require.Len(t, v.IDF, len(v.Vocabulary))
}

func TestTransform_L2Normalized(t *testing.T) {
	v := FitVectorizer([]string{"severe tumor", "normal checkup", "oncology referral"})
	vec := v.Transform("severe tumor oncology")
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	require.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestTransform_UnseenTermsIgnored(t *testing.T) {
	v := FitVectorizer([]string{"severe tumor"})
	vec := v.Transform("completely unrelated words")
	for _, x := range vec {
		require.Zero(t, x)
	}
}

func TestFitVectorizer_Deterministic(t *testing.T) {
	texts := []string{"severe tumor found", "normal checkup", "oncology referral scheduled"}
	a := FitVectorizer(texts)
	b := FitVectorizer(texts)
	require.Equal(t, a.Vocabulary, b.Vocabulary)
	require.Equal(t, a.IDF, b.IDF)
}

func TestTokenize_DropsShortAndPunctuation(t *testing.T) {
	tokens := tokenize("A severe, 2-stage tumor!")
	require.Equal(t, []string{"severe", "stage", "tumor"}, tokens)
}
