package risk

import (
	"encoding/json"
	"fmt"

	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
)

// MinTrainDocuments is the minimum number of usable labeled samples a
// training run needs before the result is considered stable.
const MinTrainDocuments = 4

type Sample struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

// Scorer is the inference-side capability of a trained model.
type Scorer interface {
	PredictProbability(texts []string) []float64
}

// Model is the matched vectorizer/classifier pair from one training run.
// The two are serialized, stored, and loaded strictly as one unit; a
// classifier never runs against another run's vectorizer.
type Model struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Classifier *Classifier `json:"classifier"`
}

// Train fits a fresh pair on the given samples.
func Train(samples []Sample) (*Model, error) {
	if len(samples) < MinTrainDocuments {
		return nil, fmt.Errorf("%w: %d usable samples, need at least %d",
			appErr.ErrInsufficientData, len(samples), MinTrainDocuments)
	}
	texts := make([]string, len(samples))
	labels := make([]int, len(samples))
	for i, s := range samples {
		texts[i] = s.Text
		labels[i] = s.Label
	}
	vectorizer := FitVectorizer(texts)
	features := make([][]float64, len(texts))
	for i, text := range texts {
		features[i] = vectorizer.Transform(text)
	}
	return &Model{
		Vectorizer: vectorizer,
		Classifier: fitClassifier(features, labels),
	}, nil
}

// Vectorize exposes the fitted feature mapping for one text. Used by the
// document vector cache; the result is only meaningful for this model.
func (m *Model) Vectorize(text string) []float64 {
	return m.Vectorizer.Transform(text)
}

// ScoreVector scores a feature vector previously produced by Vectorize.
func (m *Model) ScoreVector(features []float64) float64 {
	return m.Classifier.PredictProbability(features)
}

func (m *Model) PredictProbability(texts []string) []float64 {
	probs := make([]float64, len(texts))
	for i, text := range texts {
		probs[i] = m.ScoreVector(m.Vectorize(text))
	}
	return probs
}

func (m *Model) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func Unmarshal(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Vectorizer == nil || m.Classifier == nil {
		return nil, fmt.Errorf("artifact incomplete: vectorizer and classifier must be stored together")
	}
	return &m, nil
}
