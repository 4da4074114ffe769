package risk

import "math"

const (
	trainIterations = 1000
	learningRate    = 0.5
	l2Penalty       = 0.01
)

// Classifier is a binary logistic regression over the vectorizer's output
// space. Training is full-batch gradient descent from a zero start, so a
// given corpus always yields the same weights.
type Classifier struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

func fitClassifier(features [][]float64, labels []int) *Classifier {
	if len(features) == 0 {
		return &Classifier{}
	}
	dims := len(features[0])
	n := float64(len(features))
	weights := make([]float64, dims)
	bias := 0.0

	grad := make([]float64, dims)
	for iter := 0; iter < trainIterations; iter++ {
		for i := range grad {
			grad[i] = 0
		}
		gradBias := 0.0
		for row, x := range features {
			err := sigmoid(dot(weights, x)+bias) - float64(labels[row])
			for i, xi := range x {
				grad[i] += err * xi
			}
			gradBias += err
		}
		for i := range weights {
			weights[i] -= learningRate * (grad[i]/n + l2Penalty*weights[i]/n)
		}
		bias -= learningRate * gradBias / n
	}
	return &Classifier{Weights: weights, Bias: bias}
}

// PredictProbability returns the probability of the high-risk class.
func (c *Classifier) PredictProbability(features []float64) float64 {
	return sigmoid(dot(c.Weights, features) + c.Bias)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
