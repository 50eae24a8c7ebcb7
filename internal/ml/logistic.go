package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainConfig holds logistic-regression training parameters.
type TrainConfig struct {
	// C is the inverse regularization strength; smaller values mean
	// stronger L2 regularization.
	C float64 `json:"c"`
	// Epochs is the number of passes over the training set.
	Epochs int `json:"epochs"`
	// LearningRate is the initial step size, decayed per epoch.
	LearningRate float64 `json:"learning_rate"`
	// Seed makes the per-epoch sample shuffle reproducible.
	Seed int64 `json:"seed"`
	// BalanceClasses reweights samples inversely to class frequency,
	// which matters here: ham heavily outnumbers spam.
	BalanceClasses bool `json:"balance_classes"`
}

// DefaultTrainConfig mirrors the original model's tuning.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		C:              0.5,
		Epochs:         50,
		LearningRate:   0.5,
		Seed:           42,
		BalanceClasses: true,
	}
}

// LogisticRegression is a binary linear classifier trained by seeded
// stochastic gradient descent with L2 regularization. Labels are 0 (ham)
// and 1 (spam).
type LogisticRegression struct {
	Config  TrainConfig `json:"config"`
	Weights []float64   `json:"weights"`
	Bias    float64     `json:"bias"`
}

// NewLogisticRegression creates an untrained model.
func NewLogisticRegression(cfg TrainConfig) *LogisticRegression {
	return &LogisticRegression{Config: cfg}
}

// Fit trains the model on sparse vectors and 0/1 labels. All vectors
// must share the same dimensionality.
func (m *LogisticRegression) Fit(x []Vector, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("logistic regression: empty training set")
	}
	if len(x) != len(y) {
		return fmt.Errorf("logistic regression: %d vectors but %d labels", len(x), len(y))
	}

	dim := x[0].Dim
	for i, v := range x {
		if v.Dim != dim {
			return fmt.Errorf("logistic regression: vector %d has dim %d, expected %d", i, v.Dim, dim)
		}
	}

	nPos := 0
	for _, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("logistic regression: label must be 0 or 1, got %d", label)
		}
		nPos += label
	}
	nNeg := len(y) - nPos

	classWeight := [2]float64{1, 1}
	if m.Config.BalanceClasses && nPos > 0 && nNeg > 0 {
		n := float64(len(y))
		classWeight[0] = n / (2 * float64(nNeg))
		classWeight[1] = n / (2 * float64(nPos))
	}

	m.Weights = make([]float64, dim)
	m.Bias = 0

	// Weight decay is applied through a running scale factor so each
	// sample update only touches its non-zero coordinates.
	alpha := 1 / (m.Config.C * float64(len(x)))
	scale := 1.0
	rng := rand.New(rand.NewSource(m.Config.Seed))
	order := rng.Perm(len(x))

	for epoch := 0; epoch < m.Config.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		lr := m.Config.LearningRate / (1 + float64(epoch))

		for _, i := range order {
			z := scale*x[i].Dot(m.Weights) + m.Bias
			p := sigmoid(z)
			g := (p - float64(y[i])) * classWeight[y[i]]

			decay := 1 - lr*alpha
			if decay > 0 {
				scale *= decay
			}
			for k, idx := range x[i].Indices {
				m.Weights[idx] -= lr * g * x[i].Values[k] / scale
			}
			m.Bias -= lr * g

			if scale < 1e-9 {
				m.foldScale(&scale)
			}
		}
	}
	m.foldScale(&scale)
	return nil
}

func (m *LogisticRegression) foldScale(scale *float64) {
	for i := range m.Weights {
		m.Weights[i] *= *scale
	}
	*scale = 1
}

// PredictProba returns the probability that v belongs to class 1 (spam).
func (m *LogisticRegression) PredictProba(v Vector) float64 {
	return sigmoid(v.Dot(m.Weights) + m.Bias)
}

// Predict returns the class label for v at the 0.5 decision boundary.
func (m *LogisticRegression) Predict(v Vector) int {
	if m.PredictProba(v) >= 0.5 {
		return 1
	}
	return 0
}

// PredictAll classifies every vector, preserving order.
func (m *LogisticRegression) PredictAll(vs []Vector) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = m.Predict(v)
	}
	return out
}

func sigmoid(z float64) float64 {
	// Clamp to keep exp from overflowing on extreme margins.
	if z > 35 {
		return 1
	}
	if z < -35 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}
