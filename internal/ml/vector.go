// Package ml implements the training and inference pipeline used by the
// classifier: a character n-gram TF-IDF vectorizer, feature scaling, a
// feature union and a logistic-regression model, plus JSON persistence
// for the fitted artifacts.
package ml

import "math"

// Vector is a sparse feature vector. Indices are strictly increasing and
// parallel to Values; Dim is the full dimensionality of the space the
// vector lives in.
type Vector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
	Dim     int       `json:"dim"`
}

// Dot computes the inner product with a dense weight slice.
func (v Vector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		if idx < len(weights) {
			sum += v.Values[i] * weights[idx]
		}
	}
	return sum
}

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	var sq float64
	for _, val := range v.Values {
		sq += val * val
	}
	return math.Sqrt(sq)
}
