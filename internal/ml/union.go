package ml

import "fmt"

// FeatureUnion concatenates two feature sources per message: the TF-IDF
// vector of the raw text and a dense block of hand-crafted features
// scaled to zero mean and unit variance. The dense block occupies the
// indices after the vocabulary, so row i of any output always aligns
// with input message i.
type FeatureUnion struct {
	Tfidf    *TfidfVectorizer `json:"tfidf"`
	Scaler   *StandardScaler  `json:"scaler"`
	ExtraDim int              `json:"extra_dim"`
}

// NewFeatureUnion creates an unfitted union over a TF-IDF vectorizer and
// an extraDim-wide dense feature block.
func NewFeatureUnion(cfg TfidfConfig, extraDim int) *FeatureUnion {
	return &FeatureUnion{
		Tfidf:    NewTfidfVectorizer(cfg),
		Scaler:   &StandardScaler{},
		ExtraDim: extraDim,
	}
}

// Fit fits both sources. extra[i] is the dense feature row for docs[i];
// every row must be ExtraDim wide.
func (u *FeatureUnion) Fit(docs []string, extra [][]float64) error {
	if len(docs) != len(extra) {
		return fmt.Errorf("feature union: %d documents but %d feature rows", len(docs), len(extra))
	}
	u.Tfidf.Fit(docs)
	u.Scaler.Fit(extra)
	return nil
}

// Transform produces one combined vector per document, in input order.
func (u *FeatureUnion) Transform(docs []string, extra [][]float64) ([]Vector, error) {
	if len(docs) != len(extra) {
		return nil, fmt.Errorf("feature union: %d documents but %d feature rows", len(docs), len(extra))
	}
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		v, err := u.TransformOne(doc, extra[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// TransformOne combines a single document with its dense feature row.
func (u *FeatureUnion) TransformOne(doc string, extra []float64) (Vector, error) {
	if len(extra) != u.ExtraDim {
		return Vector{}, fmt.Errorf("feature union: expected %d features, got %d", u.ExtraDim, len(extra))
	}

	tv := u.Tfidf.TransformOne(doc)
	scaled := u.Scaler.Transform(extra)

	offset := u.Tfidf.Dim()
	indices := make([]int, 0, len(tv.Indices)+len(scaled))
	values := make([]float64, 0, len(tv.Values)+len(scaled))
	indices = append(indices, tv.Indices...)
	values = append(values, tv.Values...)
	for j, v := range scaled {
		if v == 0 {
			continue
		}
		indices = append(indices, offset+j)
		values = append(values, v)
	}

	return Vector{Indices: indices, Values: values, Dim: u.Dim()}, nil
}

// Dim is the combined dimensionality.
func (u *FeatureUnion) Dim() int {
	return u.Tfidf.Dim() + u.ExtraDim
}
