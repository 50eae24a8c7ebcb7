package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Bundle is the single persisted artifact produced by training: the
// fitted feature union and model plus enough metadata to sanity-check a
// load. It is written once by the trainer and loaded once per process by
// the prediction side, then reused for every classification.
type Bundle struct {
	Vectorizer    *FeatureUnion       `json:"vectorizer"`
	Model         *LogisticRegression `json:"model"`
	FeatureNames  []string            `json:"feature_names"`
	TrainAccuracy float64             `json:"train_accuracy"`
	TestAccuracy  float64             `json:"test_accuracy"`
	TrainedAt     time.Time           `json:"trained_at"`
}

// Save writes the bundle as indented JSON to path.
func (b *Bundle) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(b); err != nil {
		return fmt.Errorf("failed to encode model bundle: %w", err)
	}
	return nil
}

// LoadBundle reads a bundle from path and validates that the model's
// weight vector matches the vectorizer's dimensionality. A mismatch
// means the artifact was produced by an incompatible feature layout.
func LoadBundle(path string) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	var b Bundle
	if err := json.NewDecoder(file).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode model bundle: %w", err)
	}

	if b.Vectorizer == nil || b.Model == nil {
		return nil, fmt.Errorf("model bundle is incomplete")
	}
	if got, want := len(b.Model.Weights), b.Vectorizer.Dim(); got != want {
		return nil, fmt.Errorf("model bundle mismatch: %d weights for %d features", got, want)
	}
	if got, want := len(b.FeatureNames), b.Vectorizer.ExtraDim; got != want {
		return nil, fmt.Errorf("model bundle mismatch: %d feature names for %d dense features", got, want)
	}
	return &b, nil
}
