// Package model adapts a trained bundle to the core Classifier port.
package model

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/features"
	"github.com/mikey/sms-spam-classifier/internal/ml"
)

// Classifier scores messages with a persisted TF-IDF + logistic
// regression bundle. It is read-only after construction and safe for
// concurrent use.
type Classifier struct {
	bundle *ml.Bundle
	logger *zap.Logger
}

// New wraps an already-loaded bundle.
func New(bundle *ml.Bundle, logger *zap.Logger) (*Classifier, error) {
	if bundle.Vectorizer.ExtraDim != features.Count {
		return nil, fmt.Errorf("bundle expects %d dense features, extractor produces %d",
			bundle.Vectorizer.ExtraDim, features.Count)
	}
	return &Classifier{bundle: bundle, logger: logger}, nil
}

// Load reads a bundle from disk and wraps it.
func Load(path string, logger *zap.Logger) (*Classifier, error) {
	bundle, err := ml.LoadBundle(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded model bundle",
		zap.String("path", path),
		zap.Int("dimensions", bundle.Vectorizer.Dim()),
		zap.Float64("test_accuracy", bundle.TestAccuracy),
		zap.Time("trained_at", bundle.TrainedAt))
	return New(bundle, logger)
}

// Classify scores the raw message. The message is deliberately not
// normalized first: casing, URLs and punctuation are themselves spam
// signals the feature extractor depends on.
func (c *Classifier) Classify(_ context.Context, message string) (*core.Prediction, error) {
	feats := features.Extract(message)
	vec, err := c.bundle.Vectorizer.TransformOne(message, feats)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize message: %w", err)
	}

	score := c.bundle.Model.PredictProba(vec)
	isSpam := score >= 0.5

	label := core.LabelHam
	explanation := "Message resembles legitimate traffic"
	if isSpam {
		label = core.LabelSpam
		explanation = "Message matches learned spam characteristics"
	}

	return &core.Prediction{
		Label:       label,
		IsSpam:      isSpam,
		Score:       score,
		Confidence:  2 * math.Abs(score-0.5),
		Explanation: explanation,
		AnalyzedAt:  time.Now(),
		ModelUsed:   "tfidf-logreg",
	}, nil
}

// Bundle exposes the underlying artifact, mainly for reporting.
func (c *Classifier) Bundle() *ml.Bundle {
	return c.bundle
}
