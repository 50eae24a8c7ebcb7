// Package training fits the full classification pipeline on a prepared
// corpus and evaluates it on a held-out test set.
package training

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/dataset"
	"github.com/mikey/sms-spam-classifier/internal/features"
	"github.com/mikey/sms-spam-classifier/internal/ml"
)

// Options collects the tunable training parameters.
type Options struct {
	Tfidf ml.TfidfConfig
	Model ml.TrainConfig
}

// DefaultOptions returns the tuning the shipped model uses.
func DefaultOptions() Options {
	return Options{
		Tfidf: ml.DefaultTfidfConfig(),
		Model: ml.DefaultTrainConfig(),
	}
}

// Result is a trained bundle plus its evaluation.
type Result struct {
	Bundle    *ml.Bundle
	TrainEval ml.ConfusionMatrix
	TestEval  ml.ConfusionMatrix
}

// Train fits the feature union and logistic regression on the training
// records and evaluates both sets. The returned bundle is ready to
// persist.
func Train(trainRecs, testRecs []dataset.Record, opts Options, logger *zap.Logger) (*Result, error) {
	if len(trainRecs) == 0 {
		return nil, fmt.Errorf("training set is empty")
	}
	if len(testRecs) == 0 {
		return nil, fmt.Errorf("test set is empty")
	}

	trainDocs, trainLabels := split(trainRecs)
	testDocs, testLabels := split(testRecs)

	logger.Info("Extracting features",
		zap.Int("train_samples", len(trainDocs)),
		zap.Int("test_samples", len(testDocs)))

	union := ml.NewFeatureUnion(opts.Tfidf, features.Count)
	if err := union.Fit(trainDocs, features.ExtractAll(trainDocs)); err != nil {
		return nil, err
	}

	trainVecs, err := union.Transform(trainDocs, features.ExtractAll(trainDocs))
	if err != nil {
		return nil, err
	}
	testVecs, err := union.Transform(testDocs, features.ExtractAll(testDocs))
	if err != nil {
		return nil, err
	}

	logger.Info("Training logistic regression",
		zap.Int("dimensions", union.Dim()),
		zap.Int("epochs", opts.Model.Epochs),
		zap.Int64("seed", opts.Model.Seed))

	model := ml.NewLogisticRegression(opts.Model)
	if err := model.Fit(trainVecs, trainLabels); err != nil {
		return nil, err
	}

	trainEval, err := ml.Confusion(trainLabels, model.PredictAll(trainVecs))
	if err != nil {
		return nil, err
	}
	testEval, err := ml.Confusion(testLabels, model.PredictAll(testVecs))
	if err != nil {
		return nil, err
	}

	bundle := &ml.Bundle{
		Vectorizer:    union,
		Model:         model,
		FeatureNames:  features.Names(),
		TrainAccuracy: trainEval.Accuracy(),
		TestAccuracy:  testEval.Accuracy(),
		TrainedAt:     time.Now(),
	}

	return &Result{Bundle: bundle, TrainEval: trainEval, TestEval: testEval}, nil
}

func split(records []dataset.Record) (docs []string, labels []int) {
	docs = make([]string, len(records))
	labels = make([]int, len(records))
	for i, rec := range records {
		docs[i] = rec.Message
		if rec.Label == core.LabelSpam {
			labels[i] = 1
		}
	}
	return docs, labels
}
