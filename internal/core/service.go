package core

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ClassificationService is the core service for message classification.
// It fronts a Classifier with an optional verdict cache and applies the
// configured spam threshold to the raw score.
type ClassificationService struct {
	classifier   Classifier
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	threshold    float64
}

// NewClassificationService creates a new classification service.
func NewClassificationService(
	classifier Classifier,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	threshold float64,
) *ClassificationService {
	return &ClassificationService{
		classifier:   classifier,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
		threshold:    threshold,
	}
}

// Classify determines whether a message is spam. Blank messages are ham
// by definition and never reach the classifier.
func (s *ClassificationService) Classify(ctx context.Context, message string) (*Prediction, error) {
	if strings.TrimSpace(message) == "" {
		return &Prediction{
			Label:       LabelHam,
			IsSpam:      false,
			Score:       0,
			Confidence:  1,
			Explanation: "Empty message",
			AnalyzedAt:  time.Now(),
			ModelUsed:   "none",
		}, nil
	}

	digest := MessageDigest(message)

	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Cache hit for message", zap.String("digest", digest))
			return &Prediction{
				Label:       entry.Label,
				IsSpam:      entry.Label == LabelSpam,
				Score:       entry.Score,
				Confidence:  1, // verdicts are cached as-is
				Explanation: "Result from cache",
				AnalyzedAt:  time.Now(),
				ModelUsed:   "cache",
			}, nil
		}
	}

	result, err := s.classifier.Classify(ctx, message)
	if err != nil {
		return nil, err
	}

	// The threshold decides, not the classifier's own cutoff.
	result.IsSpam = result.Score >= s.threshold
	if result.IsSpam {
		result.Label = LabelSpam
	} else {
		result.Label = LabelHam
	}

	if s.cacheEnabled {
		entry := &CacheEntry{
			MessageDigest: digest,
			Label:         result.Label,
			Score:         result.Score,
			LastSeen:      time.Now(),
			ExpiresAt:     time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return result, nil
}

// Threshold returns the configured spam decision threshold.
func (s *ClassificationService) Threshold() float64 {
	return s.threshold
}
