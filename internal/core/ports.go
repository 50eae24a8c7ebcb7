package core

import (
	"context"
)

// Classifier decides whether a single message is spam.
type Classifier interface {
	// Classify analyzes a raw message and returns a prediction.
	Classify(ctx context.Context, message string) (*Prediction, error)
}

// CacheRepository stores verdicts for previously classified messages.
type CacheRepository interface {
	// Get retrieves a cached entry by message digest.
	Get(ctx context.Context, digest string) (*CacheEntry, error)

	// Set stores a cache entry.
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, digest string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}
