package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/mikey/sms-spam-classifier/internal/textproc"
)

// Label is the classification outcome attached to a message.
type Label string

const (
	LabelSpam Label = "spam"
	LabelHam  Label = "ham"
)

// ParseLabel validates a raw label string from a dataset.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelSpam:
		return LabelSpam, nil
	case LabelHam:
		return LabelHam, nil
	default:
		return "", fmt.Errorf("unknown label %q", s)
	}
}

// Prediction is the result of classifying a single message.
type Prediction struct {
	Label       Label
	IsSpam      bool
	Score       float64 // probability that the message is spam
	Confidence  float64
	Explanation string
	AnalyzedAt  time.Time
	ModelUsed   string
}

// CacheEntry is a stored verdict for a previously seen message, keyed by
// the digest of its normalized text.
type CacheEntry struct {
	MessageDigest string
	Label         Label
	Score         float64
	LastSeen      time.Time
	ExpiresAt     time.Time
}

// MessageDigest keys a message for caching. Normalizing first lets
// trivially reformatted copies of the same message share a verdict.
func MessageDigest(message string) string {
	sum := sha256.Sum256([]byte(textproc.Normalize(message)))
	return hex.EncodeToString(sum[:])
}
