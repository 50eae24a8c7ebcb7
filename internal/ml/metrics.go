package ml

import "fmt"

// ConfusionMatrix summarizes binary classification outcomes with spam as
// the positive class.
type ConfusionMatrix struct {
	TrueHam   int // ham predicted ham
	FalseSpam int // ham predicted spam
	FalseHam  int // spam predicted ham
	TrueSpam  int // spam predicted spam
}

// Confusion tallies predictions against true 0/1 labels.
func Confusion(yTrue, yPred []int) (ConfusionMatrix, error) {
	if len(yTrue) != len(yPred) {
		return ConfusionMatrix{}, fmt.Errorf("metrics: %d labels but %d predictions", len(yTrue), len(yPred))
	}
	var cm ConfusionMatrix
	for i := range yTrue {
		switch {
		case yTrue[i] == 0 && yPred[i] == 0:
			cm.TrueHam++
		case yTrue[i] == 0 && yPred[i] == 1:
			cm.FalseSpam++
		case yTrue[i] == 1 && yPred[i] == 0:
			cm.FalseHam++
		default:
			cm.TrueSpam++
		}
	}
	return cm, nil
}

// Accuracy is the fraction of correct predictions.
func (cm ConfusionMatrix) Accuracy() float64 {
	total := cm.TrueHam + cm.FalseSpam + cm.FalseHam + cm.TrueSpam
	if total == 0 {
		return 0
	}
	return float64(cm.TrueHam+cm.TrueSpam) / float64(total)
}

// SpamPrecision is the fraction of spam predictions that were spam.
func (cm ConfusionMatrix) SpamPrecision() float64 {
	return ratio(cm.TrueSpam, cm.TrueSpam+cm.FalseSpam)
}

// SpamRecall (sensitivity) is the fraction of spam that was caught.
func (cm ConfusionMatrix) SpamRecall() float64 {
	return ratio(cm.TrueSpam, cm.TrueSpam+cm.FalseHam)
}

// HamPrecision is the fraction of ham predictions that were ham.
func (cm ConfusionMatrix) HamPrecision() float64 {
	return ratio(cm.TrueHam, cm.TrueHam+cm.FalseHam)
}

// HamRecall (specificity) is the fraction of ham that was kept.
func (cm ConfusionMatrix) HamRecall() float64 {
	return ratio(cm.TrueHam, cm.TrueHam+cm.FalseSpam)
}

// SpamF1 is the harmonic mean of spam precision and recall.
func (cm ConfusionMatrix) SpamF1() float64 {
	return f1(cm.SpamPrecision(), cm.SpamRecall())
}

// HamF1 is the harmonic mean of ham precision and recall.
func (cm ConfusionMatrix) HamF1() float64 {
	return f1(cm.HamPrecision(), cm.HamRecall())
}

// FalsePositiveRate is the fraction of ham flagged as spam.
func (cm ConfusionMatrix) FalsePositiveRate() float64 {
	return ratio(cm.FalseSpam, cm.FalseSpam+cm.TrueHam)
}

// FalseNegativeRate is the fraction of spam that slipped through.
func (cm ConfusionMatrix) FalseNegativeRate() float64 {
	return ratio(cm.FalseHam, cm.FalseHam+cm.TrueSpam)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
