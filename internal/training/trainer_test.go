package training

import (
	"testing"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/dataset"
	"github.com/mikey/sms-spam-classifier/internal/features"
)

func spam(msg string) dataset.Record { return dataset.Record{Label: core.LabelSpam, Message: msg} }
func ham(msg string) dataset.Record  { return dataset.Record{Label: core.LabelHam, Message: msg} }

func tinyCorpus() (train, test []dataset.Record) {
	train = []dataset.Record{
		spam("WINNER! You have won a FREE prize, claim now at http://win.example"),
		spam("URGENT! Your account is blocked, click http://bank.example immediately"),
		spam("Congratulations! Free cash bonus, call 89001234567 now"),
		spam("СРОЧНО! Вы выиграли приз 10000 руб, перейдите по ссылке"),
		spam("Ваша карта заблокирована, срочно позвоните +79001234567"),
		spam("Бесплатно! Получите кредит прямо сейчас, жмите на ссылку"),
		ham("hey, are we still on for lunch tomorrow?"),
		ham("running a bit late, be there in 10 minutes"),
		ham("thanks for the notes, really helped with the exam"),
		ham("привет, как дела? давно не виделись"),
		ham("мама просила купить хлеб по дороге домой"),
		ham("встречаемся завтра в семь у метро"),
	}
	test = []dataset.Record{
		spam("FREE entry! Win cash now, click http://spam.example"),
		ham("see you at the usual place around noon"),
	}
	return train, test
}

func TestTrainProducesBundle(t *testing.T) {
	train, test := tinyCorpus()

	result, err := Train(train, test, DefaultOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	b := result.Bundle
	if b.Vectorizer == nil || b.Model == nil {
		t.Fatal("bundle is missing vectorizer or model")
	}
	if b.Vectorizer.ExtraDim != features.Count {
		t.Errorf("ExtraDim = %d, want %d", b.Vectorizer.ExtraDim, features.Count)
	}
	if len(b.Model.Weights) != b.Vectorizer.Dim() {
		t.Errorf("weights %d != dim %d", len(b.Model.Weights), b.Vectorizer.Dim())
	}
	if len(b.FeatureNames) != features.Count {
		t.Errorf("feature names %d, want %d", len(b.FeatureNames), features.Count)
	}
	if b.TrainedAt.IsZero() {
		t.Error("TrainedAt is unset")
	}

	for name, acc := range map[string]float64{
		"train": b.TrainAccuracy,
		"test":  b.TestAccuracy,
	} {
		if acc < 0 || acc > 1 {
			t.Errorf("%s accuracy out of range: %v", name, acc)
		}
	}

	// A corpus this clean should at least be learned on the training side.
	if b.TrainAccuracy < 0.9 {
		t.Errorf("train accuracy %v, expected >= 0.9", b.TrainAccuracy)
	}
}

func TestTrainDeterministic(t *testing.T) {
	train, test := tinyCorpus()

	a, err := Train(train, test, DefaultOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	b, err := Train(train, test, DefaultOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if len(a.Bundle.Model.Weights) != len(b.Bundle.Model.Weights) {
		t.Fatal("runs produced different dimensionality")
	}
	for i := range a.Bundle.Model.Weights {
		if a.Bundle.Model.Weights[i] != b.Bundle.Model.Weights[i] {
			t.Fatalf("weight %d differs between identical runs", i)
		}
	}
	if a.Bundle.Model.Bias != b.Bundle.Model.Bias {
		t.Error("bias differs between identical runs")
	}
}

func TestTrainRejectsEmptySets(t *testing.T) {
	train, test := tinyCorpus()

	if _, err := Train(nil, test, DefaultOptions(), zap.NewNop()); err == nil {
		t.Error("Train accepted an empty training set")
	}
	if _, err := Train(train, nil, DefaultOptions(), zap.NewNop()); err == nil {
		t.Error("Train accepted an empty test set")
	}
}
