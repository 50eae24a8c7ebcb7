package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/dataset"
	"github.com/mikey/sms-spam-classifier/internal/logging"
	"github.com/mikey/sms-spam-classifier/internal/training"
)

var (
	// Input flags
	rawPath     = flag.String("raw", "", "Raw labeled CSV to clean and split (overrides -train/-test)")
	rawEncoding = flag.String("raw-encoding", "utf-8", "Encoding of the raw CSV (utf-8, latin-1)")
	trainPath   = flag.String("train", "data/train.csv", "Training CSV (label,message)")
	testPath    = flag.String("test", "data/test.csv", "Test CSV (label,message)")
	trainOut    = flag.String("train-out", "", "Where to save the prepared training split (optional)")
	testOut     = flag.String("test-out", "", "Where to save the prepared test split (optional)")

	// Split flags
	testFraction = flag.Float64("test-fraction", 0.2, "Fraction of the corpus held out for testing")
	seed         = flag.Int64("seed", 42, "Seed for the split shuffle and training")

	// Model flags
	modelOut     = flag.String("out", "model.json", "Output path for the trained model bundle")
	maxFeatures  = flag.Int("max-features", 5000, "TF-IDF vocabulary size cap")
	c            = flag.Float64("c", 0.5, "Inverse regularization strength")
	epochs       = flag.Int("epochs", 50, "Training epochs")
	learningRate = flag.Float64("learning-rate", 0.5, "Initial SGD learning rate")

	// Logging flags
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	trainRecs, testRecs, err := loadCorpus(logger)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	printCorpusSummary(trainRecs, testRecs)

	opts := training.DefaultOptions()
	opts.Tfidf.MaxFeatures = *maxFeatures
	opts.Model.C = *c
	opts.Model.Epochs = *epochs
	opts.Model.LearningRate = *learningRate
	opts.Model.Seed = *seed

	result, err := training.Train(trainRecs, testRecs, opts, logger)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	printReport(result)

	if err := result.Bundle.Save(*modelOut); err != nil {
		logger.Fatal("Failed to save model bundle", zap.Error(err))
	}
	fmt.Printf("\nModel bundle saved to %s\n", *modelOut)
}

// loadCorpus produces the training and test splits, either from a raw
// corpus or from pre-split CSVs.
func loadCorpus(logger *zap.Logger) ([]dataset.Record, []dataset.Record, error) {
	if *rawPath != "" {
		logger.Info("Preparing raw corpus",
			zap.String("path", *rawPath),
			zap.String("encoding", *rawEncoding))

		raw, err := dataset.Load(*rawPath, dataset.Encoding(*rawEncoding))
		if err != nil {
			return nil, nil, err
		}
		cleaned := dataset.Clean(raw)
		logger.Info("Cleaned corpus",
			zap.Int("raw", len(raw)),
			zap.Int("kept", len(cleaned)))

		trainRecs, testRecs, err := dataset.Split(cleaned, *testFraction, *seed)
		if err != nil {
			return nil, nil, err
		}

		if *trainOut != "" {
			if err := dataset.Save(*trainOut, trainRecs); err != nil {
				return nil, nil, err
			}
		}
		if *testOut != "" {
			if err := dataset.Save(*testOut, testRecs); err != nil {
				return nil, nil, err
			}
		}
		return trainRecs, testRecs, nil
	}

	trainRecs, err := dataset.Load(*trainPath, dataset.EncodingUTF8)
	if err != nil {
		return nil, nil, err
	}
	testRecs, err := dataset.Load(*testPath, dataset.EncodingUTF8)
	if err != nil {
		return nil, nil, err
	}
	return trainRecs, testRecs, nil
}

func printCorpusSummary(trainRecs, testRecs []dataset.Record) {
	trainStats := dataset.Collect(trainRecs)
	testStats := dataset.Collect(testRecs)

	fmt.Printf("\n=== Dataset Statistics ===\n")
	fmt.Printf("Training samples: %d\n", trainStats.Total)
	fmt.Printf("Test samples: %d\n", testStats.Total)
	fmt.Printf("Train spam ratio: %.2f%%\n", trainStats.SpamRatio()*100)
	fmt.Printf("Test spam ratio: %.2f%%\n", testStats.SpamRatio()*100)

	fmt.Printf("\n=== Language Distribution ===\n")
	fmt.Printf("Russian messages in train: %d\n", trainStats.Russian)
	fmt.Printf("Russian messages in test: %d\n", testStats.Russian)
	fmt.Printf("English messages in train: %d\n", trainStats.English)
	fmt.Printf("English messages in test: %d\n", testStats.English)
}

func printReport(result *training.Result) {
	trainAcc := result.TrainEval.Accuracy()
	testAcc := result.TestEval.Accuracy()

	fmt.Printf("\n=== Model Performance ===\n")
	fmt.Printf("Train accuracy: %.4f\n", trainAcc)
	fmt.Printf("Test accuracy:  %.4f\n", testAcc)
	if gap := trainAcc - testAcc; gap > 0.05 {
		fmt.Printf("Warning: potential overfitting (train-test gap %.2f%%)\n", gap*100)
	}

	fmt.Printf("\n=== Classification Report (Test Set) ===\n")
	fmt.Printf("%-8s %10s %10s %10s\n", "", "precision", "recall", "f1")
	printClassRow("ham", result.TestEval.HamPrecision(), result.TestEval.HamRecall(), result.TestEval.HamF1())
	printClassRow("spam", result.TestEval.SpamPrecision(), result.TestEval.SpamRecall(), result.TestEval.SpamF1())

	cm := result.TestEval
	fmt.Printf("\n=== Confusion Matrix (Test Set) ===\n")
	fmt.Printf("                Predicted\n")
	fmt.Printf("               Ham    Spam\n")
	fmt.Printf("Actual Ham    %5d  %5d\n", cm.TrueHam, cm.FalseSpam)
	fmt.Printf("       Spam   %5d  %5d\n", cm.FalseHam, cm.TrueSpam)

	fmt.Printf("\nSpecificity (ham detection):  %.4f\n", cm.HamRecall())
	fmt.Printf("Sensitivity (spam detection): %.4f\n", cm.SpamRecall())
	fmt.Printf("False positive rate: %.2f%%\n", cm.FalsePositiveRate()*100)
	fmt.Printf("False negative rate: %.2f%%\n", cm.FalseNegativeRate()*100)
}

func printClassRow(name string, p, r, f float64) {
	fmt.Printf("%-8s %10.4f %10.4f %10.4f\n", name, p, r, f)
}
