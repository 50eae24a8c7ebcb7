package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/adapters/model"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/logging"
)

var (
	modelPath = flag.String("model", "model.json", "Path to the trained model bundle")
	inputFile = flag.String("file", "", "Read the message from a file (otherwise argv or stdin)")
	threshold = flag.Float64("threshold", 0.5, "Spam decision threshold")
	jsonOut   = flag.Bool("json", false, "Print the result as JSON")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	message, err := readMessage()
	if err != nil {
		logger.Fatal("Failed to read message", zap.Error(err))
	}
	if strings.TrimSpace(message) == "" {
		fmt.Fprintln(os.Stderr, "Error: no message provided")
		os.Exit(1)
	}

	classifier, err := model.Load(*modelPath, logger)
	if err != nil {
		logger.Fatal("Failed to load model", zap.Error(err), zap.String("path", *modelPath))
	}

	startTime := time.Now()
	result, err := classifier.Classify(context.Background(), message)
	if err != nil {
		logger.Fatal("Failed to classify message", zap.Error(err))
	}
	duration := time.Since(startTime)

	// Apply threshold
	result.IsSpam = result.Score >= *threshold
	result.Label = core.LabelHam
	if result.IsSpam {
		result.Label = core.LabelSpam
	}

	if *jsonOut {
		printJSON(message, result)
		return
	}

	fmt.Printf("\n=== Message ===\n")
	fmt.Printf("%s\n", message)
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Label: %s\n", result.Label)
	fmt.Printf("Spam score: %.4f\n", result.Score)
	fmt.Printf("Confidence: %.4f\n", result.Confidence)
	fmt.Printf("Explanation: %s\n", result.Explanation)
	fmt.Printf("Model used: %s\n", result.ModelUsed)
	fmt.Printf("Processing time: %v\n", duration)
}

// readMessage takes the message from -file, argv, or stdin, in that
// order of preference.
func readMessage() (string, error) {
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if args := flag.Args(); len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	fmt.Fprintln(os.Stderr, "Enter message to classify (Ctrl+D to finish):")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printJSON(message string, result *core.Prediction) {
	out := struct {
		Message string  `json:"message"`
		Result  string  `json:"result"`
		IsSpam  bool    `json:"is_spam"`
		Score   float64 `json:"score"`
	}{
		Message: message,
		Result:  string(result.Label),
		IsSpam:  result.IsSpam,
		Score:   result.Score,
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(out)
}
