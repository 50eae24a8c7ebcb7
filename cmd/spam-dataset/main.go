package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/dataset"
	"github.com/mikey/sms-spam-classifier/internal/logging"
)

var (
	basePath     = flag.String("base", "data/raw.csv", "Base corpus CSV")
	baseEncoding = flag.String("base-encoding", "latin-1", "Encoding of the base corpus (utf-8, latin-1)")
	extraPath    = flag.String("extra", "data/russian_messages.csv", "Corpus to merge in")
	extraEnc     = flag.String("extra-encoding", "utf-8", "Encoding of the merged-in corpus")
	outPath      = flag.String("out", "data/raw.csv", "Output path for the merged corpus (UTF-8)")
	backupPath   = flag.String("backup", "data/raw_backup.csv", "Backup of the base corpus before overwrite")
	seed         = flag.Int64("seed", 42, "Shuffle seed")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog      = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	base, err := dataset.Load(*basePath, dataset.Encoding(*baseEncoding))
	if err != nil {
		logger.Fatal("Failed to load base corpus", zap.Error(err), zap.String("path", *basePath))
	}
	logger.Info("Loaded base corpus", zap.Int("messages", len(base)))

	extra, err := dataset.Load(*extraPath, dataset.Encoding(*extraEnc))
	if err != nil {
		logger.Fatal("Failed to load extra corpus", zap.Error(err), zap.String("path", *extraPath))
	}
	logger.Info("Loaded extra corpus", zap.Int("messages", len(extra)))

	// Back up the base corpus before overwriting it, unless a backup
	// from a previous merge already exists.
	if *backupPath != "" && *outPath == *basePath {
		if _, err := os.Stat(*backupPath); os.IsNotExist(err) {
			if err := dataset.Save(*backupPath, base); err != nil {
				logger.Fatal("Failed to write backup", zap.Error(err))
			}
			logger.Info("Backup created", zap.String("path", *backupPath))
		}
	}

	merged := dataset.Merge(base, extra, *seed)
	if err := dataset.Save(*outPath, merged); err != nil {
		logger.Fatal("Failed to save merged corpus", zap.Error(err))
	}

	stats := dataset.Collect(merged)
	fmt.Printf("\n=== Merged Corpus ===\n")
	fmt.Printf("Saved to: %s\n", *outPath)
	fmt.Printf("Total messages: %d\n", stats.Total)
	fmt.Printf("Spam: %d (%.1f%%)\n", stats.Spam, stats.SpamRatio()*100)
	fmt.Printf("Ham: %d (%.1f%%)\n", stats.Ham, float64(stats.Ham)/float64(stats.Total)*100)
	fmt.Printf("\nBy language:\n")
	fmt.Printf("English: %d\n", stats.English)
	fmt.Printf("Russian: %d\n", stats.Russian)
	if stats.Other > 0 {
		fmt.Printf("Other: %d\n", stats.Other)
	}
}
