package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/adapters/model"
	"github.com/mikey/sms-spam-classifier/internal/adapters/openai"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
)

// ClassifierFactory creates classifiers based on configuration
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a classifier based on the configured provider
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierCfg := f.cfg.GetClassifier()

	switch classifierCfg.Provider {
	case "model":
		return model.Load(classifierCfg.ModelPath, f.logger)
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		if openaiCfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewClassifier(
			openaiCfg.APIKey,
			openaiCfg.ModelName,
			openaiCfg.MaxTokens,
			openaiCfg.Temperature,
			openaiCfg.TopP,
			openaiCfg.MaxTextSize,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", classifierCfg.Provider)
	}
}
