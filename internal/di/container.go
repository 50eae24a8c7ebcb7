package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/adapters/httpserv"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/factory"
	"github.com/mikey/sms-spam-classifier/internal/logging"
)

// BuildContainer creates and configures a dependency injection container
// for the web server binary.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register spam threshold
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetFloat64("spam.threshold")
	}); err != nil {
		return nil, err
	}

	// Register classification service
	if err := container.Provide(core.NewClassificationService); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		service *core.ClassificationService,
		cfg *config.Config,
		logger *zap.Logger,
	) *httpserv.Server {
		return httpserv.NewServer(service, logger, cfg.GetServer().ListenAddress)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
