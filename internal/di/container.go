package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/cafe-hours/internal/config"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/factory"
	"github.com/mikey/cafe-hours/internal/locale"
	"github.com/mikey/cafe-hours/internal/logging"
	"github.com/mikey/cafe-hours/internal/ports"
	"github.com/mikey/cafe-hours/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
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

	// Register clock
	if err := container.Provide(func() core.Clock { return core.SystemClock{} }); err != nil {
		return nil, err
	}

	// Register schedule cache
	if err := container.Provide(func(f *factory.StoreFactory) (core.ScheduleCache, error) {
		return f.CreateScheduleCache()
	}); err != nil {
		return nil, err
	}

	if err := provideServices(container); err != nil {
		return nil, err
	}

	// Register HTTP API server
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ServerFactory) (ports.Server, error) {
		return f.CreateServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideServices registers everything between the configuration and the front ends
func provideServices(container *dig.Container) error {
	// Register factories
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewNormalizerFactory); err != nil {
		return err
	}

	// Register spot repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.SpotRepository, error) {
		return f.CreateSpotRepository()
	}); err != nil {
		return err
	}

	// Register hours normalizer, nil when disabled
	if err := container.Provide(func(f *factory.NormalizerFactory) (core.HoursNormalizer, error) {
		return f.CreateNormalizer()
	}); err != nil {
		return err
	}

	// Register status text catalog
	if err := container.Provide(locale.NewCatalog); err != nil {
		return err
	}

	// Register evaluator
	if err := container.Provide(func(
		cfg *config.Config,
		cache core.ScheduleCache,
		clock core.Clock,
		catalog *locale.Catalog,
		logger *zap.Logger,
	) (*core.Evaluator, error) {
		hoursCfg, err := cfg.GetHours()
		if err != nil {
			return nil, err
		}
		logger.Info("Evaluating opening hours",
			zap.Bool("cache_enabled", cache != nil),
			zap.Duration("cache_ttl", hoursCfg.CacheTTL),
			zap.String("locale", hoursCfg.Locale))
		return core.NewEvaluator(cache, clock, hoursCfg.CacheTTL, catalog.Lookup(hoursCfg.Locale), logger), nil
	}); err != nil {
		return err
	}

	// Register spot service
	if err := container.Provide(core.NewSpotService); err != nil {
		return err
	}

	return nil
}
