package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/cafe-hours/internal/adapters/cache"
	"github.com/mikey/cafe-hours/internal/adapters/store"
	"github.com/mikey/cafe-hours/internal/config"
	"github.com/mikey/cafe-hours/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates the schedule cache and spot repository based on configuration
type StoreFactory struct {
	cfg    *config.Config
	clock  core.Clock
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, clock core.Clock, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		clock:  clock,
		logger: logger,
	}
}

// CreateScheduleCache returns the schedule cache, or nil when caching is disabled
func (f *StoreFactory) CreateScheduleCache() (core.ScheduleCache, error) {
	hoursCfg, err := f.cfg.GetHours()
	if err != nil {
		return nil, err
	}
	if !hoursCfg.CacheEnabled {
		f.logger.Info("Schedule cache disabled")
		return nil, nil
	}
	return cache.NewMemoryCache(f.clock, f.logger), nil
}

// CreateSpotRepository creates a spot repository based on the configuration
func (f *StoreFactory) CreateSpotRepository() (core.SpotRepository, error) {
	storeCfg := f.cfg.GetStore()

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		if storeCfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
			}
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, f.logger)
	case "postgres":
		return store.NewPostgresStore(storeCfg.PostgresDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}
