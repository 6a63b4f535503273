package factory

import (
	"github.com/mikey/cafe-hours/internal/adapters/api"
	"github.com/mikey/cafe-hours/internal/config"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/locale"
	"go.uber.org/zap"
)

// ServerFactory creates the HTTP API server based on configuration
type ServerFactory struct {
	cfg         *config.Config
	logger      *zap.Logger
	spotService *core.SpotService
	catalog     *locale.Catalog
}

// NewServerFactory creates a new server factory
func NewServerFactory(
	cfg *config.Config,
	logger *zap.Logger,
	spotService *core.SpotService,
	catalog *locale.Catalog,
) *ServerFactory {
	return &ServerFactory{
		cfg:         cfg,
		logger:      logger,
		spotService: spotService,
		catalog:     catalog,
	}
}

// CreateServer creates the HTTP API server
func (f *ServerFactory) CreateServer() (*api.Server, error) {
	serverCfg, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}

	return api.NewServer(
		f.spotService,
		f.catalog,
		f.logger,
		serverCfg.ListenAddress,
		serverCfg.ShutdownTimeout,
	), nil
}
