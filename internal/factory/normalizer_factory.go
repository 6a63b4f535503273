package factory

import (
	"fmt"

	"github.com/mikey/cafe-hours/internal/adapters/bedrock"
	"github.com/mikey/cafe-hours/internal/adapters/gemini"
	"github.com/mikey/cafe-hours/internal/adapters/llm"
	"github.com/mikey/cafe-hours/internal/adapters/openai"
	"github.com/mikey/cafe-hours/internal/config"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/utils"
	"go.uber.org/zap"
)

// NormalizerFactory creates hours normalizers
type NormalizerFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *NormalizerFactory {
	return &NormalizerFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateNormalizer creates a throttled normalizer for the configured provider,
// or nil when normalization is disabled
func (f *NormalizerFactory) CreateNormalizer() (core.HoursNormalizer, error) {
	normCfg := f.cfg.GetNormalizer()
	if !normCfg.Enabled {
		return nil, nil
	}

	var (
		client core.HoursNormalizer
		err    error
	)
	switch normCfg.Provider {
	case "bedrock":
		client, err = bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "gemini":
		client, err = gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "openai":
		client, err = openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported normalizer provider: %s", normCfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	f.logger.Info("Hours normalizer enabled",
		zap.String("provider", normCfg.Provider),
		zap.Float64("rate_per_second", normCfg.RatePerSecond))
	return llm.NewThrottledNormalizer(client, normCfg.RatePerSecond, normCfg.Burst), nil
}
