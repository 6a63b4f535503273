package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/cafe-hours/internal/config"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/logging"
)

// CLIFlags contains the persistent command line flags of the CLI application
type CLIFlags struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool
	Locale     string

	// At pins the evaluation time; zero means now
	At time.Time
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := config.NewFromFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		if flags.Locale != "" {
			cfg.GetViper().Set("hours.locale", flags.Locale)
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register clock
	if err := container.Provide(func(flags *CLIFlags) core.Clock {
		if flags.At.IsZero() {
			return core.SystemClock{}
		}
		return core.FixedClock{At: flags.At}
	}); err != nil {
		return nil, err
	}

	// No schedule cache for one-shot commands
	if err := container.Provide(func() core.ScheduleCache { return nil }); err != nil {
		return nil, err
	}

	if err := provideServices(container); err != nil {
		return nil, err
	}

	return container, nil
}
