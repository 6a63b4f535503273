package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/di"
	"github.com/mikey/cafe-hours/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	server ports.Server,
	repo core.SpotRepository,
	normalizer core.HoursNormalizer,
) error {
	defer logger.Sync()

	if err := server.Start(); err != nil {
		logger.Error("Failed to start server", zap.Error(err))
		return err
	}

	var serveErrs <-chan error
	if reporter, ok := server.(interface{ Errors() <-chan error }); ok {
		serveErrs = reporter.Errors()
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down...", zap.String("signal", sig.String()))
	case runErr = <-serveErrs:
		logger.Error("Server failed, shutting down", zap.Error(runErr))
	}

	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}

	if err := repo.Close(); err != nil {
		logger.Error("Failed to close spot store", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := normalizer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close hours normalizer", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return runErr
}
