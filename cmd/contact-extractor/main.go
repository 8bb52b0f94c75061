package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/di"
	"github.com/mikey/job-contact-extractor/internal/factory"
	"github.com/mikey/job-contact-extractor/internal/ports"
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
	intake ports.Intake,
	assistFactory *factory.AssistFactory,
	store core.ResultRepository,
) error {
	defer logger.Sync()

	// Start the intake
	if err := intake.Start(); err != nil {
		logger.Error("Failed to start intake", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the intake
	if err := intake.Stop(); err != nil {
		logger.Error("Failed to stop intake", zap.Error(err))
	}

	// Close assistant clients
	if err := assistFactory.Close(); err != nil {
		logger.Error("Failed to close assistant", zap.Error(err))
	}

	// Stop the store if needed
	if stopper, ok := store.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
