package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mikey/job-contact-extractor/internal/adapters/store"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates result stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateStore creates a result store based on the configuration. A disabled
// store yields a nil repository.
func (f *StoreFactory) CreateStore() (core.ResultRepository, error) {
	storeCfg, err := f.cfg.GetStore()
	if err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}
	if !storeCfg.Enabled {
		f.logger.Info("Result store disabled")
		return nil, nil
	}

	logger := f.logger.Named("store")

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(logger, storeCfg.CleanupFrequency), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, logger, storeCfg.CleanupFrequency)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, logger, storeCfg.CleanupFrequency)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return store.NewPostgresStore(ctx, storeCfg.PostgresURL, logger, storeCfg.CleanupFrequency)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}

// GetTTL returns the configured record lifetime
func (f *StoreFactory) GetTTL() (time.Duration, error) {
	return f.cfg.GetDuration("store.ttl")
}

// IsEnabled returns whether results are persisted
func (f *StoreFactory) IsEnabled() bool {
	return f.cfg.GetBool("store.enabled")
}
