// Package app wires the repository, engines and service from configuration.
package app

import (
	"database/sql"
	"fmt"

	"github.com/Dan9191/finance-service/internal/cache"
	"github.com/Dan9191/finance-service/internal/config"
	"github.com/Dan9191/finance-service/internal/db"
	"github.com/Dan9191/finance-service/internal/dismissal"
	"github.com/Dan9191/finance-service/internal/forecast"
	"github.com/Dan9191/finance-service/internal/insights"
	"github.com/Dan9191/finance-service/internal/repository"
	"github.com/Dan9191/finance-service/internal/service"
	"github.com/sirupsen/logrus"
)

// App holds the long-lived dependencies of a process
type App struct {
	DB      *sql.DB
	Service *service.Service
}

// New connects to the database, applies migrations when enabled and builds the service
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	database, err := db.Connect(cfg.DBConn)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Info("Database migrations applied")
	}
	return &App{DB: database, Service: NewService(cfg, database, log)}, nil
}

// NewService builds the insights service over an open database
func NewService(cfg *config.Config, database *sql.DB, log *logrus.Logger) *service.Service {
	repo := repository.NewRepository(database)
	return service.NewService(
		repo,
		cache.NewService(CacheStore(cfg, database), cfg.CacheTTL, log),
		dismissal.NewFilter(repository.NewDismissalStore(database), log),
		forecast.NewEngine(log),
		insights.NewEngine(log),
		cfg,
		log,
	)
}

// CacheStore selects the cache backend named by the configuration
func CacheStore(cfg *config.Config, database *sql.DB) cache.Store {
	if cfg.CacheBackend == "postgres" {
		return repository.NewCacheStore(database)
	}
	return cache.NewMemoryStore()
}

// Close releases the database pool
func (a *App) Close() error {
	return a.DB.Close()
}
