package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
)

// ApplyMigrations brings the schema up to date. An empty source path is a no-op.
func ApplyMigrations(config models.DatabaseConfig) error {
	if config.MigrationsPath == "" {
		return nil
	}

	m, err := migrate.New(config.MigrationsPath, DSN(config))
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("Database migrations applied",
		logger.Int("version", int(version)),
		logger.Bool("dirty", dirty))
	return nil
}
