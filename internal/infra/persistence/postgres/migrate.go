package postgres

import (
	"context"
	"embed"
	"log/slog"

	"internhub/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigratorParams defines the required parameters for RegisterMigrations
type MigratorParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewMigrator builds a migrator over the embedded schema files.
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrator")
	}

	return m, nil
}

// RunMigrations applies every pending migration. It is a no-op when the schema is current.
func RunMigrations(databaseURL string) error {
	m, err := NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to run migrations")
	}

	return nil
}

// RegisterMigrations runs migrations on startup when they are enabled.
func RegisterMigrations(params MigratorParams) {
	cfg := params.Config.Migration
	if cfg == nil || !cfg.Enabled {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := RunMigrations(cfg.DatabaseURL); err != nil {
				return err
			}
			params.Logger.Info("Database migrations applied")

			return nil
		},
	})
}
