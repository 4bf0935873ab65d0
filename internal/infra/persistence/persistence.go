// Package persistence selects the account store driver from configuration.
package persistence

import (
	"log/slog"

	"internhub/config"
	"internhub/internal/domain/repository"
	"internhub/internal/infra/persistence/memory"
	"internhub/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Logger     *slog.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

// Repositories groups the repositories of the selected driver for Fx.
type Repositories struct {
	fx.Out

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	ProfileRepo repository.ProfileRepository
}

// New builds the repositories for persistence.driver.
func New(params Params) (Repositories, error) {
	driver := "postgres"
	if params.Config.Persistence != nil && params.Config.Persistence.Driver != "" {
		driver = params.Config.Persistence.Driver
	}

	switch driver {
	case "memory":
		params.Logger.Warn("Using in-memory persistence, accounts are lost on restart")
		store := memory.NewStore()

		return Repositories{
			TxManager:   memory.NewTransactionManager(store),
			AccountRepo: memory.NewAccountRepository(store),
			ProfileRepo: memory.NewProfileRepository(store),
		}, nil
	case "postgres":
		db, err := postgres.New(postgres.Params{
			Lifecycle:  params.Lifecycle,
			Config:     params.Config,
			Logger:     params.Logger,
			Registerer: params.Registerer,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager:   postgres.NewTransactionManager(db),
			AccountRepo: postgres.NewAccountRepository(db),
			ProfileRepo: postgres.NewProfileRepository(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unknown persistence driver %q", driver)
	}
}
