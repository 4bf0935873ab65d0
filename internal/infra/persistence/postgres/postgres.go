package postgres

import (
	"context"
	"log/slog"

	"internhub/config"
	"internhub/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const poolStatsDBName = "internhub_accounts"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Logger     *slog.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

// New opens the account store connection. Pool statistics are exported on
// Registerer when one is provided; the pool is pinged on start and closed on stop.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open account store")
	}
	db = db.Session(&gorm.Session{
		// Account and profile writes share one explicit transaction via txManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, queryLoggerOptions(params.Config)),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account store sql.DB")
	}

	var poolStats prometheus.Collector
	if params.Registerer != nil {
		poolStats = collectors.NewDBStatsCollector(sqlDB, poolStatsDBName)
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping account store")
			}

			if poolStats != nil {
				if err := params.Registerer.Register(poolStats); err != nil {
					return errors.Wrap(err, "failed to register account store pool metrics")
				}
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			if poolStats != nil {
				params.Registerer.Unregister(poolStats)
			}

			return sqlDB.Close()
		},
	})

	return db, nil
}

func queryLoggerOptions(cfg *config.Config) queryLogOptions {
	opts := queryLogOptions{}
	if cfg == nil {
		return opts
	}

	opts.debug = cfg.Env.Debug
	if cfg.Persistence != nil {
		opts.slowThreshold = cfg.Persistence.SlowQueryThreshold
		opts.withParams = cfg.Persistence.LogQueryParams
	}

	return opts
}
