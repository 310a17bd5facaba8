package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/citybooking_bot/internal/config"
	"github.com/Freeeeeet/citybooking_bot/internal/repository"
	"github.com/Freeeeeet/citybooking_bot/internal/repository/script"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OpenBackend создаёт бэкенд по конфигу. Для postgres применяет миграции.
// Возвращаемая функция освобождает ресурсы бэкенда.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendScript:
		logger.Info("Using spreadsheet script backend")
		return script.NewClient(cfg.ScriptURL, script.DefaultHTTPClient()), func() {}, nil

	case config.BackendPostgres:
		pool, err := OpenPool(ctx, cfg.GetDBDSN())
		if err != nil {
			return nil, nil, err
		}

		migrator, err := NewMigrator(pool, cfg.MigrationsPath, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		defer migrator.Close()

		if err := migrator.Run(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		logger.Info("Using postgres backend")
		return repository.NewPostgres(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// OpenPool подключается к базе и проверяет соединение
func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
