// Package storage elige el almacén de la cadena según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/redisstore"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlstore"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

func noop() {}

// Open abre el almacén del driver configurado. close libera conexiones y nunca es nil.
func Open(ctx context.Context, cfg *config.Config) (store repository.ChainStore, close func(), err error) {
	name := cfg.Ledger.Name
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		return memory.NewChainStore(), noop, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		s := postgres.NewChainStore(pool, name)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	case config.DriverSQLite:
		s, err := sqlstore.OpenSQLite(ctx, cfg.Store.SQLitePath, name)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.DriverMySQL:
		s, err := sqlstore.OpenMySQL(ctx, cfg.Store.MySQLDSN, name)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		return redisstore.NewChainStore(client, name), func() { _ = client.Close() }, nil
	}
	return nil, noop, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Store.Driver)
}
