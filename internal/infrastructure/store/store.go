// Package store abre el almacenamiento configurado (PostgreSQL o SQLite embebido)
// y entrega los repositorios y el runner de transacciones que usan los casos de uso.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-estoque/internal/application/auth"
	"github.com/jhoicas/Inventario-estoque/internal/application/inventory"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
	"github.com/jhoicas/Inventario-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-estoque/internal/infrastructure/sqlite"
	"github.com/jhoicas/Inventario-estoque/pkg/config"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

// TxRunner une los puertos transaccionales de inventario y auth.
type TxRunner interface {
	inventory.TxRunner
	auth.TxRunner
}

// Store repositorios sobre una conexión abierta.
type Store struct {
	Driver    string
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Tx        TxRunner

	close func() error
}

// Open conecta según cfg.Driver y asegura el esquema. Un fallo de conexión llega como domain.ErrUnavailable.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	log = log.Named("store")
	switch cfg.Driver {
	case config.DriverPostgres:
		connStr := cfg.ConnectionString()
		pool, err := postgres.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(connStr); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("almacenamiento abierto")
		return &Store{
			Driver:    cfg.Driver,
			Users:     postgres.NewUserRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     func() error { pool.Close(); return nil },
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacenamiento abierto")
		return &Store{
			Driver:    cfg.Driver,
			Users:     sqlite.NewUserRepository(db),
			Products:  sqlite.NewProductRepository(db),
			Movements: sqlite.NewStockMovementRepository(db),
			Tx:        sqlite.NewTxRunner(db),
			close:     func() error { return sqlite.Close(db) },
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %q", cfg.Driver)
	}
}

// Close libera la conexión. Es seguro llamarlo más de una vez.
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	c := s.close
	s.close = nil
	return c()
}
