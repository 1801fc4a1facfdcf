package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-estoque/internal/application/auth"
	"github.com/jhoicas/Inventario-estoque/internal/application/inventory"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and auth.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewStockMovementRepository(q))
	})
}

// RunUsers inicia una transacción con el repositorio de usuarios (bootstrap del admin).
func (r *TxRunner) RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewUserRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError(err, "commit transaction")
	}
	return nil
}
