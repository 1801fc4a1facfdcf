package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-estoque/internal/application/auth"
	"github.com/jhoicas/Inventario-estoque/internal/application/inventory"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de db.Transaction: error o panic hacen Rollback.
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return fn(NewProductRepository(tx), NewStockMovementRepository(tx))
	})
}

func (r *TxRunner) RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var fnErr error
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(tx)
		return fnErr
	})
	if err != nil && fnErr == nil {
		return mapError(err, "transaction")
	}
	return err
}
