package sqlite

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial de movimientos; solo inserta y lee.
type StockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) *StockMovementRepo {
	return &StockMovementRepo{db: db}
}

func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(fromMovement(movement)).Error
	return mapError(err, "create stock movement")
}

// ListByProduct ordena por fecha; los empates quedan en orden de inserción (rowid).
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	var rows []movementModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("movement_date, rowid").
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err, "list movements by product")
	}
	list := make([]*entity.StockMovement, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}
