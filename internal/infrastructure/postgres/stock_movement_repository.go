package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, movement_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity, movement.Date, createdBy,
	)
	return mapError(err, "create stock movement")
}

// ListByProduct lista los movimientos de un producto en orden cronológico.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, movement_date, created_by
		FROM stock_movements WHERE product_id = $1
		ORDER BY movement_date, seq`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, mapError(err, "list movements by product")
	}
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &createdBy); err != nil {
			return nil, mapError(err, "scan movement")
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, mapError(rows.Err(), "list movements by product")
}
