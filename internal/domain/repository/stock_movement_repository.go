package repository

import (
	"context"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve el historial de un producto ordenado por fecha ascendente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
