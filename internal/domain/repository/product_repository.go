package repository

import (
	"context"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE) donde el motor lo soporte.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica solo name, description y min_quantity. domain.ErrNotFound si no existe.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity escribe newQty solo si el saldo sigue siendo expected (compare-and-swap).
	// domain.ErrConflict si otro escritor lo cambió.
	UpdateQuantity(ctx context.Context, id string, expected, newQty int64) error
	List(ctx context.Context) ([]*entity.Product, error)
	// ListLowStock devuelve productos con current_quantity <= min_quantity y min_quantity > 0.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// Delete elimina el producto y, en cascada, sus movimientos.
	Delete(ctx context.Context, id string) error
}
