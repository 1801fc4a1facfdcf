package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación sobre gorm; db puede ser la base o una transacción.
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el adaptador.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return mapError(r.db.WithContext(ctx).Create(fromProduct(product)).Error, "insert product")
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "get product")
	}
	return m.toEntity(), nil
}

// GetForUpdate en SQLite no necesita bloqueo de fila: la transacción de escritura es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", product.ID).Updates(map[string]any{
		"name":         product.Name,
		"description":  product.Description,
		"min_quantity": product.MinQuantity,
		"updated_at":   product.UpdatedAt,
	})
	if res.Error != nil {
		return mapError(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	return nil
}

func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, expected, newQty int64) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).
		Where("id = ? AND current_quantity = ?", id, expected).
		Updates(map[string]any{
			"current_quantity": newQty,
			"updated_at":       time.Now().UTC().Truncate(time.Microsecond),
		})
	if res.Error != nil {
		return mapError(res.Error, "update product quantity")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: el saldo del producto %s cambió durante la operación", domain.ErrConflict, id)
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("created_at, name").Find(&rows).Error; err != nil {
		return nil, mapError(err, "list products")
	}
	return toProducts(rows), nil
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Where("current_quantity <= min_quantity AND min_quantity > 0").
		Order("created_at, name").
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err, "list low stock")
	}
	return toProducts(rows), nil
}

// Delete elimina el producto; la FK con ON DELETE CASCADE borra sus movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&productModel{})
	if res.Error != nil {
		return mapError(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}

func toProducts(rows []productModel) []*entity.Product {
	list := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list
}
