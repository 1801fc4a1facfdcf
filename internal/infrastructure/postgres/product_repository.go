package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, current_quantity, min_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, current_quantity, min_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.CurrentQuantity, product.MinQuantity,
		product.CreatedAt, product.UpdatedAt,
	)
	return mapError(err, "insert product")
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id, "get product")
}

// GetForUpdate obtiene el producto y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id, "get product for update")
}

func (r *ProductRepo) get(ctx context.Context, query, id, op string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, op)
	}
	return p, nil
}

// Update actualiza los campos editables. No permite modificar el saldo (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, min_quantity = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.MinQuantity, product.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "update product")
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	return nil
}

// UpdateQuantity escribe el nuevo saldo solo si sigue valiendo expected.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, expected, newQty int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_quantity = $3, updated_at = now() WHERE id = $1 AND current_quantity = $2`,
		id, expected, newQty,
	)
	if err != nil {
		return mapError(err, "update product quantity")
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: el saldo del producto %s cambió durante la operación", domain.ErrConflict, id)
	}
	return nil
}

// List lista todos los productos en orden de creación.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, name`, "list products")
}

// ListLowStock lista productos en o bajo su mínimo; mínimo 0 desactiva la alerta.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE current_quantity <= min_quantity AND min_quantity > 0
		ORDER BY created_at, name`, "list low stock")
}

func (r *ProductRepo) list(ctx context.Context, query, op string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, op)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, "scan product")
		}
		list = append(list, p)
	}
	return list, mapError(rows.Err(), op)
}

// Delete elimina un producto por ID; sus movimientos se borran en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete product")
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CurrentQuantity, &p.MinQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
