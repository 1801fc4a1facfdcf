package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(MemoryPath, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, minQty int64) *entity.Product {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &entity.Product{ID: uuid.NewString(), Name: name, MinQuantity: minQty, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func TestOpen_EsquemaIdempotente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.db")
	db, err := Open(path, logger.Nop())
	require.NoError(t, err)
	p := createProduct(t, db, "Persistente", 2)
	require.NoError(t, Close(db))

	db, err = Open(path, logger.Nop())
	require.NoError(t, err)
	defer Close(db)
	got, err := NewProductRepository(db).GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Persistente", got.Name)
	assert.Equal(t, int64(2), got.MinQuantity)
}

func TestOpen_RutaInvalidaEsUnavailable(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no", "existe", "x.db"), logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestProductRepo_Restricciones(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	p := createProduct(t, db, "Café", 0)

	now := time.Now().UTC()
	err := repo.Create(ctx, &entity.Product{ID: uuid.NewString(), Name: "Café", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = repo.Create(ctx, &entity.Product{ID: uuid.NewString(), Name: "Negativo", MinQuantity: -1, CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, repo.UpdateQuantity(ctx, p.ID, 0, -1), domain.ErrInvalidInput)
	assert.NoError(t, repo.UpdateQuantity(ctx, p.ID, 0, 4))
	assert.ErrorIs(t, repo.UpdateQuantity(ctx, p.ID, 0, 8), domain.ErrConflict)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Update(ctx, &entity.Product{ID: uuid.NewString(), Name: "x", UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_ListLowStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	low := createProduct(t, db, "Bajo", 10)
	createProduct(t, db, "SinAlerta", 0)
	ok := createProduct(t, db, "Sobrado", 1)
	require.NoError(t, repo.UpdateQuantity(ctx, ok.ID, 0, 2))

	list, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)
}

func TestMovements_OrdenYCascada(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := createProduct(t, db, "Harina", 0)
	movRepo := NewStockMovementRepository(db)

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: uuid.NewString(), ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 3, Date: at.Add(time.Minute)}))
	require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: uuid.NewString(), ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 1, Date: at}))
	require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: uuid.NewString(), ProductID: p.ID, Type: entity.MovementTypeOut, Quantity: 2, Date: at}))

	err := movRepo.Create(ctx, &entity.StockMovement{ID: uuid.NewString(), ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 0, Date: at})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = movRepo.Create(ctx, &entity.StockMovement{ID: uuid.NewString(), ProductID: uuid.NewString(), Type: entity.MovementTypeIn, Quantity: 1, Date: at})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la FK exige un producto existente")

	movs, err := movRepo.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{movs[0].Quantity, movs[1].Quantity, movs[2].Quantity})
	assert.True(t, at.Equal(movs[0].Date), "la fecha se conserva")

	require.NoError(t, NewProductRepository(db).Delete(ctx, p.ID))
	movs, err = movRepo.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.ErrorIs(t, NewProductRepository(db).Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestTxRunner_RollbackDescartaAmbasEscrituras(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := createProduct(t, db, "Aceite", 0)

	err := NewTxRunner(db).Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		if err := productRepo.UpdateQuantity(ctx, p.ID, 0, 5); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, &entity.StockMovement{
			ID: uuid.NewString(), ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 5, Date: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := NewProductRepository(db).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentQuantity)
	movs, err := NewStockMovementRepository(db).ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestUserRepo(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	u := &entity.User{ID: uuid.NewString(), Username: "ana", PasswordHash: "h", Role: entity.RoleAdmin, CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(ctx, u))

	dup := *u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, users.Create(ctx, &dup), domain.ErrDuplicate)

	bad := &entity.User{ID: uuid.NewString(), Username: "x", PasswordHash: "h", Role: "root", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, users.Create(ctx, bad), domain.ErrInvalidInput)

	got, err := users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := users.GetByUsername(ctx, "ANA")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	n, err := users.CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMapError_CerradaEsUnavailable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Close(db))
	_, err := NewProductRepository(db).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
