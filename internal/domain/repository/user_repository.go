package repository

import (
	"context"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	List(ctx context.Context) ([]*entity.User, error)
}
